package models

import "fmt"

// CardType is the closed set of card archetypes.
type CardType string

const (
	CardTypeDragon   CardType = "Dragon"
	CardTypeWarrior  CardType = "Warrior"
	CardTypeMagician CardType = "Magician"
	CardTypeDinosaur CardType = "Dinosaur"
	CardTypeSpell    CardType = "Spell"
	CardTypeMage     CardType = "Mage"
)

func CardTypes() []CardType {
	return []CardType{
		CardTypeDragon,
		CardTypeWarrior,
		CardTypeMagician,
		CardTypeDinosaur,
		CardTypeSpell,
		CardTypeMage,
	}
}

func (t CardType) Valid() bool {
	for _, v := range CardTypes() {
		if t == v {
			return true
		}
	}
	return false
}

func ParseCardType(s string) (CardType, error) {
	t := CardType(s)
	if !t.Valid() {
		return "", fmt.Errorf("invalid card type %q", s)
	}
	return t, nil
}

// CardRarity is the closed set of card rarities.
type CardRarity string

const (
	RarityCommon   CardRarity = "Common"
	RarityUncommon CardRarity = "Uncommon"
	RarityRare     CardRarity = "Rare"
	RarityMythic   CardRarity = "Mythic"
)

func CardRarities() []CardRarity {
	return []CardRarity{RarityCommon, RarityUncommon, RarityRare, RarityMythic}
}

func (r CardRarity) Valid() bool {
	for _, v := range CardRarities() {
		if r == v {
			return true
		}
	}
	return false
}

func ParseCardRarity(s string) (CardRarity, error) {
	r := CardRarity(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid card rarity %q", s)
	}
	return r, nil
}

// DeckFormat is the closed set of playable deck formats.
type DeckFormat string

const (
	FormatStandard  DeckFormat = "Standard"
	FormatModern    DeckFormat = "Modern"
	FormatCommander DeckFormat = "Commander"
	FormatPauper    DeckFormat = "Pauper"
)

func DeckFormats() []DeckFormat {
	return []DeckFormat{FormatStandard, FormatModern, FormatCommander, FormatPauper}
}

func (f DeckFormat) Valid() bool {
	for _, v := range DeckFormats() {
		if f == v {
			return true
		}
	}
	return false
}

func ParseDeckFormat(s string) (DeckFormat, error) {
	f := DeckFormat(s)
	if !f.Valid() {
		return "", fmt.Errorf("invalid deck format %q", s)
	}
	return f, nil
}
