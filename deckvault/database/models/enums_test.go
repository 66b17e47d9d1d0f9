package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCardType(t *testing.T) {
	for _, v := range CardTypes() {
		parsed, err := ParseCardType(string(v))
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}

	_, err := ParseCardType("Goblin")
	assert.Error(t, err)

	// Parsing is case sensitive
	_, err = ParseCardType("dragon")
	assert.Error(t, err)
}

func TestParseCardRarity(t *testing.T) {
	for _, v := range CardRarities() {
		parsed, err := ParseCardRarity(string(v))
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}

	_, err := ParseCardRarity("Legendary")
	assert.Error(t, err)
}

func TestParseDeckFormat(t *testing.T) {
	for _, v := range DeckFormats() {
		parsed, err := ParseDeckFormat(string(v))
		require.NoError(t, err)
		assert.Equal(t, v, parsed)
	}

	_, err := ParseDeckFormat("Vintage")
	assert.Error(t, err)
}

func TestEnumValid(t *testing.T) {
	assert.True(t, CardTypeSpell.Valid())
	assert.False(t, CardType("").Valid())
	assert.True(t, RarityMythic.Valid())
	assert.False(t, CardRarity("mythic").Valid())
	assert.True(t, FormatCommander.Valid())
	assert.False(t, DeckFormat("commander").Valid())
}
