package handlers

import (
	"github.com/ellavondegurechaff/deckvault/server/models"
	"github.com/ellavondegurechaff/deckvault/server/utils"
	"github.com/gofiber/fiber/v2"
)

func CreateDeck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.DeckCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		deck, details := req.Validate()
		if details != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed", details)
		}

		if err := webApp.Repos.Deck.Create(c.Context(), deck); err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendCreated(c, models.NewDeckResponse(deck), "Deck created")
	}
}

func ListDecks(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, limit := parsePagination(c)

		decks, total, err := webApp.Repos.Deck.List(c.Context(), skip, limit)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendPaginated(c, models.NewDeckListResponse(decks), &models.PaginationInfo{
			Skip:  skip,
			Limit: limit,
			Total: int64(total),
		}, "Decks retrieved")
	}
}

func GetDeck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		deck, err := webApp.Repos.Deck.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, models.NewDeckResponse(deck), "Deck retrieved")
	}
}

// GetDeckCards returns a deck together with its full card list.
func GetDeckCards(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		deck, err := webApp.Repos.Deck.GetWithCards(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, models.NewDeckWithCardsResponse(deck), "Deck retrieved")
	}
}

func UpdateDeck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		var req models.DeckUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		update, details := req.Validate()
		if details != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed", details)
		}

		deck, err := webApp.Repos.Deck.Update(c.Context(), id, update)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, models.NewDeckResponse(deck), "Deck updated")
	}
}

func DeleteDeck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		if err := webApp.Repos.Deck.Delete(c.Context(), id); err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendNoContent(c)
	}
}

// AddCardToDeck adds one copy of a card to a deck, up to the copy limit.
func AddCardToDeck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deckID, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}
		cardID, err := parseIDParam(c, "card_id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		link, err := webApp.Repos.Deck.AddCard(c.Context(), deckID, cardID)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendCreated(c, models.NewDeckCardResponse(link), "Card added to deck")
	}
}

// RemoveCardFromDeck removes one copy of a card from a deck.
func RemoveCardFromDeck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		deckID, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}
		cardID, err := parseIDParam(c, "card_id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		if err := webApp.Repos.Deck.RemoveCard(c.Context(), deckID, cardID); err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendNoContent(c)
	}
}

// CountDeckCards returns the total number of card copies in a deck.
func CountDeckCards(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		count, err := webApp.Repos.Deck.CountCards(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, fiber.Map{
			"deck_id": id,
			"count":   count,
		}, "Card count retrieved")
	}
}

// DeckStatsByFormat returns deck counts grouped by format.
func DeckStatsByFormat(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		counts, err := webApp.Repos.Deck.CountByFormat(c.Context())
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, counts, "Deck counts by format")
	}
}

// DeckAverageCardCount returns the mean card count across all decks.
func DeckAverageCardCount(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		avg, err := webApp.Repos.Deck.AverageCardsPerDeck(c.Context())
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, fiber.Map{
			"average_cards_per_deck": avg,
		}, "Average card count retrieved")
	}
}
