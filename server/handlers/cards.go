package handlers

import (
	"github.com/ellavondegurechaff/deckvault/server/models"
	"github.com/ellavondegurechaff/deckvault/server/utils"
	"github.com/gofiber/fiber/v2"
)

func CreateCard(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CardCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		card, details := req.Validate()
		if details != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed", details)
		}

		if err := webApp.Repos.Card.Create(c.Context(), card); err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendCreated(c, models.NewCardResponse(card), "Card created")
	}
}

func ListCards(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, limit := parsePagination(c)

		cards, total, err := webApp.Repos.Card.List(c.Context(), skip, limit)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendPaginated(c, models.NewCardListResponse(cards), &models.PaginationInfo{
			Skip:  skip,
			Limit: limit,
			Total: int64(total),
		}, "Cards retrieved")
	}
}

func SearchCards(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")
		skip, limit := parsePagination(c)

		cards, err := webApp.Repos.Card.SearchByName(c.Context(), name, skip, limit)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, models.NewCardListResponse(cards), "Cards found")
	}
}

// GetCardsByCollection lists the cards of one collection, paginated.
func GetCardsByCollection(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}
		skip, limit := parsePagination(c)

		cards, err := webApp.Repos.Card.GetByCollectionID(c.Context(), id, skip, limit)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, models.NewCardListResponse(cards), "Cards retrieved")
	}
}

func GetCard(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		card, err := webApp.Repos.Card.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, models.NewCardResponse(card), "Card retrieved")
	}
}

func UpdateCard(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		var req models.CardUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		update, details := req.Validate()
		if details != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed", details)
		}

		card, err := webApp.Repos.Card.Update(c.Context(), id, update)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, models.NewCardResponse(card), "Card updated")
	}
}

func DeleteCard(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		if err := webApp.Repos.Card.Delete(c.Context(), id); err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendNoContent(c)
	}
}

// CardStatsByCollection returns card counts grouped by collection.
func CardStatsByCollection(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		counts, err := webApp.Repos.Card.CountByCollection(c.Context())
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, counts, "Card counts by collection")
	}
}

// CardStatsByRarity returns card counts grouped by rarity.
func CardStatsByRarity(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		counts, err := webApp.Repos.Card.CountByRarity(c.Context())
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, counts, "Card counts by rarity")
	}
}

// CardStatsByType returns card counts grouped by type.
func CardStatsByType(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		counts, err := webApp.Repos.Card.CountByType(c.Context())
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, counts, "Card counts by type")
	}
}
