package handlers

import (
	"github.com/ellavondegurechaff/deckvault/server/models"
	"github.com/ellavondegurechaff/deckvault/server/utils"
	"github.com/gofiber/fiber/v2"
)

func CreateCollection(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CollectionCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		collection, details := req.Validate()
		if details != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed", details)
		}

		if err := webApp.Repos.Collection.Create(c.Context(), collection); err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendCreated(c, models.NewCollectionResponse(collection), "Collection created")
	}
}

func ListCollections(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, limit := parsePagination(c)

		collections, total, err := webApp.Repos.Collection.List(c.Context(), skip, limit)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendPaginated(c, models.NewCollectionListResponse(collections), &models.PaginationInfo{
			Skip:  skip,
			Limit: limit,
			Total: int64(total),
		}, "Collections retrieved")
	}
}

func SearchCollections(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")
		skip, limit := parsePagination(c)

		collections, err := webApp.Repos.Collection.SearchByName(c.Context(), name, skip, limit)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, models.NewCollectionListResponse(collections), "Collections found")
	}
}

func GetCollection(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		collection, err := webApp.Repos.Collection.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, models.NewCollectionResponse(collection), "Collection retrieved")
	}
}

func UpdateCollection(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		var req models.CollectionUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		update, details := req.Validate()
		if details != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed", details)
		}

		collection, err := webApp.Repos.Collection.Update(c.Context(), id, update)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, models.NewCollectionResponse(collection), "Collection updated")
	}
}

func DeleteCollection(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		if err := webApp.Repos.Collection.Delete(c.Context(), id); err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendNoContent(c)
	}
}
