package handlers

import (
	dbmodels "github.com/ellavondegurechaff/deckvault/deckvault/database/models"
	"github.com/ellavondegurechaff/deckvault/deckvault/database/repositories"
	"github.com/ellavondegurechaff/deckvault/server/models"
	"github.com/ellavondegurechaff/deckvault/server/utils"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func CreateUser(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.UserCreateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if details := req.Validate(); details != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed", details)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return utils.SendInternalServerError(c, "Failed to process password")
		}

		user := &dbmodels.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: string(hash),
		}
		if err := webApp.Repos.User.Create(c.Context(), user); err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendCreated(c, models.NewUserResponse(user), "User created")
	}
}

func ListUsers(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, limit := parsePagination(c)

		users, total, err := webApp.Repos.User.List(c.Context(), skip, limit)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendPaginated(c, models.NewUserListResponse(users), &models.PaginationInfo{
			Skip:  skip,
			Limit: limit,
			Total: int64(total),
		}, "Users retrieved")
	}
}

func GetUser(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		user, err := webApp.Repos.User.GetByID(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, models.NewUserResponse(user), "User retrieved")
	}
}

func UpdateUser(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		var req models.UserUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body", nil)
		}

		if details := req.Validate(); details != nil {
			return utils.SendUnprocessableEntity(c, "Validation failed", details)
		}

		update := repositories.UserUpdate{Name: req.Name, Email: req.Email}
		if req.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				return utils.SendInternalServerError(c, "Failed to process password")
			}
			hashed := string(hash)
			update.PasswordHash = &hashed
		}

		user, err := webApp.Repos.User.Update(c.Context(), id, update)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, models.NewUserResponse(user), "User updated")
	}
}

func DeleteUser(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		if err := webApp.Repos.User.Delete(c.Context(), id); err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendNoContent(c)
	}
}

// GetUserDecks lists the decks owned by one user.
func GetUserDecks(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		decks, err := webApp.Repos.User.GetDecks(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, models.NewDeckListResponse(decks), "Decks retrieved")
	}
}

// CountUserDecks returns how many decks one user owns.
func CountUserDecks(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		count, err := webApp.Repos.User.CountDecks(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, fiber.Map{
			"user_id": id,
			"count":   count,
		}, "Deck count retrieved")
	}
}

// UserDeckFormatBreakdown maps format to deck count for one owner.
func UserDeckFormatBreakdown(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return utils.SendBadRequest(c, err.Error(), nil)
		}

		counts, err := webApp.Repos.User.CountDecksByFormat(c.Context(), id)
		if err != nil {
			return sendRepoError(c, err)
		}

		return utils.SendSuccess(c, counts, "Deck format breakdown retrieved")
	}
}
