package handlers

import (
	"fmt"
	"strconv"

	"github.com/ellavondegurechaff/deckvault/deckvault/database"
	"github.com/ellavondegurechaff/deckvault/deckvault/database/repositories"
	"github.com/ellavondegurechaff/deckvault/server/models"
	"github.com/ellavondegurechaff/deckvault/server/utils"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// WebApp holds the shared dependencies of all HTTP handlers.
type WebApp struct {
	DB    *database.DB
	Repos *models.Repositories
}

func NewWebApp(db *database.DB, repos *models.Repositories) *WebApp {
	return &WebApp{DB: db, Repos: repos}
}

// HealthCheck reports service and database liveness.
func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := "healthy"
		dbStatus := "connected"
		if err := webApp.DB.Ping(c.Context()); err != nil {
			status = "degraded"
			dbStatus = "disconnected"
		}

		payload := fiber.Map{
			"status":   status,
			"database": dbStatus,
		}
		if pool := webApp.DB.GetPool(); pool != nil {
			stat := pool.Stat()
			payload["pool"] = fiber.Map{
				"total_conns": stat.TotalConns(),
				"idle_conns":  stat.IdleConns(),
			}
		}

		return utils.SendSuccess(c, payload, "Health check")
	}
}

// parseIDParam reads a positive integer path parameter. The returned error is
// the validation failure itself; callers map it to a 400 response.
func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Params(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter %q: must be a positive integer", name, raw)
	}
	return id, nil
}

// parsePagination reads skip/limit query parameters with sane bounds.
func parsePagination(c *fiber.Ctx) (skip, limit int) {
	skip = c.QueryInt("skip", 0)
	if skip < 0 {
		skip = 0
	}
	limit = c.QueryInt("limit", defaultListLimit)
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return skip, limit
}

// sendRepoError maps repository errors onto HTTP statuses.
func sendRepoError(c *fiber.Ctx, err error) error {
	switch {
	case repositories.IsNotFound(err):
		return utils.SendNotFound(c, err.Error())
	case repositories.IsConflict(err):
		return utils.SendConflict(c, err.Error(), nil)
	case repositories.IsCopyLimit(err):
		return utils.SendConflict(c, err.Error(), nil)
	case repositories.IsEmptyUpdate(err):
		return utils.SendBadRequest(c, err.Error(), nil)
	case repositories.IsReferenced(err):
		return utils.SendBadRequest(c, err.Error(), nil)
	default:
		return utils.SendInternalServerError(c, "Internal server error")
	}
}
