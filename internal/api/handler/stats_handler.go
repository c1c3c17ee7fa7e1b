package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foodrankr/backend/internal/core/ports"
)

type StatsHandler struct {
	service ports.StatsService
}

func NewStatsHandler(service ports.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Get handles GET /admin/stats.
//
// @Summary      Admin dashboard counters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Stats
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/stats [get]
func (h *StatsHandler) Get(c echo.Context) error {
	admin, err := ctxUser(c)
	if err != nil {
		return err
	}

	stats, err := h.service.Counts(c.Request().Context(), admin)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
