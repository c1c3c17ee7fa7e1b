package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodrankr/backend/internal/api/metrics"
	"github.com/foodrankr/backend/internal/core/domain"
	"github.com/foodrankr/backend/internal/core/ports"
)

type RankHandler struct {
	service ports.RankService
}

func NewRankHandler(service ports.RankService) *RankHandler {
	return &RankHandler{service: service}
}

func toRankResponse(fr *domain.FoodRank) rankResponse {
	return rankResponse{
		ID:        fr.ID,
		UserID:    fr.UserID,
		CompanyID: fr.CompanyID,
		CafeName:  fr.CafeName,
		Country:   fr.Country,
		Date:      fr.Date.Format(domain.RankDateLayout),
		Dish:      fr.Dish,
		Rating:    fr.Rating,
		ImageURL:  fr.ImageURL,
		Comment:   fr.Comment,
		CreatedAt: fr.CreatedAt,
		UpdatedAt: fr.UpdatedAt,
	}
}

// List handles GET /ranks.
//
// @Summary      Newest food ranks
// @Tags         ranks
// @Produce      json
// @Param        company_id  query     string  false  "Company id"
// @Param        date        query     string  false  "Calendar date (YYYY-MM-DD)"
// @Success      200         {array}   rankResponse
// @Failure      400         {object}  errorResponse
// @Router       /ranks [get]
func (h *RankHandler) List(c echo.Context) error {
	in := ports.ListRanksInput{CompanyID: c.QueryParam("company_id")}

	raw := c.QueryParam("date")
	if raw == "" {
		raw = c.QueryParam("date_str")
	}
	if raw != "" {
		day, err := time.Parse(domain.RankDateLayout, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		}
		in.Date = &day
	}

	ranks, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}

	resp := make([]rankResponse, 0, len(ranks))
	for _, fr := range ranks {
		resp = append(resp, toRankResponse(fr))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /ranks.
//
// @Summary      Post a food rank
// @Tags         ranks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRankRequest  true  "Rank"
// @Success      201   {object}  rankResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /ranks [post]
func (h *RankHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createRankRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	// The validator already checked the layout.
	day, _ := time.Parse(domain.RankDateLayout, req.Date)

	rank, err := h.service.Create(c.Request().Context(), user, ports.RankInput{
		Date:     day,
		Dish:     req.Dish,
		Rating:   req.Rating,
		Comment:  req.Comment,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return err
	}

	metrics.RanksCreatedTotal.WithLabelValues(strconv.Itoa(rank.Rating)).Inc()
	return c.JSON(http.StatusCreated, toRankResponse(rank))
}
