package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/foodrankr/backend/internal/api/metrics"
	"github.com/foodrankr/backend/internal/core/ports"
)

// CompanyHandler serves the company listing and the approval workflow.
type CompanyHandler struct {
	service ports.CompanyService
}

func NewCompanyHandler(service ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

// List handles GET /companies.
//
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Param        country   query     string  false  "Exact country match"
// @Param        approved  query     bool    false  "Approval state (default true)"
// @Success      200       {array}   domain.Company
// @Failure      400       {object}  errorResponse
// @Router       /companies [get]
func (h *CompanyHandler) List(c echo.Context) error {
	in := ports.ListCompaniesInput{Country: c.QueryParam("country")}
	if raw := c.QueryParam("approved"); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "approved must be a boolean")
		}
		in.Approved = &approved
	}

	companies, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companies)
}

// Create handles POST /companies. Admins get an approved company, everyone
// else a pending one.
//
// @Summary      Create a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCompanyRequest  true  "Company"
// @Success      201   {object}  domain.Company
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /companies [post]
func (h *CompanyHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createCompanyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	company, err := h.service.Create(c.Request().Context(), req.Name, req.Country, user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, company)
}

// Approve handles POST /admin/companies/approve.
//
// @Summary      Set a company's approval flag
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      approveCompanyRequest  true  "Approval decision"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/companies/approve [post]
func (h *CompanyHandler) Approve(c echo.Context) error {
	admin, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req approveCompanyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.service.SetApproval(c.Request().Context(), req.CompanyID, req.Approved, admin); err != nil {
		return err
	}

	action := "unapprove"
	if req.Approved {
		action = "approve"
	}
	metrics.CompanyApprovalsTotal.WithLabelValues(action).Inc()

	return c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

// ListRequests handles GET /admin/company-requests.
//
// @Summary      List open company requests
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.PendingCompanyRequest
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/company-requests [get]
func (h *CompanyHandler) ListRequests(c echo.Context) error {
	admin, err := ctxUser(c)
	if err != nil {
		return err
	}

	requests, err := h.service.ListRequests(c.Request().Context(), admin)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// ApproveRequest handles POST /admin/company-requests/approve.
//
// @Summary      Promote a company request into an approved company
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      approveCompanyRequestRequest  true  "Request to approve"
// @Success      200   {object}  domain.Company
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/company-requests/approve [post]
func (h *CompanyHandler) ApproveRequest(c echo.Context) error {
	admin, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req approveCompanyRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	company, err := h.service.ApproveRequest(c.Request().Context(), req.RequestID, admin)
	if err != nil {
		return err
	}

	metrics.CompanyApprovalsTotal.WithLabelValues("promote_request").Inc()
	return c.JSON(http.StatusOK, company)
}
