package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fonfolio/internal/api/request"
	"fonfolio/internal/api/response"
	"fonfolio/internal/apperrors"
	"fonfolio/internal/service"
	"fonfolio/internal/validation"
)

// PortfolioHandler handles the JSON API endpoints for the portfolio. It
// serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the portfolioService.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided
// service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolio handles GET requests for the full valued portfolio.
//
// Endpoint: GET /api/v1/portfolio
// Response: 200 OK with PortfolioView (holdings, positions, summary)
// Error: 500 Internal Server Error if the store read fails
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	view, err := h.portfolioService.GetPortfolioView(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToListHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, view)
}

// CreateHolding handles POST requests to record a new fund purchase.
//
// Endpoint: POST /api/v1/holdings
// Request Body: AddHoldingRequest (code, date, quantity, price)
// Response: 201 Created with the stored Holding
// Error: 400 Bad Request if the body is invalid or validation fails
// Error: 500 Internal Server Error if the store write fails
func (h *PortfolioHandler) CreateHolding(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AddHoldingRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	holding, err := h.portfolioService.AddHolding(r.Context(), req)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", vErr.Fields)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToAddHolding.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, holding)
}

// DeleteHolding handles DELETE requests for a holding row.
//
// Endpoint: DELETE /api/v1/holdings/{row}
// Response: 204 No Content
// Error: 400 Bad Request if the row identifier is not a positive integer
// Error: 404 Not Found if no holding exists at that row
// Error: 500 Internal Server Error if the store write fails
func (h *PortfolioHandler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	row, err := validation.ParseRowIndex(chi.URLParam(r, "row"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRowIndex.Error(), chi.URLParam(r, "row"))
		return
	}

	if err := h.portfolioService.DeleteHolding(r.Context(), row); err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrHoldingNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDeleteHolding.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
