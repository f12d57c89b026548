package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fonfolio/internal/api/flash"
	"fonfolio/internal/api/request"
	"fonfolio/internal/apperrors"
	"fonfolio/internal/model"
	"fonfolio/internal/service"
	"fonfolio/internal/validation"
)

// PageHandler renders the HTML dashboard and handles its form posts.
type PageHandler struct {
	portfolioService *service.PortfolioService
	flashes          *flash.Jar
	templates        *template.Template
}

// NewPageHandler creates a new PageHandler with the provided service,
// flash jar and parsed templates.
func NewPageHandler(portfolioService *service.PortfolioService, flashes *flash.Jar, templates *template.Template) *PageHandler {
	return &PageHandler{
		portfolioService: portfolioService,
		flashes:          flashes,
		templates:        templates,
	}
}

// indexPage is the template data for the dashboard.
type indexPage struct {
	View        model.PortfolioView
	Flash       *flash.Message
	ChartLabels []string
	ChartValues []float64
}

// Index handles GET / and renders the dashboard: positions, holdings,
// totals, the allocation chart and the add form.
//
// A store read failure is fatal to the request and rendered as a
// page-level error; missing live prices only degrade individual rows.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	view, err := h.portfolioService.GetPortfolioView(r.Context())
	if err != nil {
		log.Printf("failed to load portfolio: %v", err)
		http.Error(w, "Failed to load portfolio. Check the store configuration and try again.", http.StatusInternalServerError)
		return
	}

	page := indexPage{View: view}
	if msg, ok := h.flashes.Pop(w, r); ok {
		page.Flash = &msg
	}

	for _, p := range view.Positions {
		if p.CurrentValue == nil {
			continue
		}
		page.ChartLabels = append(page.ChartLabels, p.Code)
		page.ChartValues = append(page.ChartValues, p.CurrentValue.InexactFloat64())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "index.html", page); err != nil {
		log.Printf("failed to render index: %v", err)
	}
}

// AddHolding handles the POST /holdings form: validates the input, appends
// the row and redirects back to the dashboard with a flash message.
func (h *PageHandler) AddHolding(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.flashes.Set(w, "danger", "Could not read the form submission.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	req := request.AddHoldingRequest{
		Code:     r.PostFormValue("code"),
		Date:     r.PostFormValue("date"),
		Quantity: r.PostFormValue("quantity"),
		Price:    r.PostFormValue("price"),
	}

	holding, err := h.portfolioService.AddHolding(r.Context(), req)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			h.flashes.Set(w, "danger", "Invalid input: "+vErr.Error())
		} else {
			log.Printf("failed to add holding: %v", err)
			h.flashes.Set(w, "danger", "Could not save the holding. Try again.")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.flashes.Set(w, "success", "Added "+holding.Code+" purchase.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteHolding handles POST /holdings/{row}/delete and redirects back to
// the dashboard with a flash message.
func (h *PageHandler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	row, err := validation.ParseRowIndex(chi.URLParam(r, "row"))
	if err != nil {
		h.flashes.Set(w, "danger", "Invalid row identifier.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.portfolioService.DeleteHolding(r.Context(), row); err != nil {
		if errors.Is(err, apperrors.ErrHoldingNotFound) {
			h.flashes.Set(w, "danger", "That holding no longer exists.")
		} else {
			log.Printf("failed to delete holding %d: %v", row, err)
			h.flashes.Set(w, "danger", "Could not delete the holding. Try again.")
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.flashes.Set(w, "success", "Holding deleted.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
