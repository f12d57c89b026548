package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fonfolio/internal/api/flash"
	"fonfolio/internal/service"
	"fonfolio/internal/testutil"
	"fonfolio/internal/web"
)

func setupPageHandler(t *testing.T) (*PageHandler, *testutil.MemStore, *flash.Jar) {
	t.Helper()

	store := testutil.NewMemStore()
	feed := testutil.NewScriptedFeed()
	svc := service.NewPortfolioService(store, feed)

	flashes, err := flash.NewJar("")
	if err != nil {
		t.Fatalf("Failed to create flash jar: %v", err)
	}
	templates, err := web.Templates()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}

	return NewPageHandler(svc, flashes, templates), store, flashes
}

func TestPageHandler_Index(t *testing.T) {
	t.Run("renders the dashboard", func(t *testing.T) {
		handler, store, _ := setupPageHandler(t)
		store.Append(context.Background(), testutil.Holding(t, "AFA", "2024-01-01", "100", "1.50")) //nolint:errcheck

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		handler.Index(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, "AFA") {
			t.Error("Expected the holding code in the page")
		}
		if !strings.Contains(body, "150.00") {
			t.Error("Expected the cost basis in the page")
		}
	})

	t.Run("shows a page-level error when the store read fails", func(t *testing.T) {
		handler, store, _ := setupPageHandler(t)
		store.ListErr = errStore

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		handler.Index(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
	})

	t.Run("renders and clears the flash message", func(t *testing.T) {
		handler, _, flashes := setupPageHandler(t)

		seed := httptest.NewRecorder()
		flashes.Set(seed, "success", "Holding deleted.")

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(seed.Result().Cookies()[0])
		w := httptest.NewRecorder()

		handler.Index(w, req)

		if !strings.Contains(w.Body.String(), "Holding deleted.") {
			t.Error("Expected the flash message in the page")
		}
	})
}

func TestPageHandler_AddHolding(t *testing.T) {
	t.Run("valid form appends and redirects", func(t *testing.T) {
		handler, store, _ := setupPageHandler(t)

		req := testutil.NewFormRequest("/holdings", map[string]string{
			"code":     "afa",
			"date":     "2024-01-01",
			"quantity": "100",
			"price":    "1.50",
		})
		w := httptest.NewRecorder()

		handler.AddHolding(w, req)

		if w.Code != http.StatusSeeOther {
			t.Fatalf("Expected redirect, got %d", w.Code)
		}
		if got := w.Header().Get("Location"); got != "/" {
			t.Errorf("Expected redirect to /, got %q", got)
		}
		if store.Len() != 1 {
			t.Errorf("Expected 1 stored row, got %d", store.Len())
		}
	})

	t.Run("invalid form redirects without storing", func(t *testing.T) {
		handler, store, _ := setupPageHandler(t)

		req := testutil.NewFormRequest("/holdings", map[string]string{
			"code":     "AFA",
			"date":     "2024-01-01",
			"quantity": "-1",
			"price":    "1.50",
		})
		w := httptest.NewRecorder()

		handler.AddHolding(w, req)

		if w.Code != http.StatusSeeOther {
			t.Fatalf("Expected redirect, got %d", w.Code)
		}
		if store.Len() != 0 {
			t.Errorf("Expected store untouched, got %d rows", store.Len())
		}
	})
}

func TestPageHandler_DeleteHolding(t *testing.T) {
	t.Run("deletes and redirects", func(t *testing.T) {
		handler, store, _ := setupPageHandler(t)
		store.Append(context.Background(), testutil.Holding(t, "AFA", "2024-01-01", "100", "1.50")) //nolint:errcheck

		req := testutil.NewRequestWithURLParams(
			http.MethodPost,
			"/holdings/1/delete",
			map[string]string{"row": "1"},
		)
		w := httptest.NewRecorder()

		handler.DeleteHolding(w, req)

		if w.Code != http.StatusSeeOther {
			t.Fatalf("Expected redirect, got %d", w.Code)
		}
		if store.Len() != 0 {
			t.Errorf("Expected empty store, got %d rows", store.Len())
		}
	})

	t.Run("missing row still redirects with a flash", func(t *testing.T) {
		handler, _, _ := setupPageHandler(t)

		req := testutil.NewRequestWithURLParams(
			http.MethodPost,
			"/holdings/9/delete",
			map[string]string{"row": "9"},
		)
		w := httptest.NewRecorder()

		handler.DeleteHolding(w, req)

		if w.Code != http.StatusSeeOther {
			t.Fatalf("Expected redirect, got %d", w.Code)
		}
		if len(w.Result().Cookies()) == 0 {
			t.Error("Expected a flash cookie on failure")
		}
	})
}
