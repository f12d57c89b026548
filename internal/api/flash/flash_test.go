package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestJar_RoundTrip(t *testing.T) {
	jar, err := NewJar("")
	if err != nil {
		t.Fatalf("NewJar failed: %v", err)
	}

	t.Run("set then pop returns the message once", func(t *testing.T) {
		w := httptest.NewRecorder()
		jar.Set(w, "success", "Added AFA purchase.")

		cookies := w.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("Expected 1 cookie, got %d", len(cookies))
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookies[0])
		w2 := httptest.NewRecorder()

		msg, ok := jar.Pop(w2, req)
		if !ok {
			t.Fatal("Expected a flash message")
		}
		if msg.Category != "success" || msg.Text != "Added AFA purchase." {
			t.Errorf("Unexpected message %+v", msg)
		}

		// Pop clears the cookie.
		cleared := w2.Result().Cookies()
		if len(cleared) != 1 || cleared[0].MaxAge != -1 {
			t.Error("Expected the flash cookie to be cleared")
		}
	})

	t.Run("no cookie means no message", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if _, ok := jar.Pop(httptest.NewRecorder(), req); ok {
			t.Error("Expected no message without a cookie")
		}
	})

	t.Run("token from a different key is rejected", func(t *testing.T) {
		other, err := NewJar("")
		if err != nil {
			t.Fatalf("NewJar failed: %v", err)
		}

		w := httptest.NewRecorder()
		other.Set(w, "success", "forged")

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(w.Result().Cookies()[0])

		if _, ok := jar.Pop(httptest.NewRecorder(), req); ok {
			t.Error("Expected token signed with another key to be rejected")
		}
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "fonfolio_flash", Value: "not-a-token"})

		if _, ok := jar.Pop(httptest.NewRecorder(), req); ok {
			t.Error("Expected garbage token to be rejected")
		}
	})
}

func TestNewJar_InvalidKey(t *testing.T) {
	if _, err := NewJar("definitely not base64 key material"); err == nil {
		t.Error("Expected invalid key to be rejected")
	}
}
