// Package flash implements one-shot status messages carried in a cookie
// between a form POST redirect and the next page render. The cookie payload
// is encrypted and signed with a fernet key so it cannot be forged or read
// client-side.
package flash

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fernet/fernet-go"
)

const cookieName = "fonfolio_flash"

// maxAge bounds how long a flash token stays valid. Anything older than a
// minute is a stale redirect and is dropped.
const maxAge = time.Minute

// Message is a single flash notification. Category is a presentation hint
// ("success" or "danger", matching the Bootstrap alert classes).
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Jar encrypts and decrypts flash cookies with a fixed key.
type Jar struct {
	key *fernet.Key
}

// NewJar creates a Jar from a base64 fernet key. An empty key generates a
// random per-process one, which means flashes do not survive a restart.
func NewJar(encodedKey string) (*Jar, error) {
	if encodedKey == "" {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate flash key: %w", err)
		}
		return &Jar{key: &key}, nil
	}

	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid flash key: %w", err)
	}
	return &Jar{key: key}, nil
}

// Set stores a flash message on the response.
func (j *Jar) Set(w http.ResponseWriter, category, text string) {
	payload, err := json.Marshal(Message{Category: category, Text: text})
	if err != nil {
		return
	}

	token, err := fernet.EncryptAndSign(payload, j.key)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    string(token),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop reads and clears the flash message from the request, if any. Invalid,
// forged or expired tokens read as no message.
func (j *Jar) Pop(w http.ResponseWriter, r *http.Request) (Message, bool) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return Message{}, false
	}

	// Clear regardless of whether the token verifies.
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	payload := fernet.VerifyAndDecrypt([]byte(cookie.Value), maxAge, []*fernet.Key{j.key})
	if payload == nil {
		return Message{}, false
	}

	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, false
	}

	return msg, true
}
