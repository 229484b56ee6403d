// Package visitorcookie centralizes the anonymous visitor id cookie.
//
// The cookie carries only an opaque id; the visitor's language preference
// lives server-side keyed by it.
package visitorcookie

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"
)

// Name is the canonical visitor cookie name.
const Name = "dseza_visitor"

// Read returns the trimmed visitor id when present.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(Name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Ensure returns the request's visitor id, minting and setting one when the
// request carries none.
func Ensure(w http.ResponseWriter, r *http.Request) string {
	if id, ok := Read(r); ok {
		return id
	}
	id := newID()
	if w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     Name,
			Value:    id,
			Path:     "/",
			MaxAge:   int((365 * 24 * time.Hour).Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return id
}

func newID() string {
	var raw [16]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(raw[:])
}
