package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"auris/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
)

const sessionCookie = "store_session"

// SessionClaims carry the anonymous shopper's session id.
type SessionClaims struct {
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// Session resolves the shopper's session from a signed cookie, minting a
// fresh one when absent or invalid. The cookie has no MaxAge, so the cart
// lives exactly as long as the browser session.
func Session(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		sid := ""
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			if claims, err := parseToken(cookie.Value); err == nil {
				sid = claims.SessionID
			}
		}

		if sid == "" {
			sid = uuid.New().String()
			token, err := mintToken(sid)
			if err != nil {
				http.Error(w, "Failed to create session", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), globals.SessionIDKey, sid)
		next(w, r.WithContext(ctx), ps)
	}
}

func mintToken(sid string) (string, error) {
	claims := SessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.SessionSecret)
}

func parseToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return globals.SessionSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if claims.SessionID == "" {
		return nil, fmt.Errorf("empty session id")
	}
	return claims, nil
}
