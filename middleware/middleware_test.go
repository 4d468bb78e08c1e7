package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"auris/globals"

	"github.com/julienschmidt/httprouter"
)

func sessionEcho(got *string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		sid, _ := r.Context().Value(globals.SessionIDKey).(string)
		*got = sid
		w.WriteHeader(http.StatusOK)
	}
}

func TestSessionMintsCookie(t *testing.T) {
	var sid string
	handler := Session(sessionEcho(&sid))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil), nil)

	if sid == "" {
		t.Fatal("no session id placed in context")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "store_session" {
		t.Fatalf("expected one session cookie, got %+v", cookies)
	}
	if cookies[0].MaxAge != 0 {
		t.Fatalf("session cookie must not outlive the browser session, MaxAge=%d", cookies[0].MaxAge)
	}
}

func TestSessionReusesValidCookie(t *testing.T) {
	var first, second string
	handler := Session(sessionEcho(&first))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil), nil)
	cookie := rec.Result().Cookies()[0]

	handler = Session(sessionEcho(&second))
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler(rec, req, nil)

	if second != first {
		t.Fatalf("session id changed across requests: %q vs %q", first, second)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("valid cookie should not be re-minted")
	}
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	var sid string
	handler := Session(sessionEcho(&sid))

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "store_session", Value: "garbage.token.value"})
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if sid == "" {
		t.Fatal("tampered cookie should still yield a fresh session")
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatal("fresh session cookie expected after tampered token")
	}
}
