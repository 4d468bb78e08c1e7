package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"auris/catalog"
	"auris/globals"

	"github.com/julienschmidt/httprouter"
)

func newTestHandler() *Handler {
	return NewHandler(NewSessions(time.Hour), catalog.Default)
}

func request(method, target, body, sid string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return r.WithContext(context.WithValue(r.Context(), globals.SessionIDKey, sid))
}

func decodeSnapshot(t *testing.T, rec *httptest.ResponseRecorder) Snapshot {
	t.Helper()
	var snap Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return snap
}

func TestAddItemHandler(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.AddItem(rec, request(http.MethodPost, "/api/cart/items", `{"slug":"yx1-earphones","quantity":2}`, "s1"), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	snap := decodeSnapshot(t, rec)
	if snap.Count != 2 || snap.Total != 2*599 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	// same product again merges into one line
	rec = httptest.NewRecorder()
	h.AddItem(rec, request(http.MethodPost, "/api/cart/items", `{"slug":"yx1-earphones","quantity":1}`, "s1"), nil)
	snap = decodeSnapshot(t, rec)
	if len(snap.Items) != 1 || snap.Items[0].Quantity != 3 {
		t.Fatalf("expected merged line item, got %+v", snap.Items)
	}
}

func TestAddItemUnknownSlug(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.AddItem(rec, request(http.MethodPost, "/api/cart/items", `{"slug":"does-not-exist","quantity":1}`, "s1"), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	// cart untouched
	rec = httptest.NewRecorder()
	h.GetCart(rec, request(http.MethodGet, "/api/cart", "", "s1"), nil)
	if snap := decodeSnapshot(t, rec); snap.Count != 0 {
		t.Fatalf("expected empty cart, got %+v", snap)
	}
}

func TestAddItemRejectsBadPayload(t *testing.T) {
	h := newTestHandler()

	for _, body := range []string{`not json`, `{"slug":"","quantity":1}`, `{"slug":"yx1-earphones","quantity":0}`} {
		rec := httptest.NewRecorder()
		h.AddItem(rec, request(http.MethodPost, "/api/cart/items", body, "s1"), nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestUpdateAndRemoveHandlers(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.AddItem(rec, request(http.MethodPost, "/api/cart/items", `{"slug":"xx59","quantity":1}`, "s1"), nil)

	ps := httprouter.Params{{Key: "productid", Value: "2"}}

	rec = httptest.NewRecorder()
	h.UpdateItem(rec, request(http.MethodPut, "/api/cart/items/2", `{"quantity":4}`, "s1"), ps)
	if snap := decodeSnapshot(t, rec); snap.Count != 4 {
		t.Fatalf("expected count 4, got %+v", snap)
	}

	// zero quantity removes the line
	rec = httptest.NewRecorder()
	h.UpdateItem(rec, request(http.MethodPut, "/api/cart/items/2", `{"quantity":0}`, "s1"), ps)
	if snap := decodeSnapshot(t, rec); len(snap.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", snap)
	}

	// removing a missing product stays a no-op
	rec = httptest.NewRecorder()
	h.RemoveItem(rec, request(http.MethodDelete, "/api/cart/items/2", "", "s1"), ps)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestClearCartHandler(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	h.AddItem(rec, request(http.MethodPost, "/api/cart/items", `{"slug":"zx7-speaker","quantity":2}`, "s1"), nil)

	rec = httptest.NewRecorder()
	h.ClearCart(rec, request(http.MethodDelete, "/api/cart", "", "s1"), nil)
	if snap := decodeSnapshot(t, rec); snap.Count != 0 || snap.Total != 0 {
		t.Fatalf("expected cleared cart, got %+v", snap)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.AddItem(rec, request(http.MethodPost, "/api/cart/items", `{"slug":"zx9-speaker","quantity":1}`, "s1"), nil)

	rec = httptest.NewRecorder()
	h.GetCart(rec, request(http.MethodGet, "/api/cart", "", "s2"), nil)
	if snap := decodeSnapshot(t, rec); snap.Count != 0 {
		t.Fatalf("sessions leaked cart state: %+v", snap)
	}
}

func TestMissingSessionRejected(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	h.GetCart(rec, r, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
