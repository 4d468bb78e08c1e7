package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"auris/globals"

	"github.com/julienschmidt/httprouter"
)

func confirmRequest(sid string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/checkout/order/x/confirm", nil)
	return r.WithContext(context.WithValue(r.Context(), globals.SessionIDKey, sid))
}

func TestConfirmHandlerRejectsForeignSession(t *testing.T) {
	flow, sessions := newTestFlow(newFakeNotifier(nil), newFakeNoticer())
	h := NewHandler(flow)

	victim := sessions.Get("victim")
	victim.AddToCart(product("1", 100), 2)
	order, err := flow.Submit("victim", billing())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	ps := httprouter.Params{{Key: "orderid", Value: order.OrderID}}

	rec := httptest.NewRecorder()
	h.Confirm(rec, confirmRequest("attacker"), ps)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign session, got %d", rec.Code)
	}
	if got := victim.GetCartCount(); got != 2 {
		t.Fatalf("foreign confirm cleared the victim's cart, count %d", got)
	}

	rec = httptest.NewRecorder()
	h.Confirm(rec, confirmRequest("victim"), ps)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner confirm failed: %d %s", rec.Code, rec.Body.String())
	}
}

func TestCancelHandlerRejectsForeignSession(t *testing.T) {
	flow, sessions := newTestFlow(newFakeNotifier(nil), newFakeNoticer())
	h := NewHandler(flow)

	sessions.Get("victim").AddToCart(product("1", 100), 1)
	order, _ := flow.Submit("victim", billing())
	ps := httprouter.Params{{Key: "orderid", Value: order.OrderID}}

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/api/checkout/order/x", nil)
	h.Cancel(rec, r.WithContext(context.WithValue(r.Context(), globals.SessionIDKey, "attacker")), ps)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign session, got %d", rec.Code)
	}

	// the order is still pending for its owner
	if _, ok := flow.Order("victim", order.OrderID); !ok {
		t.Fatal("pending order lost after foreign cancel attempt")
	}
}
