package live

import (
	"encoding/json"
	"testing"
	"time"

	"auris/cart"
	"auris/models"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:      make(chan []byte, 10),
		SessionID: "s1",
	}
	hub.register <- client

	snap := cart.Snapshot{Total: 599, Count: 1}
	hub.PushCartUpdate("s1", snap)

	select {
	case got := <-client.Send:
		var out outboundPayload
		if err := json.Unmarshal(got, &out); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if out.Action != "cart" || out.Cart == nil || out.Cart.Total != 599 {
			t.Fatalf("unexpected payload: %+v", out)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for cart update")
	}

	hub.unregister <- client
}

func TestHubNoticeReachesOnlyItsSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	mine := &Client{Send: make(chan []byte, 10), SessionID: "s1"}
	other := &Client{Send: make(chan []byte, 10), SessionID: "s2"}
	hub.register <- mine
	hub.register <- other

	hub.PushNotice("s1", models.Notice{Kind: "email_failed", Title: "Order confirmed (email failed)"})

	select {
	case got := <-mine.Send:
		var out outboundPayload
		if err := json.Unmarshal(got, &out); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if out.Action != "notice" || out.Notice == nil || out.Notice.Kind != "email_failed" {
			t.Fatalf("unexpected payload: %+v", out)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for notice")
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("foreign session received payload: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
