package cart

import (
	"reflect"
	"testing"

	"auris/models"
)

func product(id string, price int) models.Product {
	return models.Product{
		ID:       id,
		Slug:     "product-" + id,
		Name:     "Product " + id,
		Category: models.CategoryHeadphones,
		Price:    price,
	}
}

func TestAddToCartMergesSameProduct(t *testing.T) {
	s := NewStore()
	p := product("1", 100)

	s.AddToCart(p, 1)
	s.AddToCart(p, 2)
	s.AddToCart(p, 3)

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if items[0].Quantity != 6 {
		t.Fatalf("expected quantity 6, got %d", items[0].Quantity)
	}
}

func TestAddToCartKeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("2", 200), 1)
	s.AddToCart(product("1", 100), 1)
	s.AddToCart(product("3", 300), 1)
	s.AddToCart(product("1", 100), 4)

	items := s.Items()
	want := []string{"2", "1", "3"}
	for i, id := range want {
		if items[i].Product.ID != id {
			t.Fatalf("position %d: expected product %s, got %s", i, id, items[i].Product.ID)
		}
	}
}

func TestAddToCartIgnoresNonPositiveQuantity(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("1", 100), 0)
	s.AddToCart(product("1", 100), -2)
	if got := s.GetCartCount(); got != 0 {
		t.Fatalf("expected empty cart, got count %d", got)
	}
}

func TestUpdateQuantity(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("1", 100), 2)

	s.UpdateQuantity("1", 5)
	if items := s.Items(); items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}

	// zero removes the item instead of persisting a zero quantity
	s.UpdateQuantity("1", 0)
	if items := s.Items(); len(items) != 0 {
		t.Fatalf("expected item removed, got %d items", len(items))
	}

	s.AddToCart(product("1", 100), 2)
	s.UpdateQuantity("1", -3)
	if items := s.Items(); len(items) != 0 {
		t.Fatalf("expected negative update to remove item, got %d items", len(items))
	}

	// unknown product id is a no-op
	s.AddToCart(product("1", 100), 2)
	s.UpdateQuantity("nope", 7)
	items := s.Items()
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("expected untouched cart, got %+v", items)
	}
}

func TestGetCartTotalAndCount(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("1", 599), 2)
	s.AddToCart(product("2", 2999), 1)

	if got := s.GetCartTotal(); got != 599*2+2999 {
		t.Fatalf("expected subtotal %d, got %d", 599*2+2999, got)
	}
	if got := s.GetCartCount(); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
	// idempotent under repeated calls
	if got := s.GetCartTotal(); got != 599*2+2999 {
		t.Fatalf("repeated total changed: %d", got)
	}
}

func TestClearCart(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("1", 100), 3)
	s.AddToCart(product("2", 200), 1)

	s.ClearCart()
	if got := s.GetCartCount(); got != 0 {
		t.Fatalf("expected count 0 after clear, got %d", got)
	}
	if got := s.GetCartTotal(); got != 0 {
		t.Fatalf("expected total 0 after clear, got %d", got)
	}

	// clearing an empty cart stays empty
	s.ClearCart()
	if got := s.GetCartCount(); got != 0 {
		t.Fatalf("expected count 0, got %d", got)
	}
}

func TestAddThenRemoveRoundTrip(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("1", 100), 2)
	before := s.Snapshot()

	s.AddToCart(product("2", 200), 1)
	s.RemoveFromCart("2")

	after := s.Snapshot()
	if !reflect.DeepEqual(before.Items, after.Items) {
		t.Fatalf("round trip changed items: before %+v after %+v", before.Items, after.Items)
	}
	if before.Total != after.Total || before.Count != after.Count {
		t.Fatalf("round trip changed totals: before %+v after %+v", before, after)
	}
}

func TestRemoveFromCartMissingIsNoop(t *testing.T) {
	s := NewStore()
	s.AddToCart(product("1", 100), 1)
	s.RemoveFromCart("nope")
	if got := s.GetCartCount(); got != 1 {
		t.Fatalf("expected count 1, got %d", got)
	}
}

func TestListenersSeeEveryMutation(t *testing.T) {
	s := NewStore()
	var got []Snapshot
	unsub := s.Subscribe(func(snap Snapshot) {
		got = append(got, snap)
	})

	s.AddToCart(product("1", 100), 1)
	s.UpdateQuantity("1", 4)
	s.ClearCart()

	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if got[1].Total != 400 || got[1].Count != 4 {
		t.Fatalf("expected snapshot total 400 count 4, got %+v", got[1])
	}
	if got[2].Count != 0 {
		t.Fatalf("expected empty snapshot after clear, got %+v", got[2])
	}

	unsub()
	s.AddToCart(product("2", 200), 1)
	if len(got) != 3 {
		t.Fatalf("unsubscribed listener still notified")
	}
}
