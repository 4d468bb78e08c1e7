package cart

import (
	"encoding/json"
	"log"
	"net/http"

	"auris/catalog"
	"auris/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler serves the cart HTTP surface for the session resolved by the
// session middleware.
type Handler struct {
	sessions *Sessions
	catalog  *catalog.Catalog
}

func NewHandler(sessions *Sessions, cat *catalog.Catalog) *Handler {
	return &Handler{sessions: sessions, catalog: cat}
}

func (h *Handler) storeFor(w http.ResponseWriter, r *http.Request) (*Store, bool) {
	sid := utils.GetSessionIDFromRequest(r)
	if sid == "" {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return nil, false
	}
	return h.sessions.Get(sid), true
}

// GetCart returns line items plus the running subtotal and badge count.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, store.Snapshot())
}

// AddItem adds a product by slug; an existing line has its quantity
// incremented rather than duplicated.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var payload struct {
		Slug     string `json:"slug"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("AddItem decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if payload.Slug == "" || payload.Quantity < 1 {
		http.Error(w, "Missing or invalid fields", http.StatusBadRequest)
		return
	}

	product, ok := h.catalog.BySlug(payload.Slug)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}
	store.AddToCart(product, payload.Quantity)
	utils.RespondWithJSON(w, http.StatusCreated, store.Snapshot())
}

// UpdateItem sets a line item's quantity. Zero or below removes the item,
// matching the panel's minus button hitting zero.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Println("UpdateItem decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}
	store.UpdateQuantity(ps.ByName("productid"), payload.Quantity)
	utils.RespondWithJSON(w, http.StatusOK, store.Snapshot())
}

// RemoveItem drops a line item; removing an absent product is a no-op.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}
	store.RemoveFromCart(ps.ByName("productid"))
	utils.RespondWithJSON(w, http.StatusOK, store.Snapshot())
}

// ClearCart is the panel's "Remove all".
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}
	store.ClearCart()
	utils.RespondWithJSON(w, http.StatusOK, store.Snapshot())
}

// GetCount returns the header badge count.
func (h *Handler) GetCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	store, ok := h.storeFor(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": store.GetCartCount()})
}
