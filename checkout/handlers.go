package checkout

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"auris/models"
	"auris/utils"

	"github.com/julienschmidt/httprouter"
)

// Handler exposes the checkout flow over HTTP.
type Handler struct {
	flow *Flow
}

func NewHandler(flow *Flow) *Handler {
	return &Handler{flow: flow}
}

// GetSummary returns the live cart plus derived totals for the summary
// panel next to the form.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sid := utils.GetSessionIDFromRequest(r)
	if sid == "" {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}
	snap, totals := h.flow.Summary(sid)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"items":  snap.Items,
		"totals": totals,
	})
}

// Submit moves the session to the confirming state: fields are checked for
// presence only and the cart is snapshotted into a pending order.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sid := utils.GetSessionIDFromRequest(r)
	if sid == "" {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}

	var billing models.BillingDetails
	if err := json.NewDecoder(r.Body).Decode(&billing); err != nil {
		log.Println("Submit decode error:", err)
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	order, err := h.flow.Submit(sid, billing)
	if err != nil {
		var missing *MissingFieldError
		switch {
		case errors.As(err, &missing):
			utils.RespondWithError(w, http.StatusBadRequest, missing.Error())
		case errors.Is(err, ErrEmptyCart):
			utils.RespondWithError(w, http.StatusConflict, "Your cart is empty")
		default:
			log.Println("Submit error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Checkout failed")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// Confirm completes a pending order and points the client home. Email
// delivery never gates this response. A session can only confirm its own
// orders; anything else is a 404.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sid := utils.GetSessionIDFromRequest(r)
	if sid == "" {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}
	order, err := h.flow.Confirm(sid, ps.ByName("orderid"))
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"order":    order,
		"redirect": "/",
	})
}

// Cancel dismisses a pending order, leaving the cart as it was.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sid := utils.GetSessionIDFromRequest(r)
	if sid == "" {
		http.Error(w, "Missing session", http.StatusUnauthorized)
		return
	}
	if err := h.flow.Cancel(sid, ps.ByName("orderid")); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "cancelled"})
}
