package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/butcher-orders/internal/cart-service/app"
	"github.com/jcmexdev/butcher-orders/internal/cart-service/core/domain"
	"github.com/jcmexdev/butcher-orders/internal/pkg/requestmeta"
)

// Handler exposes the cart engine to the UI layer. Every mutation answers
// with the {ok, error} envelope; validation failures are payload, not 5xx.
type Handler struct {
	cart     *app.Cart
	checkout *app.Checkout
}

func NewHandler(cart *app.Cart, checkout *app.Checkout) *Handler {
	return &Handler{cart: cart, checkout: checkout}
}

// Summary returns the cart's lines and derived read queries in one shot.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	lines := h.cart.Lines()
	units := h.cart.Units()
	total, known := h.cart.TotalPrice()
	ceilings := h.cart.Ceilings()

	items := make([]lineResponse, len(lines))
	for i, l := range lines {
		items[i] = mapLineToResponse(l)
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Items:      items,
		TotalKg:    units.Kg,
		TotalBoxes: units.Boxes,
		TotalPrice: total,
		PriceKnown: known,
		LineCount:  len(lines),
		MaxTotalKg: ceilings.MaxTotalKg,
		MaxItems:   ceilings.MaxItems,
		CanSubmit:  h.checkout.CanSubmit(r.Context(), user),
	})
}

// AddItem merges a line into the cart, validating the resulting set.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMutation(w, http.StatusBadRequest, errors.New("invalid json"))
		return
	}

	user := currentUser(r)
	if err := h.cart.Add(r.Context(), req.toDomain(), user.Mode()); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeMutation(w, http.StatusOK, nil)
}

// SetKg replaces the quantity of one line.
func (h *Handler) SetKg(w http.ResponseWriter, r *http.Request) {
	var req setKgRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMutation(w, http.StatusBadRequest, errors.New("invalid json"))
		return
	}

	user := currentUser(r)
	productID := chi.URLParam(r, "productId")
	if err := h.cart.SetKg(r.Context(), productID, req.Kg, user.Mode()); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeMutation(w, http.StatusOK, nil)
}

// SetUnit toggles a line between kg and box mode.
func (h *Handler) SetUnit(w http.ResponseWriter, r *http.Request) {
	var req setUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMutation(w, http.StatusBadRequest, errors.New("invalid json"))
		return
	}

	productID := chi.URLParam(r, "productId")
	if err := h.cart.SetUnit(r.Context(), productID, req.IsBox); err != nil {
		writeMutationErr(w, err)
		return
	}
	writeMutation(w, http.StatusOK, nil)
}

// RemoveItem deletes a line. Always succeeds, even for absent products.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.cart.Remove(r.Context(), chi.URLParam(r, "productId"))
	writeMutation(w, http.StatusOK, nil)
}

// ClearCart empties the cart.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	writeMutation(w, http.StatusOK, nil)
}

// Confirm runs the checkout flow and returns the created order.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	order, err := h.checkout.Confirm(r.Context(), user)
	if err != nil {
		slog.InfoContext(r.Context(), "order confirm rejected", "user_id", user.ID, "error", err)
		writeMutation(w, confirmStatus(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, mapOrderToResponse(order))
}

func currentUser(r *http.Request) domain.User {
	id := requestmeta.IdentityFrom(r.Context())
	return domain.User{ID: id.UserID, SuperUser: id.SuperUser}
}

// confirmStatus maps checkout failures onto HTTP statuses. Anything that is
// not a validation outcome came from the order service and is relayed as a
// gateway failure with the remote message untouched.
func confirmStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrCadenceBlocked):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrBoxIneligible),
		errors.Is(err, domain.ErrTooManyItems),
		errors.Is(err, domain.ErrLineCapExceeded),
		errors.Is(err, domain.ErrTotalKgExceeded):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func writeMutationErr(w http.ResponseWriter, err error) {
	status := http.StatusUnprocessableEntity
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidProduct):
		status = http.StatusBadRequest
	}
	writeMutation(w, status, err)
}

func writeMutation(w http.ResponseWriter, status int, err error) {
	res := mutationResponse{OK: err == nil}
	if err != nil {
		res.Error = err.Error()
	}
	writeJSON(w, status, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
