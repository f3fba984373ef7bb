package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/butcher-orders/internal/cart-service/infra/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.Identity)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/cart", handler.Summary)
	r.Post("/cart/items", handler.AddItem)
	r.Put("/cart/items/{productId}/kg", handler.SetKg)
	r.Put("/cart/items/{productId}/unit", handler.SetUnit)
	r.Delete("/cart/items/{productId}", handler.RemoveItem)
	r.Delete("/cart", handler.ClearCart)
	r.Post("/cart/confirm", handler.Confirm)
	return r
}
