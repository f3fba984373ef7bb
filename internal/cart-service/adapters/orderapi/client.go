// Package orderapi is the HTTP adapter for the remote butcher order API.
// It implements ports.OrderService: JSON in, JSON out, server error messages
// surfaced verbatim so the UI shows exactly what the service said.
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jcmexdev/butcher-orders/internal/cart-service/core/domain"
	"github.com/jcmexdev/butcher-orders/internal/cart-service/core/ports"
	"github.com/jcmexdev/butcher-orders/internal/pkg/cache"
	"github.com/jcmexdev/butcher-orders/internal/pkg/requestmeta"
)

// settingsTTL matches how long the UI treated settings as fresh.
const settingsTTL = time.Minute

const defaultTimeout = 8 * time.Second

var _ ports.OrderService = (*Client)(nil)

type Client struct {
	baseURL string
	http    *http.Client
	cache   cache.Cache // nil disables settings caching
}

// New builds a client for the order API at baseURL. httpClient may be nil;
// a default with an 8s timeout is used then.
func New(baseURL string, httpClient *http.Client, c cache.Cache) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		cache:   c,
	}
}

type orderDTO struct {
	ID         string         `json:"id"`
	Status     string         `json:"status"`
	TotalKg    int            `json:"totalKg"`
	TotalPrice float64        `json:"totalPrice"`
	CreatedAt  string         `json:"createdAt"`
	UpdatedAt  string         `json:"updatedAt"`
	Items      []orderItemDTO `json:"items"`
}

type orderItemDTO struct {
	ID        string  `json:"id"`
	Kg        int     `json:"kg"`
	IsBox     bool    `json:"isBox"`
	UnitPrice float64 `json:"unitPrice"`
	Subtotal  float64 `json:"subtotal"`
	Product   struct {
		ID    string  `json:"id"`
		Title string  `json:"title"`
		Price float64 `json:"price"`
	} `json:"product"`
}

type ordersResponseDTO struct {
	Count  int        `json:"count"`
	Pages  int        `json:"pages"`
	Orders []orderDTO `json:"orders"`
}

type createOrderRequest struct {
	Items []domain.CreateOrderItem `json:"items"`
}

// CreateOrder posts the submission payload. The idempotency key travels in a
// header so a retried request cannot double-place an order.
func (c *Client) CreateOrder(ctx context.Context, idempotencyKey string, items []domain.CreateOrderItem) (*domain.Order, error) {
	body, err := json.Marshal(createOrderRequest{Items: items})
	if err != nil {
		return nil, fmt.Errorf("orderapi: encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestmeta.HeaderXIdempotencyKey, idempotencyKey)
	c.authorize(ctx, req)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, remoteError(res)
	}

	var dto orderDTO
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("orderapi: decode order: %w", err)
	}
	return dto.toDomain(), nil
}

// LatestOrder fetches the account's most recent order. No orders yet is not
// an error.
func (c *Client) LatestOrder(ctx context.Context) (*domain.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders?limit=1", nil)
	if err != nil {
		return nil, err
	}
	c.authorize(ctx, req)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if res.StatusCode != http.StatusOK {
		return nil, remoteError(res)
	}

	var dto ordersResponseDTO
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("orderapi: decode orders: %w", err)
	}
	if len(dto.Orders) == 0 {
		return nil, nil
	}
	return dto.Orders[0].toDomain(), nil
}

// Settings fetches the active ceilings, with a short-lived cache in front so
// the periodic refresh does not hammer the order service.
func (c *Client) Settings(ctx context.Context) (domain.Settings, error) {
	var cacheKey string
	if c.cache != nil {
		cacheKey = c.cache.GenerateKey("settings", "active")
		if raw, err := c.cache.Get(ctx, cacheKey); err == nil && raw != "" {
			var s domain.Settings
			if err := json.Unmarshal([]byte(raw), &s); err == nil {
				return s, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders/settings", nil)
	if err != nil {
		return domain.Settings{}, err
	}
	c.authorize(ctx, req)

	res, err := c.http.Do(req)
	if err != nil {
		return domain.Settings{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return domain.Settings{}, remoteError(res)
	}

	var s domain.Settings
	if err := json.NewDecoder(res.Body).Decode(&s); err != nil {
		return domain.Settings{}, fmt.Errorf("orderapi: decode settings: %w", err)
	}

	if c.cache != nil {
		if raw, err := json.Marshal(s); err == nil {
			_ = c.cache.Set(ctx, cacheKey, string(raw), settingsTTL)
		}
	}
	return s, nil
}

// authorize forwards the caller's bearer token when one travelled with the
// request context. Auth itself is the gateway's concern.
func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if token := requestmeta.TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (d orderDTO) toDomain() *domain.Order {
	items := make([]domain.OrderItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = domain.OrderItem{
			ID:           it.ID,
			ProductID:    it.Product.ID,
			ProductTitle: it.Product.Title,
			Kg:           it.Kg,
			IsBox:        it.IsBox,
			UnitPrice:    it.UnitPrice,
			Subtotal:     it.Subtotal,
		}
	}
	return &domain.Order{
		ID:         d.ID,
		Status:     domain.OrderStatus(d.Status),
		TotalKg:    d.TotalKg,
		TotalPrice: d.TotalPrice,
		Items:      items,
		CreatedAt:  parseTime(d.CreatedAt),
		UpdatedAt:  parseTime(d.UpdatedAt),
	}
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// remoteError turns a non-2xx response into an error carrying the server's
// own message. The API reports either a string or an array of strings under
// "message"; both collapse to one line, untouched otherwise.
func remoteError(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 8<<10))

	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && len(payload.Message) > 0 {
		var single string
		if err := json.Unmarshal(payload.Message, &single); err == nil && single != "" {
			return fmt.Errorf("%s", single)
		}
		var many []string
		if err := json.Unmarshal(payload.Message, &many); err == nil && len(many) > 0 {
			return fmt.Errorf("%s", strings.Join(many, ", "))
		}
	}
	return fmt.Errorf("order service returned status %d", res.StatusCode)
}
