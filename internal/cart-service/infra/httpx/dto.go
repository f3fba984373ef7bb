package httpx

import (
	"time"

	"github.com/jcmexdev/butcher-orders/internal/cart-service/core/domain"
)

type addItemRequest struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Kg            int     `json:"kg"`
	MaxKgPerOrder int     `json:"maxKgPerOrder"`
	AllowBoxes    bool    `json:"allowBoxes"`
	IsBox         bool    `json:"isBox"`
}

func (r addItemRequest) toDomain() domain.Line {
	return domain.Line{
		ProductID:     r.ProductID,
		Name:          r.Name,
		Price:         r.Price,
		Image:         r.Image,
		Kg:            r.Kg,
		MaxKgPerOrder: r.MaxKgPerOrder,
		AllowBoxes:    r.AllowBoxes,
		IsBox:         r.IsBox,
	}
}

type setKgRequest struct {
	Kg int `json:"kg"`
}

type setUnitRequest struct {
	IsBox bool `json:"isBox"`
}

// mutationResponse is the envelope every cart mutation returns: {ok:true}
// or {ok:false, error:"..."} with the validation reason.
type mutationResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type lineResponse struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Kg            int     `json:"kg"`
	MaxKgPerOrder int     `json:"maxKgPerOrder"`
	AllowBoxes    bool    `json:"allowBoxes"`
	IsBox         bool    `json:"isBox"`
	Unit          string  `json:"unit"`
	Quantity      string  `json:"quantity"`
}

type summaryResponse struct {
	Items      []lineResponse `json:"items"`
	TotalKg    int            `json:"totalKg"`
	TotalBoxes int            `json:"totalBoxes"`
	TotalPrice float64        `json:"totalPrice"`
	PriceKnown bool           `json:"priceKnown"`
	LineCount  int            `json:"lineCount"`
	MaxTotalKg int            `json:"maxTotalKg"`
	MaxItems   int            `json:"maxItems"`
	CanSubmit  bool           `json:"canSubmit"`
}

type orderItemResponse struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"productId"`
	ProductTitle string  `json:"productTitle"`
	Kg           int     `json:"kg"`
	IsBox        bool    `json:"isBox"`
	UnitPrice    float64 `json:"unitPrice"`
	Subtotal     float64 `json:"subtotal"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	Status     string              `json:"status"`
	TotalKg    int                 `json:"totalKg"`
	TotalPrice float64             `json:"totalPrice"`
	Items      []orderItemResponse `json:"items"`
	CreatedAt  string              `json:"createdAt"`
}

func mapLineToResponse(l domain.Line) lineResponse {
	return lineResponse{
		ProductID:     l.ProductID,
		Name:          l.Name,
		Price:         l.Price,
		Image:         l.Image,
		Kg:            l.Kg,
		MaxKgPerOrder: l.MaxKgPerOrder,
		AllowBoxes:    l.AllowBoxes,
		IsBox:         l.IsBox,
		Unit:          domain.UnitLabel(l.IsBox, l.Kg),
		Quantity:      domain.FormatQuantity(l.Kg, l.IsBox),
	}
}

func mapOrderToResponse(o *domain.Order) orderResponse {
	items := make([]orderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemResponse{
			ID:           it.ID,
			ProductID:    it.ProductID,
			ProductTitle: it.ProductTitle,
			Kg:           it.Kg,
			IsBox:        it.IsBox,
			UnitPrice:    it.UnitPrice,
			Subtotal:     it.Subtotal,
		}
	}
	return orderResponse{
		ID:         o.ID,
		Status:     string(o.Status),
		TotalKg:    o.TotalKg,
		TotalPrice: o.TotalPrice,
		Items:      items,
		CreatedAt:  o.CreatedAt.Format(time.RFC3339),
	}
}
