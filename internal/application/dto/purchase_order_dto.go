package dto

import "time"

// CreatePurchaseOrderRequest body de POST /api/pos.
type CreatePurchaseOrderRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PurchaseOrderResponse salida de una orden de compra con su producto.
type PurchaseOrderResponse struct {
	ID        string           `json:"id"`
	Product   *ProductResponse `json:"product"`
	Quantity  int              `json:"quantity"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
}
