package models

import (
	"time"

	"github.com/octabyte/saveat-admin/enums"
)

type Product struct {
	ID                    string              `json:"_id"`
	Name                  string              `json:"name"`
	Description           string              `json:"description,omitempty"`
	ImageURL              string              `json:"image_url,omitempty"`
	Brand                 string              `json:"brand,omitempty"`
	Category              string              `json:"category,omitempty"`
	QuantityAvailable     float64             `json:"quantity_available"`
	QuantityTotalReceived float64             `json:"quantity_total_received"`
	Unit                  string              `json:"unit"`
	Price                 float64             `json:"price"`
	PaymentLink           string              `json:"payment_link,omitempty"`
	Status                enums.ProductStatus `json:"status"`
	DonorID               string              `json:"donor_id"`
	ReceivedAt            time.Time           `json:"received_at"`
	ExpiryDate            time.Time           `json:"expiry_date"`
	PickupWindowHours     int                 `json:"pickup_window_hours"`
	CreatedAt             time.Time           `json:"createdAt"`
	UpdatedAt             time.Time           `json:"updatedAt"`
}

// ProductInput is the body of product create and update calls.
type ProductInput struct {
	Name                  string              `json:"name" validate:"required"`
	Description           string              `json:"description,omitempty"`
	ImageURL              string              `json:"image_url,omitempty"`
	Brand                 string              `json:"brand,omitempty"`
	Category              string              `json:"category,omitempty"`
	QuantityAvailable     float64             `json:"quantity_available" validate:"gte=0"`
	QuantityTotalReceived float64             `json:"quantity_total_received" validate:"gte=0"`
	Unit                  string              `json:"unit" validate:"required"`
	Price                 float64             `json:"price" validate:"gte=0"`
	PaymentLink           string              `json:"payment_link,omitempty"`
	Status                enums.ProductStatus `json:"status" validate:"required,oneof=disponible borrador agotado"`
	DonorID               string              `json:"donor_id" validate:"required"`
	ReceivedAt            time.Time           `json:"received_at"`
	ExpiryDate            time.Time           `json:"expiry_date"`
	PickupWindowHours     int                 `json:"pickup_window_hours" validate:"gte=0"`
}
