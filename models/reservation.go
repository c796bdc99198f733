package models

import (
	"time"

	"github.com/octabyte/saveat-admin/enums"
)

// ReservationUser is the populated customer on a reservation.
type ReservationUser struct {
	ID        string `json:"_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ReservationProduct is the populated product on a reservation.
type ReservationProduct struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

type Reservation struct {
	ID               string                  `json:"_id"`
	User             ReservationUser         `json:"user_id"`
	Product          ReservationProduct      `json:"product_id"`
	ProductName      string                  `json:"product_name"`
	QuantityReserved float64                 `json:"quantity_reserved"`
	Unit             string                  `json:"unit"`
	TotalPrice       float64                 `json:"total_price"`
	Status           enums.ReservationStatus `json:"status"`
	PaymentMethod    enums.PaymentMethod     `json:"payment_method,omitempty"`
	IsPaid           bool                    `json:"is_paid"`
	PickupDeadline   time.Time               `json:"pickup_deadline"`
	PickedUpAt       *time.Time              `json:"picked_up_at,omitempty"`
	CreatedAt        time.Time               `json:"createdAt"`
}
