package enums

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pendiente"
	ReservationStatusPickedUp  ReservationStatus = "recogido"
	ReservationStatusCancelled ReservationStatus = "cancelado"
	ReservationStatusExpired   ReservationStatus = "expirado"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

// ReservationAction is the state change an operator can apply to a pending reservation.
type ReservationAction string

const (
	ReservationActionConfirm ReservationAction = "confirm"
	ReservationActionCancel  ReservationAction = "cancel"
)

func (a ReservationAction) Valid() bool {
	switch a {
	case ReservationActionConfirm, ReservationActionCancel:
		return true
	default:
		return false
	}
}
