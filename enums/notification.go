package enums

type NotificationType string

const (
	NotificationTypeReservation NotificationType = "reservation"
	NotificationTypeSystem      NotificationType = "system"
	NotificationTypeAlert       NotificationType = "alert"
)
