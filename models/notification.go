package models

import (
	"time"

	"github.com/octabyte/saveat-admin/enums"
)

type Notification struct {
	ID        string                 `json:"_id"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Type      enums.NotificationType `json:"type"`
	CreatedAt time.Time              `json:"createdAt"`
	IsRead    bool                   `json:"is_read"`
}
