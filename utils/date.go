package utils

import (
	"fmt"
	"time"
)

// TimeAgo renders how long ago t happened, relative to now, the way the notification list shows it.
func TimeAgo(t, now time.Time) string {
	elapsed := now.Sub(t)
	if elapsed < time.Minute {
		return "Justo ahora"
	}
	if elapsed < time.Hour {
		return fmt.Sprintf("Hace %d min", int(elapsed/time.Minute))
	}
	if elapsed < 24*time.Hour {
		return fmt.Sprintf("Hace %d h", int(elapsed/time.Hour))
	}
	return t.Format("02/01/2006")
}
