package middleware

const (
	// SessionKey is the echo.Context key holding the models.Session the request was admitted with.
	SessionKey = "requestSession"

	LoadingPlaceholder = "Cargando..."
)
