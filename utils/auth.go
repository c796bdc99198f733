package utils

import "fmt"

const bearerPrefix = "Bearer "

// BearerHeader formats token as an Authorization header value.
func BearerHeader(token string) string {
	return fmt.Sprintf("%s%s", bearerPrefix, token)
}
