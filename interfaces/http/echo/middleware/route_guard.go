package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/octabyte/saveat-admin/enums"
	"github.com/octabyte/saveat-admin/guard"
	"github.com/octabyte/saveat-admin/models"
	reqctx "github.com/octabyte/saveat-admin/utils/context"
)

// SessionSource exposes the current console session.
type SessionSource interface {
	Snapshot() models.Session
}

// RouteGuard admits a request only when the session may see the requested route. While
// the session is loading, and alongside every redirect, it answers with the loading
// placeholder so no page content leaks. An empty allowed list admits every signed-in role.
func RouteGuard(sessions SessionSource, allowed ...enums.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := sessions.Snapshot()
			path := c.Request().URL.Path

			decision := guard.Decide(guard.Input{
				IsLoading:    snap.IsLoading,
				HasToken:     snap.IsAuthenticated(),
				Role:         snap.Role(),
				Path:         path,
				AllowedRoles: allowed,
			})

			switch decision.Outcome {
			case guard.RenderLoading:
				return c.String(http.StatusOK, LoadingPlaceholder)
			case guard.RedirectSignIn, guard.RedirectLanding:
				log.Debugf("route guard: %s %s -> %s (%s)", c.Request().Method, path, decision.Target, decision.Outcome)
				c.Response().Header().Set(echo.HeaderLocation, decision.Target)
				return c.String(http.StatusSeeOther, LoadingPlaceholder)
			case guard.RenderContent:
				c.Set(SessionKey, snap)
				c.SetRequest(c.Request().WithContext(reqctx.WithSession(c.Request().Context(), snap)))
				return next(c)
			default:
				return echo.NewHTTPError(http.StatusInternalServerError, "unknown route decision")
			}
		}
	}
}

// SessionFrom returns the session RouteGuard admitted c with.
func SessionFrom(c echo.Context) (models.Session, bool) {
	s, ok := c.Get(SessionKey).(models.Session)
	return s, ok
}
