package guard

import (
	"slices"
	"strings"

	"github.com/octabyte/saveat-admin/enums"
)

type Outcome int

const (
	RenderLoading Outcome = iota
	RedirectSignIn
	RedirectLanding
	RenderContent
)

func (o Outcome) String() string {
	switch o {
	case RenderLoading:
		return "render_loading"
	case RedirectSignIn:
		return "redirect_signin"
	case RedirectLanding:
		return "redirect_landing"
	case RenderContent:
		return "render_content"
	default:
		return "unknown"
	}
}

// Input is everything a routing decision depends on.
type Input struct {
	IsLoading bool
	HasToken  bool
	Role      enums.Role
	Path      string
	// AllowedRoles restricts the route to these roles. Empty means any signed-in role.
	AllowedRoles []enums.Role
}

type Decision struct {
	Outcome Outcome
	// Target is the route to redirect to; empty unless Outcome is a redirect.
	Target string
}

// Redirect reports whether the decision sends the viewer elsewhere.
func (d Decision) Redirect() bool {
	return d.Outcome == RedirectSignIn || d.Outcome == RedirectLanding
}

// Decide applies the routing rules in order; the first that matches wins.
func Decide(in Input) Decision {
	public := IsPublic(in.Path)

	switch {
	case in.IsLoading:
		return Decision{Outcome: RenderLoading}
	case !in.HasToken && !public:
		return Decision{Outcome: RedirectSignIn, Target: enums.RouteSignIn}
	case in.HasToken && public:
		return Decision{Outcome: RedirectLanding, Target: enums.RouteLanding}
	case in.HasToken && len(in.AllowedRoles) > 0 && !Allowed(in.Role, in.AllowedRoles):
		return Decision{Outcome: RedirectLanding, Target: enums.RouteLanding}
	}
	return Decision{Outcome: RenderContent}
}

// IsPublic reports whether path is exactly one of the sign-in/sign-up routes. A trailing
// slash is ignored; anything below them is protected.
func IsPublic(path string) bool {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	return slices.Contains(enums.PublicRoutes, path)
}

// Allowed reports whether role is in the allow-list.
func Allowed(role enums.Role, allowed []enums.Role) bool {
	switch role {
	case enums.RoleAdmin, enums.RoleGestor:
		return slices.Contains(allowed, role)
	default:
		return false
	}
}
