package enums

// REST backend paths, relative to the configured base URL.
const (
	AdminsLoginResource    = "/admins/login"
	AdminsRegisterResource = "/admins/register"
	AdminsProfileResource  = "/admins/profile"
	DonorsResource         = "/donors"
	ProductsResource       = "/products"
	ProductsAdminResource  = "/products/admin"
	ReservationsResource   = "/reservations"
	NotificationsResource  = "/notifications"
)

// Console routes.
const (
	RouteLanding       = "/"
	RouteSignIn        = "/signin"
	RouteSignUp        = "/signup"
	RouteLogout        = "/logout"
	RouteInventory     = "/inventory"
	RouteDonors        = "/donors"
	RouteReservations  = "/reservations"
	RouteProfile       = "/profile"
	RouteNotifications = "/notifications"
	RouteHealth        = "/health"
)

// PublicRoutes are reachable without a session; every other route is protected.
var PublicRoutes = []string{RouteSignIn, RouteSignUp}
