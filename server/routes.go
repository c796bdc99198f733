package server

import (
	"github.com/octabyte/saveat-admin/enums"
	"github.com/octabyte/saveat-admin/interfaces/http/echo/middleware"
)

func (s *Server) routes() {
	e := s.echo
	guarded := middleware.RouteGuard(s.sessions)
	adminOnly := middleware.RouteGuard(s.sessions, enums.RoleAdmin)

	e.GET(enums.RouteHealth, s.health)

	e.GET(enums.RouteSignIn, s.signInPage, guarded)
	e.POST(enums.RouteSignIn, s.signIn, guarded)
	e.GET(enums.RouteSignUp, s.signUpPage, guarded)
	e.POST(enums.RouteSignUp, s.signUp, guarded)
	e.POST(enums.RouteLogout, s.logout, guarded)

	e.GET(enums.RouteLanding, s.dashboard, guarded)

	inventory := e.Group(enums.RouteInventory, guarded)
	inventory.GET("", s.listProducts)
	inventory.POST("", s.createProduct)
	inventory.PUT("/:id", s.updateProduct)
	inventory.DELETE("/:id", s.deleteProduct)

	donors := e.Group(enums.RouteDonors, adminOnly)
	donors.GET("", s.listDonors)
	donors.POST("", s.createDonor)
	donors.PUT("/:id", s.updateDonor)
	donors.DELETE("/:id", s.deleteDonor)

	reservations := e.Group(enums.RouteReservations, guarded)
	reservations.GET("", s.listReservations)
	reservations.POST("/:id/:action", s.reservationAction)

	profile := e.Group(enums.RouteProfile, guarded)
	profile.GET("", s.profile)
	profile.PUT("", s.updateProfile)

	notifications := e.Group(enums.RouteNotifications, guarded)
	notifications.GET("", s.listNotifications)
	notifications.DELETE("/:id", s.deleteNotification)
}
