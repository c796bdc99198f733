package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octabyte/saveat-admin/enums"
	"github.com/octabyte/saveat-admin/interfaces/http/echo/middleware"
	"github.com/octabyte/saveat-admin/models"
	"github.com/octabyte/saveat-admin/utils"
	"github.com/octabyte/saveat-admin/utils/logger"
)

type message struct {
	Message string `json:"message"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) signInPage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"page": "signin"})
}

func (s *Server) signUpPage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"page": "signup"})
}

func (s *Server) signIn(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	auth, err := s.backend.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}

	// A storage failure is logged by the manager; the operator is signed in regardless.
	if err := s.sessions.Login(c.Request().Context(), auth.Token, auth.User, req.Remember); err != nil {
		logger.LogWarn("signed in without persisted session", zap.Error(err))
	}
	return c.Redirect(http.StatusSeeOther, s.nav.Take(enums.RouteLanding))
}

func (s *Server) signUp(c echo.Context) error {
	var req models.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	auth, err := s.backend.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	if auth.Token == "" || auth.User.ID == "" {
		return c.Redirect(http.StatusSeeOther, enums.RouteSignIn)
	}

	if err := s.sessions.Login(c.Request().Context(), auth.Token, auth.User, false); err != nil {
		logger.LogWarn("signed up without persisted session", zap.Error(err))
	}
	return c.Redirect(http.StatusSeeOther, s.nav.Take(enums.RouteLanding))
}

func (s *Server) logout(c echo.Context) error {
	if err := s.sessions.Logout(c.Request().Context()); err != nil {
		logger.LogWarn("logout left stored credentials behind", zap.Error(err))
	}
	return c.Redirect(http.StatusSeeOther, s.nav.Take(enums.RouteSignIn))
}

type dashboardView struct {
	Name                string       `json:"name"`
	User                *models.User `json:"user"`
	UnreadNotifications int          `json:"unread_notifications"`
}

func (s *Server) dashboard(c echo.Context) error {
	session, _ := middleware.SessionFrom(c)
	view := dashboardView{User: session.User, UnreadNotifications: s.notes.Unread()}
	if session.User != nil {
		view.Name = session.User.FullName()
	}
	return c.JSON(http.StatusOK, view)
}

// Inventory

func (s *Server) listProducts(c echo.Context) error {
	products, err := s.backend.ListAdminProducts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(products))
}

func (s *Server) createProduct(c echo.Context) error {
	var in models.ProductInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	product, err := s.backend.CreateProduct(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

func (s *Server) updateProduct(c echo.Context) error {
	var in models.ProductInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	product, err := s.backend.UpdateProduct(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c echo.Context) error {
	if err := s.backend.DeleteProduct(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Donors

func (s *Server) listDonors(c echo.Context) error {
	donors, err := s.backend.ListDonors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(donors))
}

func (s *Server) createDonor(c echo.Context) error {
	var in models.DonorInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	donor, err := s.backend.CreateDonor(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, donor)
}

func (s *Server) updateDonor(c echo.Context) error {
	var in models.DonorInput
	if err := bindAndValidate(c, &in); err != nil {
		return err
	}
	donor, err := s.backend.UpdateDonor(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, donor)
}

func (s *Server) deleteDonor(c echo.Context) error {
	if err := s.backend.DeleteDonor(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Reservations

func (s *Server) listReservations(c echo.Context) error {
	reservations, err := s.backend.ListReservations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(reservations))
}

func (s *Server) reservationAction(c echo.Context) error {
	action := enums.ReservationAction(c.Param("action"))
	if !action.Valid() {
		return echo.NewHTTPError(http.StatusNotFound, "Acción no válida")
	}
	if err := s.backend.ApplyReservationAction(c.Request().Context(), c.Param("id"), action); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Profile

func (s *Server) profile(c echo.Context) error {
	session, _ := middleware.SessionFrom(c)
	return c.JSON(http.StatusOK, session.User)
}

// updateProfile saves the patch remotely first and only then applies it to the session.
func (s *Server) updateProfile(c echo.Context) error {
	var patch models.UserPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Datos de perfil inválidos")
	}

	if err := s.backend.UpdateProfile(c.Request().Context(), patch); err != nil {
		return err
	}

	user, err := s.sessions.UpdateUser(c.Request().Context(), patch)
	if err != nil {
		logger.LogWarn("profile saved but local copy not persisted", zap.Error(err))
	}
	return c.JSON(http.StatusOK, user)
}

// Notifications

type notificationView struct {
	models.Notification
	Ago string `json:"ago"`
}

type notificationsView struct {
	Unread        int                `json:"unread"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Notifications []notificationView `json:"notifications"`
}

func (s *Server) listNotifications(c echo.Context) error {
	if c.QueryParam("refresh") == "true" {
		if err := s.notes.Refresh(c.Request().Context()); err != nil {
			return err
		}
	}
	now := time.Now()
	items := s.notes.Notifications()
	view := notificationsView{
		Unread:        s.notes.Unread(),
		UpdatedAt:     s.notes.UpdatedAt(),
		Notifications: make([]notificationView, 0, len(items)),
	}
	for _, n := range items {
		view.Notifications = append(view.Notifications, notificationView{Notification: n, Ago: utils.TimeAgo(n.CreatedAt, now)})
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) deleteNotification(c echo.Context) error {
	if err := s.notes.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func bindAndValidate(c echo.Context, v interface{}) error {
	if err := c.Bind(v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Solicitud inválida")
	}
	return c.Validate(v)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
