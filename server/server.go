package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/octabyte/saveat-admin/enums"
	"github.com/octabyte/saveat-admin/interfaces/http/echo/middleware"
	"github.com/octabyte/saveat-admin/models"
	otelecho "github.com/octabyte/saveat-admin/otel/echo"
	"github.com/octabyte/saveat-admin/utils/logger"
)

// Backend is the subset of the Saveat REST API the console screens use.
type Backend interface {
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
	UpdateProfile(ctx context.Context, patch models.UserPatch) error

	ListDonors(ctx context.Context) ([]models.Donor, error)
	CreateDonor(ctx context.Context, in models.DonorInput) (models.Donor, error)
	UpdateDonor(ctx context.Context, id string, in models.DonorInput) (models.Donor, error)
	DeleteDonor(ctx context.Context, id string) error

	ListAdminProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListReservations(ctx context.Context) ([]models.Reservation, error)
	ApplyReservationAction(ctx context.Context, id string, action enums.ReservationAction) error
}

// Sessions is the console's session state.
type Sessions interface {
	middleware.SessionSource
	Login(ctx context.Context, token string, user models.User, remember bool) error
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, patch models.UserPatch) (models.User, error)
}

// Notifications is the polled notification list.
type Notifications interface {
	Refresh(ctx context.Context) error
	Notifications() []models.Notification
	Unread() int
	UpdatedAt() time.Time
	Delete(ctx context.Context, id string) error
}

type Options struct {
	ServiceName string
	Tracing     bool
}

type Server struct {
	echo     *echo.Echo
	backend  Backend
	sessions Sessions
	notes    Notifications
	nav      *Navigation
}

func New(opts Options, backend Backend, sessions Sessions, notes Notifications, nav *Navigation) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}

	s := &Server{echo: e, backend: backend, sessions: sessions, notes: notes, nav: nav}
	e.HTTPErrorHandler = s.handleError

	e.Use(echomw.Recover())
	if opts.Tracing {
		e.Use(otelecho.Middleware(opts.ServiceName, func(c echo.Context) bool {
			return c.Path() == enums.RouteHealth
		}))
	}
	e.Use(middleware.RequestLogger())

	s.routes()
	return s
}

// Handler exposes the console as a plain http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(addr string) error {
	logger.LogInfo("console listening", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Navigation records where the session manager last sent the console, so the handler that
// triggered the transition can redirect there.
type Navigation struct {
	mu      sync.Mutex
	pending string
}

func NewNavigation() *Navigation {
	return &Navigation{}
}

func (n *Navigation) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = route
	logger.LogDebug("navigate", zap.String("route", route))
}

// Take returns and clears the pending route, or fallback when there is none.
func (n *Navigation) Take(fallback string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	route := n.pending
	n.pending = ""
	if route == "" {
		return fallback
	}
	return route
}
