package apiclient

import (
	"context"
	"net/http"

	"github.com/octabyte/saveat-admin/enums"
	"github.com/octabyte/saveat-admin/models"
)

func idParam(id string) map[string]string {
	return map[string]string{"id": id}
}

// Donors

func (c *Client) ListDonors(ctx context.Context) ([]models.Donor, error) {
	var donors []models.Donor
	_, err := c.do(ctx, "list_donors", http.MethodGet, enums.DonorsResource, nil, nil, &donors)
	return donors, err
}

func (c *Client) CreateDonor(ctx context.Context, in models.DonorInput) (models.Donor, error) {
	var donor models.Donor
	_, err := c.do(ctx, "create_donor", http.MethodPost, enums.DonorsResource, nil, in, &donor)
	return donor, err
}

func (c *Client) UpdateDonor(ctx context.Context, id string, in models.DonorInput) (models.Donor, error) {
	var donor models.Donor
	_, err := c.do(ctx, "update_donor", http.MethodPut, enums.DonorsResource+"/{id}", idParam(id), in, &donor)
	return donor, err
}

func (c *Client) DeleteDonor(ctx context.Context, id string) error {
	_, err := c.do(ctx, "delete_donor", http.MethodDelete, enums.DonorsResource+"/{id}", idParam(id), nil, nil)
	return err
}

// Products

// ListAdminProducts returns every product, drafts and sold-out included.
func (c *Client) ListAdminProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	_, err := c.do(ctx, "list_admin_products", http.MethodGet, enums.ProductsAdminResource, nil, nil, &products)
	return products, err
}

func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput) (models.Product, error) {
	var product models.Product
	_, err := c.do(ctx, "create_product", http.MethodPost, enums.ProductsResource, nil, in, &product)
	return product, err
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Product, error) {
	var product models.Product
	_, err := c.do(ctx, "update_product", http.MethodPut, enums.ProductsResource+"/{id}", idParam(id), in, &product)
	return product, err
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, "delete_product", http.MethodDelete, enums.ProductsResource+"/{id}", idParam(id), nil, nil)
	return err
}

// Reservations

func (c *Client) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	_, err := c.do(ctx, "list_reservations", http.MethodGet, enums.ReservationsResource, nil, nil, &reservations)
	return reservations, err
}

func (c *Client) ConfirmReservation(ctx context.Context, id string) error {
	return c.ApplyReservationAction(ctx, id, enums.ReservationActionConfirm)
}

func (c *Client) CancelReservation(ctx context.Context, id string) error {
	return c.ApplyReservationAction(ctx, id, enums.ReservationActionCancel)
}

// ApplyReservationAction issues PUT /reservations/:id/<action>.
func (c *Client) ApplyReservationAction(ctx context.Context, id string, action enums.ReservationAction) error {
	if !action.Valid() {
		return &APIError{Status: http.StatusBadRequest, Path: enums.ReservationsResource, Message: "unknown reservation action " + string(action)}
	}
	_, err := c.do(ctx, string(action)+"_reservation", http.MethodPut,
		enums.ReservationsResource+"/{id}/"+string(action), idParam(id), nil, nil)
	return err
}

// Notifications

func (c *Client) ListNotifications(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	_, err := c.do(ctx, "list_notifications", http.MethodGet, enums.NotificationsResource, nil, nil, &notifications)
	return notifications, err
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	_, err := c.do(ctx, "delete_notification", http.MethodDelete, enums.NotificationsResource+"/{id}", idParam(id), nil, nil)
	return err
}
