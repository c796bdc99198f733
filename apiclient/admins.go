package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"github.com/octabyte/saveat-admin/enums"
	"github.com/octabyte/saveat-admin/models"
)

var ErrMalformedAuthResponse = errors.New("malformed authentication response")

// The backend has shipped the admin under a few different keys; the first present wins.
var (
	tokenPaths = []string{"token", "data.token", "accessToken"}
	userPaths  = []string{"user", "admin", "data.user", "data.admin"}
)

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	body, err := c.do(ctx, "admin_login", http.MethodPost, enums.AdminsLoginResource, nil,
		credentialsBody{Email: req.Email, Password: req.Password}, nil)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return parseAuthResponse(body, true)
}

// Register creates an admin account. The token is empty when the backend does not sign the
// new admin in.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	body, err := c.do(ctx, "admin_register", http.MethodPost, enums.AdminsRegisterResource, nil, req, nil)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return parseAuthResponse(body, false)
}

// UpdateProfile sends the changed profile fields. Role is never part of the patch.
func (c *Client) UpdateProfile(ctx context.Context, patch models.UserPatch) error {
	_, err := c.do(ctx, "admin_update_profile", http.MethodPut, enums.AdminsProfileResource, nil, patch, nil)
	return err
}

func parseAuthResponse(body []byte, requireToken bool) (models.AuthResponse, error) {
	var out models.AuthResponse

	for _, p := range tokenPaths {
		if v := gjson.GetBytes(body, p); v.Exists() && v.String() != "" {
			out.Token = v.String()
			break
		}
	}
	if requireToken && out.Token == "" {
		return models.AuthResponse{}, fmt.Errorf("%w: no token", ErrMalformedAuthResponse)
	}

	var raw gjson.Result
	for _, p := range userPaths {
		if v := gjson.GetBytes(body, p); v.IsObject() {
			raw = v
			break
		}
	}
	if !raw.Exists() {
		if out.Token == "" {
			return out, nil
		}
		return models.AuthResponse{}, fmt.Errorf("%w: no user", ErrMalformedAuthResponse)
	}

	if err := json.Unmarshal([]byte(raw.Raw), &out.User); err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %v", ErrMalformedAuthResponse, err)
	}
	if out.User.ID == "" {
		out.User.ID = raw.Get("_id").String()
	}
	role, err := enums.ParseRole(string(out.User.Role))
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("%w: %v", ErrMalformedAuthResponse, err)
	}
	out.User.Role = role

	return out, nil
}
