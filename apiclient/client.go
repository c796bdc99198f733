package apiclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/octabyte/saveat-admin/enums"
	"github.com/octabyte/saveat-admin/otel"
	otellogger "github.com/octabyte/saveat-admin/otel/logger"
	"github.com/octabyte/saveat-admin/otel/metrics"
	"github.com/octabyte/saveat-admin/utils"
)

const clientName = "saveat"

// Credentials is where the client reads the bearer token from.
type Credentials interface {
	Token(ctx context.Context) string
}

// SessionExpirer performs the forced logout: it wipes the stored credential, discards the
// in-memory session and moves the console to route.
type SessionExpirer interface {
	Expire(ctx context.Context, route string) error
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls the Saveat REST backend with the stored bearer token. Every call is attempted
// exactly once.
type Client struct {
	http     *resty.Client
	creds    Credentials
	sessions SessionExpirer
	baseURL  string
}

func New(cfg Config, creds Credentials, sessions SessionExpirer) *Client {
	c := &Client{
		creds:    creds,
		sessions: sessions,
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
	}

	c.http = resty.New().
		SetBaseURL(c.baseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		OnBeforeRequest(c.attachToken).
		OnBeforeRequest(otel.WithTraceHeaders).
		OnAfterResponse(c.checkResponse)

	return c
}

func (c *Client) attachToken(_ *resty.Client, req *resty.Request) error {
	if isAuthEndpoint(req.URL) {
		return nil
	}
	if token := c.creds.Token(req.Context()); token != "" {
		req.SetHeader("Authorization", utils.BearerHeader(token))
	}
	return nil
}

// checkResponse turns non-2xx responses into errors. A 401 additionally wipes the stored
// credential and forces the console back to sign-in before the caller sees the error.
func (c *Client) checkResponse(_ *resty.Client, resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	ctx := resp.Request.Context()
	path := requestPath(resp.Request)

	if resp.StatusCode() == http.StatusUnauthorized {
		otellogger.WarnCtx(ctx, "backend rejected the session, logging out", zap.String("path", path))
		metrics.RecordForcedLogout(ctx, path)

		if err := c.sessions.Expire(ctx, enums.RouteSignIn); err != nil {
			otellogger.ErrorCtx(ctx, "failed to clear credentials after 401", err)
		}
		return ErrUnauthorized
	}

	return newAPIError(resp.StatusCode(), path, resp.Body())
}

// do runs one backend call inside a client span. result, when non-nil, receives the decoded
// 2xx body; the raw body is returned as well.
func (c *Client) do(ctx context.Context, operation, method, path string, pathParams map[string]string, body, result any) ([]byte, error) {
	ctx, finish := otel.StartHTTPSpan(ctx, clientName, operation, method, c.baseURL, path)
	start := time.Now()

	req := c.http.R().SetContext(ctx)
	if len(pathParams) > 0 {
		req.SetPathParams(pathParams)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)

	status := 0
	if resp != nil && resp.RawResponse != nil {
		status = resp.StatusCode()
	}
	finish(status, err)
	metrics.RecordDownstreamCall(ctx, operation, status, time.Since(start), err == nil)

	if err != nil {
		otellogger.DebugCtx(ctx, "backend call failed",
			zap.String("operation", operation),
			zap.Int("status", status),
			zap.Error(err),
		)
		return nil, err
	}
	return resp.Body(), nil
}

// isAuthEndpoint reports whether path is one of the calls made before a token exists.
func isAuthEndpoint(path string) bool {
	return path == enums.AdminsLoginResource || path == enums.AdminsRegisterResource
}

func requestPath(req *resty.Request) string {
	if req.RawRequest != nil && req.RawRequest.URL != nil {
		return req.RawRequest.URL.Path
	}
	return req.URL
}
