// Package api implements the request gateway: the single point of outbound
// HTTP traffic towards the SnipURL backend. It attaches credentials,
// normalizes responses and errors, and signals session expiry on 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avelichko/snipcli/internal/common"
	"github.com/avelichko/snipcli/internal/logging"
)

// TokenSource supplies the current credential token. An empty string means
// "no session": the auth header is omitted entirely.
type TokenSource interface {
	Token() string
}

// Gateway is the transport surface consumed by the resource services.
//
// Contract:
//   - Send issues one JSON request and returns the unwrapped envelope.
//     A 401 tears the session down via the unauthorized handler and fails
//     with common.ErrorUnauthorized; a 404 fails with common.ErrorNotFound.
//     Any other failure yields *GatewayError; 5xx responses additionally
//     unwrap to common.ErrorInternal.
//   - Download issues one request and returns the raw response body
//     (export endpoints return binary, not the envelope).
//
// The gateway performs no retries and no request queuing.
type Gateway interface {
	Send(ctx context.Context, method, path string, params url.Values, body any) (*Envelope, error)
	Download(ctx context.Context, path string, params url.Values) ([]byte, error)
}

// HTTPGateway is the net/http-backed Gateway.
type HTTPGateway struct {
	baseURL        *url.URL
	client         *http.Client
	tokens         TokenSource
	timeout        time.Duration
	onUnauthorized func()
	log            logging.Logger
}

// NewHTTPGateway builds a gateway for the given base URL. Every call carries
// a fixed upper bound of timeout.
func NewHTTPGateway(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) (*HTTPGateway, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	return &HTTPGateway{
		baseURL: u,
		client:  &http.Client{},
		tokens:  tokens,
		timeout: timeout,
		log:     log,
	}, nil
}

// SetUnauthorizedHandler registers the hook invoked whenever the backend
// answers 401. The session layer uses it to tear the session down and emit
// the single "session expired" signal.
func (g *HTTPGateway) SetUnauthorizedHandler(fn func()) {
	g.onUnauthorized = fn
}

func (g *HTTPGateway) Send(ctx context.Context, method, path string, params url.Values, body any) (*Envelope, error) {
	raw, status, err := g.do(ctx, method, path, params, body)
	if err != nil {
		return nil, err
	}

	env, err := ParseEnvelope(raw)
	if err != nil {
		return nil, &GatewayError{Status: status, RawBody: raw, cause: err}
	}
	if !env.Success {
		return nil, &GatewayError{Message: env.FailureMessage(), Status: status, RawBody: raw}
	}
	return env, nil
}

func (g *HTTPGateway) Download(ctx context.Context, path string, params url.Values) ([]byte, error) {
	raw, _, err := g.do(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// do performs the request and normalizes the failure modes. It returns the
// raw body for the caller to interpret; non-2xx statuses are already mapped
// to errors here.
func (g *HTTPGateway) do(ctx context.Context, method, path string, params url.Values, body any) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	u := *g.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if params != nil {
		u.RawQuery = params.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if token := g.tokens.Token(); token != "" {
		req.Header.Set(common.AuthHeaderName, common.AuthScheme+" "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		// Timeouts are indistinguishable from transport failures upstream.
		return nil, 0, &GatewayError{Message: "server unavailable", cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &GatewayError{Status: resp.StatusCode, cause: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		g.log.Warn(ctx, "authorization failure", "method", method, "path", path)
		if g.onUnauthorized != nil {
			g.onUnauthorized()
		}
		return nil, resp.StatusCode, common.ErrorUnauthorized
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, resp.StatusCode, common.ErrorNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env Envelope
		_ = json.Unmarshal(raw, &env)
		ge := &GatewayError{
			Message: env.FailureMessage(),
			Status:  resp.StatusCode,
			RawBody: raw,
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			ge.cause = common.ErrorInternal
		}
		return nil, resp.StatusCode, ge
	}

	return raw, resp.StatusCode, nil
}
