// Package remote adaptador de los stores sobre la API HTTP de otro despliegue
// (BACKEND_MODE=remote). Habla el mismo contrato de envelope que expone este servicio.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/pkg/config"
	"github.com/jhoicas/MultiTienda-api/pkg/logger"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 4 << 20
	shopHeader      = "X-Shop-ID"
)

var (
	_ ports.InventoryStore = (*Client)(nil)
	_ ports.SalesStore     = (*Client)(nil)
	_ ports.ShopStore      = (*Client)(nil)
	_ ports.CatalogStore   = (*Client)(nil)
)

// Client implementa los cuatro stores contra REMOTE_BASE_URL.
// El token del usuario se reenvía; sin él se usa REMOTE_API_TOKEN.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *logger.Logger
}

// NewClient construye el cliente. BaseURL es obligatoria.
func NewClient(cfg config.RemoteConfig, log *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("remote: REMOTE_BASE_URL no configurado")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("remote: REMOTE_BASE_URL inválido: %w", err)
	}
	if log == nil {
		log = logger.NewNop()
	}
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	log = log.Named("remote")
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiToken:   cfg.APIToken,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    newBreaker("remote-backend", log),
		log:        log,
	}, nil
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// do ejecuta la llamada a través del circuit breaker y decodifica data en out (si no es nil).
func (c *Client) do(ctx context.Context, scope ports.Scope, method, path string, query url.Values, body, out any) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, scope, method, path, query, body, out)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.log.Warn().Str("path", path).Msg("circuit breaker abierto")
		return fmt.Errorf("%w: %s", domain.ErrUnavailable, err.Error())
	case err != nil:
		var up *upstreamError
		if errors.As(err, &up) {
			return fmt.Errorf("%w: %s", domain.ErrUnavailable, up.Error())
		}
		return err
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, scope ports.Scope, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: serializar request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("remote: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(scope); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if scope.ShopID != "" {
		req.Header.Set(shopHeader, scope.ShopID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("remote: timeout o cancelación: %w", ctx.Err())
		}
		return &upstreamError{err: fmt.Errorf("remote: %s %s: %w", method, path, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &upstreamError{err: fmt.Errorf("remote: leer respuesta: %w", err)}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusInternalServerError {
		if decodeErr == nil && env.Error == domain.CodeInternal {
			return &upstreamError{err: fmt.Errorf("remote: HTTP %d: %s", resp.StatusCode, env.Message)}
		}
		return &upstreamError{err: fmt.Errorf("remote: HTTP %d", resp.StatusCode)}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		if decodeErr == nil {
			if sentinel := domain.FromCode(env.Error); sentinel != nil {
				return fmt.Errorf("%w: %s", sentinel, env.Message)
			}
		}
		return fmt.Errorf("remote: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if decodeErr != nil {
		return fmt.Errorf("remote: deserializar respuesta: %w", decodeErr)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("remote: deserializar data: %w", err)
	}
	return nil
}

func (c *Client) token(scope ports.Scope) string {
	if scope.Token != "" {
		return scope.Token
	}
	return c.apiToken
}

func pathID(prefix, id string, suffix ...string) string {
	p := prefix + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}
