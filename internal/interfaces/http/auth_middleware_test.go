package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	apphttp "github.com/jhoicas/MultiTienda-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/MultiTienda-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmail     = "owner@tienda.co"
	testIssuer    = "multitienda-test"
	testExpMin    = 60
)

// jwtAuthenticator valida con pkg/jwt y una lista de jti revocados.
type jwtAuthenticator struct {
	revoked map[string]bool
	err     error
}

func (a jwtAuthenticator) Authenticate(_ context.Context, token string) (*pkgjwt.Claims, error) {
	if a.err != nil {
		return nil, a.err
	}
	claims, err := pkgjwt.Parse(testJWTSecret, token)
	if err != nil || a.revoked[claims.ID] {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el JWT y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(authn apphttp.Authenticator, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(authn),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"role":    apphttp.GetRole(c),
				"user_id": apphttp.GetUserID(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) dto.Envelope {
	t.Helper()
	var env dto.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, "owner")
	resp := doRequest(t, app, tokenForRole(t, "owner"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "owner", body["role"])
}

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, "owner")
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, domain.CodeUnauthorized, decodeEnvelope(t, resp).Error)
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, "owner")
	for _, header := range []string{"Basic abc", "Bearer ", "Bearer token.invalido.aqui"} {
		resp := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
		resp.Body.Close()
	}
}

func TestAuthMiddleware_TokenRevocado_Retorna401(t *testing.T) {
	header := tokenForRole(t, "owner")
	claims, err := pkgjwt.Parse(testJWTSecret, header[len("Bearer "):])
	require.NoError(t, err)

	app := buildTestApp(jwtAuthenticator{revoked: map[string]bool{claims.ID: true}}, "owner")
	resp := doRequest(t, app, header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "revocado")
}

func TestAuthMiddleware_FalloDeInfraestructura_NoEs401(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{err: errors.New("redis caído")}, "owner")
	resp := doRequest(t, app, tokenForRole(t, "owner"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, domain.CodeInternal, decodeEnvelope(t, resp).Error)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_OwnerAccedeRutaOwner(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, "owner", "staff")
	resp := doRequest(t, app, tokenForRole(t, "staff"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_StaffBloqueadoEnRutaOwner(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, "owner")
	resp := doRequest(t, app, tokenForRole(t, "staff"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, domain.CodeForbidden, decodeEnvelope(t, resp).Error)
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(jwtAuthenticator{}, "owner")
	resp := doRequest(t, app, tokenForRole(t, ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ShopContext
// ──────────────────────────────────────────────────────────────────────────────

// fixedShops resuelve siempre según requested; el resto de ShopStore no se usa.
type fixedShops struct {
	ports.ShopStore
	owned []string
}

func (s fixedShops) ResolveShop(_ context.Context, _ ports.Scope, requested string) (*dto.ShopResponse, error) {
	if len(s.owned) == 0 {
		return nil, domain.ErrNoActiveShop
	}
	for _, id := range s.owned {
		if id == requested {
			return &dto.ShopResponse{ID: id}, nil
		}
	}
	return &dto.ShopResponse{ID: s.owned[0]}, nil
}

func shopApp(shops ports.ShopStore) *fiber.App {
	app := fiber.New()
	handler := func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetShop(c).ID)
	}
	app.Get("/shop", apphttp.AuthMiddleware(jwtAuthenticator{}), apphttp.ShopContext(shops), handler)
	app.Post("/shop", apphttp.AuthMiddleware(jwtAuthenticator{}), apphttp.ShopContext(shops), handler)
	return app
}

func TestShopContext_UsaHeaderSiEsPropia(t *testing.T) {
	app := shopApp(fixedShops{owned: []string{"a", "b"}})

	req := httptest.NewRequest(http.MethodGet, "/shop", nil)
	req.Header.Set("Authorization", tokenForRole(t, "owner"))
	req.Header.Set(apphttp.ShopHeader, "b")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "b", string(body))

	req.Header.Set(apphttp.ShopHeader, "ajena")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "a", string(body))
}

func TestShopContext_EscrituraConTiendaAjena_Retorna404(t *testing.T) {
	app := shopApp(fixedShops{owned: []string{"a", "b"}})

	req := httptest.NewRequest(http.MethodPost, "/shop", nil)
	req.Header.Set("Authorization", tokenForRole(t, "owner"))
	req.Header.Set(apphttp.ShopHeader, "ajena")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, domain.CodeNotFound, decodeEnvelope(t, resp).Error)

	req = httptest.NewRequest(http.MethodPost, "/shop", nil)
	req.Header.Set("Authorization", tokenForRole(t, "owner"))
	req.Header.Set(apphttp.ShopHeader, "b")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "b", string(body))

	// sin cabecera la escritura usa la activa
	req = httptest.NewRequest(http.MethodPost, "/shop", nil)
	req.Header.Set("Authorization", tokenForRole(t, "owner"))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "a", string(body))
}

func TestShopContext_SinTiendas_Retorna409(t *testing.T) {
	app := shopApp(fixedShops{})

	req := httptest.NewRequest(http.MethodGet, "/shop", nil)
	req.Header.Set("Authorization", tokenForRole(t, "owner"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, domain.CodeNoActiveShop, decodeEnvelope(t, resp).Error)
}
