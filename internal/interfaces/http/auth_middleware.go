package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MultiTienda-api/internal/application/dto"
	"github.com/jhoicas/MultiTienda-api/internal/application/ports"
	"github.com/jhoicas/MultiTienda-api/internal/domain"
	"github.com/jhoicas/MultiTienda-api/pkg/jwt"
)

// Locals keys del contexto de la petición.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
	LocalToken  = "token"
	LocalShop   = "shop"
)

// ShopHeader selecciona la tienda de contexto de una petición.
const ShopHeader = "X-Shop-ID"

// Authenticator valida un bearer token. Lo implementa *auth.AuthUseCase.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
}

// AuthMiddleware valida el Bearer Token (firma, vencimiento, revocación) y deja
// user_id, role y token en c.Locals.
func AuthMiddleware(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Envelope{Error: domain.CodeUnauthorized, Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Envelope{Error: domain.CodeUnauthorized, Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Envelope{Error: domain.CodeUnauthorized, Message: "token vacío"})
		}
		claims, err := authn.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			if domain.Code(err) != domain.CodeUnauthorized {
				return fail(c, err)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Envelope{Error: domain.CodeUnauthorized, Message: "token inválido, expirado o revocado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalToken, tokenString)
		return c.Next()
	}
}

// RequireRole permite el paso solo a los roles indicados. Usar después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Envelope{Error: domain.CodeUnauthorized, Message: "rol no presente en el token"})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.Envelope{Error: domain.CodeForbidden, Message: "el rol '" + role + "' no tiene acceso a este recurso"})
		}
		return c.Next()
	}
}

// ShopContext resuelve la tienda de la petición: X-Shop-ID si es del usuario, si no la
// activa, si no la primera. Sin tiendas responde 409 NO_ACTIVE_SHOP. En escrituras un
// X-Shop-ID ajeno responde 404 en vez de caer en la tienda activa.
func ShopContext(shops ports.ShopStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requested := strings.TrimSpace(c.Get(ShopHeader))
		shop, err := shops.ResolveShop(c.UserContext(), userScope(c), requested)
		if err != nil {
			return fail(c, err)
		}
		if requested != "" && shop.ID != requested && !isReadOnly(c.Method()) {
			return fail(c, domain.ErrNotFound)
		}
		c.Locals(LocalShop, shop)
		return c.Next()
	}
}

func isReadOnly(method string) bool {
	return method == fiber.MethodGet || method == fiber.MethodHead || method == fiber.MethodOptions
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del token.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// GetShop devuelve la tienda resuelta por ShopContext (nil fuera de ese grupo).
func GetShop(c *fiber.Ctx) *dto.ShopResponse {
	s, _ := c.Locals(LocalShop).(*dto.ShopResponse)
	return s
}

// userScope scope sin tienda, para rutas de cuenta y registro de tiendas.
func userScope(c *fiber.Ctx) ports.Scope {
	token, _ := c.Locals(LocalToken).(string)
	return ports.Scope{UserID: GetUserID(c), Token: token}
}

// shopScope scope con la tienda de contexto.
func shopScope(c *fiber.Ctx) ports.Scope {
	scope := userScope(c)
	if shop := GetShop(c); shop != nil {
		scope.ShopID = shop.ID
	}
	return scope
}
