package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger/internal/application/auth"
	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/domain/entity"
)

// Locals keys para la sesión en Fiber.
const (
	LocalUserID  = "user_id"
	LocalSession = "session"
)

// TokenCookie cookie con el JWT para clientes de navegador.
const TokenCookie = "access_token"

// Authenticator valida un token y devuelve la sesión (auth.AuthUseCase).
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Session, error)
}

// AuthMiddleware exige un JWT válido y no revocado (Bearer o cookie) y carga la sesión en c.Locals.
func AuthMiddleware(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, code, msg := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		session, err := authn.Authenticate(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, session.UserID)
		c.Locals(LocalSession, session)
		return c.Next()
	}
}

// OptionalAuth carga la sesión si hay un token válido; sin token o con token inválido sigue como anónimo.
func OptionalAuth(authn Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, _, _ := extractToken(c); token != "" {
			if session, err := authn.Authenticate(c.UserContext(), token); err == nil {
				c.Locals(LocalUserID, session.UserID)
				c.Locals(LocalSession, session)
			}
		}
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) (token, code, msg string) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if cookie := c.Cookies(TokenCookie); cookie != "" {
			return cookie, "", ""
		}
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetSession devuelve la sesión autenticada o nil.
func GetSession(c *fiber.Ctx) *auth.Session {
	s, _ := c.Locals(LocalSession).(*auth.Session)
	return s
}

// ActorFrom construye el actor del núcleo a partir de la sesión; sin sesión es anónimo.
func ActorFrom(c *fiber.Ctx) entity.Actor {
	return entity.AsUser(GetUserID(c))
}
