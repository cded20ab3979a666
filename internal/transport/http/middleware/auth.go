package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"participium/internal/entities"
	"participium/internal/transport/http/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const principalKey = "principal"

// Principal is the authenticated caller.
type Principal struct {
	UserID int64
	Role   entities.ActorType
}

// Actor converts the principal into the identity the lifecycle engine expects.
func (p Principal) Actor() entities.Actor {
	return entities.Actor{Type: p.Role, ID: p.UserID}
}

// Claims are the JWT claims issued to users.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// IssueToken signs an HS256 token for userID acting as role.
func IssueToken(secret, issuer string, userID int64, role entities.ActorType, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret not configured")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: string(role),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies token and extracts the principal.
func ParseToken(token, secret, issuer string) (Principal, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	claims := &Claims{}
	parsed, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return Principal{}, err
	}
	if !parsed.Valid {
		return Principal{}, errors.New("invalid token")
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return Principal{}, fmt.Errorf("invalid subject %q", claims.Subject)
	}
	role := entities.ActorType(claims.Role)
	switch role {
	case entities.ActorCitizen, entities.ActorMunicipality, entities.ActorExternalMaintainer, entities.ActorAdmin:
	default:
		return Principal{}, fmt.Errorf("unknown role %q", claims.Role)
	}
	return Principal{UserID: id, Role: role}, nil
}

// Auth requires a valid bearer token and stores the Principal in the request locals.
func Auth(log *zap.SugaredLogger, secret, issuer string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return deny(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "bearer token required")
		}
		p, err := ParseToken(strings.TrimSpace(token), secret, issuer)
		if err != nil {
			log.Debugw("token rejected", "err", err)
			return deny(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "invalid token")
		}
		c.Locals(principalKey, p)
		return c.Next()
	}
}

// RequireRoles lets the request through only for the listed roles. It must run after Auth.
func RequireRoles(roles ...entities.ActorType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := PrincipalFrom(c)
		if !ok {
			return deny(c, fiber.StatusUnauthorized, "UNAUTHENTICATED", "bearer token required")
		}
		for _, r := range roles {
			if p.Role == r {
				return c.Next()
			}
		}
		return deny(c, fiber.StatusForbidden, "FORBIDDEN", "role not allowed")
	}
}

// PrincipalFrom returns the caller stored by Auth.
func PrincipalFrom(c *fiber.Ctx) (Principal, bool) {
	p, ok := c.Locals(principalKey).(Principal)
	return p, ok
}

func deny(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: dto.ErrorBody{Code: code, Message: msg}})
}
