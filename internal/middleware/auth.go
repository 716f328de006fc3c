// Package middleware contains HTTP middleware for the Golfbook API. Middleware
// runs on every request before the route handlers, which makes it the place
// for cross-cutting concerns like authentication and role checks.
package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/config"
	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/models"
)

// Claims is the payload we expect inside the identity provider's JWT.
// Beyond the registered fields (Subject = provider user ID, expiry, issued-at)
// we read custom claims the provider's token template adds:
//
//	"role":  the member's permission level ("admin", "manager", "member")
//	"email": primary email, used to populate our members table
//	"name":  full name for the display name column
//
// When the template isn't configured the custom claims come through empty;
// role then defaults to "member" and email/name get placeholder values.
type Claims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Auth returns a Fiber middleware handler that:
//  1. Validates the JWT from the "Authorization: Bearer <token>" header
//  2. Finds the matching member in our database, creating one on first visit
//  3. Syncs the member's role from the JWT into the database
//  4. Stores the member's internal UUID and role in the request context
//     (c.Locals) so downstream handlers can read them without re-parsing
func Auth(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid authorization header",
			})
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		// TODO: replace ParseUnverified with JWKS signature verification before
		// production; unverified parsing is only acceptable in development.
		token, _, err := jwt.NewParser().ParseUnverified(tokenStr, &Claims{})
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token claims",
			})
		}

		authUserID := claims.Subject
		if authUserID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token missing subject",
			})
		}

		// Lazy member sync: the first authenticated request creates the member
		// row; every later request just looks it up by the provider ID.
		role := roleFromClaim(claims.Role)

		email := claims.Email
		if email == "" {
			// Deterministic placeholder, unique per provider user, clearly fake.
			email = fmt.Sprintf("%s@auth.local", authUserID)
		}
		name := claims.Name
		if name == "" {
			name = "Member"
		}

		var member models.Member
		result := db.Where("auth_id = ?", authUserID).First(&member)
		if result.Error != nil {
			if result.Error != gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "database error",
				})
			}
			member = models.Member{
				AuthID:      &authUserID,
				DisplayName: name,
				Email:       email,
				Role:        role,
			}
			if err := db.Create(&member).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to create member record",
				})
			}
		} else if member.Role != role && claims.Role != "" {
			// Role changed at the identity provider — sync it down.
			db.Model(&member).Update("role", role)
			member.Role = role
		}

		c.Locals("memberID", member.ID.String())
		c.Locals("memberRole", string(member.Role))
		return c.Next()
	}
}

// roleFromClaim converts the raw role claim into our typed MemberRole,
// defaulting to the least-privileged role when missing or unrecognised.
func roleFromClaim(s string) models.MemberRole {
	switch s {
	case "admin":
		return models.MemberRoleAdmin
	case "manager":
		return models.MemberRoleManager
	default:
		return models.MemberRoleMember
	}
}
