package handlers

// members.go — membership records: listing the roster, viewing a member, and
// admin updates to role, standing, and handicap index.

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/models"
)

// MemberResponse is the roster view sent to the app. A dedicated response
// struct keeps serialization under our control instead of exposing raw models.
type MemberResponse struct {
	ID            string   `json:"id"`
	DisplayName   string   `json:"display_name"`
	Email         string   `json:"email"`
	AvatarURL     *string  `json:"avatar_url"`
	Role          string   `json:"role"`
	Status        string   `json:"status"`
	HandicapIndex *float64 `json:"handicap_index"`
	CreatedAt     string   `json:"created_at"`
}

func memberResponse(m models.Member) MemberResponse {
	return MemberResponse{
		ID:            m.ID.String(),
		DisplayName:   m.DisplayName,
		Email:         m.Email,
		AvatarURL:     m.AvatarURL,
		Role:          string(m.Role),
		Status:        string(m.Status),
		HandicapIndex: m.HandicapIndex,
		CreatedAt:     m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GetMembers returns a handler for GET /api/v1/members.
// Optional query param: ?status=active|suspended|lapsed.
func GetMembers(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := db.Order("display_name")
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var members []models.Member
		if err := query.Find(&members).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch members",
			})
		}

		response := make([]MemberResponse, 0, len(members))
		for _, m := range members {
			response = append(response, memberResponse(m))
		}
		return c.JSON(response)
	}
}

// GetMember returns a handler for GET /api/v1/members/:id.
func GetMember(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid member ID",
			})
		}

		var member models.Member
		if err := db.First(&member, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "member not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch member",
			})
		}
		return c.JSON(memberResponse(member))
	}
}

// UpdateMemberRequest is the JSON body for PATCH /api/v1/members/:id.
// Nil fields are left untouched.
type UpdateMemberRequest struct {
	DisplayName   *string  `json:"display_name"`
	Role          *string  `json:"role"`
	Status        *string  `json:"status"`
	HandicapIndex *float64 `json:"handicap_index"`
}

// UpdateMember returns a handler for PATCH /api/v1/members/:id.
// Admin only (enforced by RequireRole on the route). Role and status changes
// are validated against the known enum values.
func UpdateMember(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid member ID",
			})
		}

		var req UpdateMemberRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		updates := map[string]interface{}{}
		if req.DisplayName != nil {
			if *req.DisplayName == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "display_name cannot be empty",
				})
			}
			updates["display_name"] = *req.DisplayName
		}
		if req.Role != nil {
			switch models.MemberRole(*req.Role) {
			case models.MemberRoleAdmin, models.MemberRoleManager, models.MemberRoleMember:
				updates["role"] = *req.Role
			default:
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "role must be 'admin', 'manager', or 'member'",
				})
			}
		}
		if req.Status != nil {
			switch models.MemberStatus(*req.Status) {
			case models.MemberStatusActive, models.MemberStatusSuspended, models.MemberStatusLapsed:
				updates["status"] = *req.Status
			default:
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "status must be 'active', 'suspended', or 'lapsed'",
				})
			}
		}
		if req.HandicapIndex != nil {
			if *req.HandicapIndex < 0 || *req.HandicapIndex > 54 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "handicap_index must be between 0 and 54",
				})
			}
			updates["handicap_index"] = *req.HandicapIndex
		}

		var member models.Member
		if err := db.First(&member, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "member not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch member",
			})
		}

		if len(updates) > 0 {
			if err := db.Model(&member).Updates(updates).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to update member",
				})
			}
		}
		return c.JSON(memberResponse(member))
	}
}
