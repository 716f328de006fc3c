package handlers

// groups.go — tee-time group assignment.
//
// The tee sheet is built from an event's confirmed registrations: players are
// chunked into groups of the requested size and assigned tee times at a fixed
// interval. Rebuilding replaces the existing sheet, so managers can reshuffle
// until play starts.

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/models"
)

// TeeGroupResponse is one tee time on the sheet.
type TeeGroupResponse struct {
	ID           string   `json:"id"`
	GroupNumber  int      `json:"group_number"`
	TeeTime      *string  `json:"tee_time"`
	StartingHole int      `json:"starting_hole"`
	PlayerNames  []string `json:"player_names"`
}

// BuildTeeGroupsRequest is the JSON body for POST /api/v1/events/:id/groups.
type BuildTeeGroupsRequest struct {
	GroupSize       int     `json:"group_size"`       // Players per group; default 4
	FirstTeeTime    *string `json:"first_tee_time"`   // RFC 3339; nil = no times on the sheet
	IntervalMinutes int     `json:"interval_minutes"` // Gap between tee times; default 10
}

// ListTeeGroups returns a handler for GET /api/v1/events/:id/groups.
func ListTeeGroups(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID, err := parseIDParam(c, "id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid event ID",
			})
		}

		var groups []models.TeeGroup
		err = db.Preload("Players.Registration.Member").
			Where("event_id = ?", eventID).
			Order("group_number").
			Find(&groups).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch tee groups",
			})
		}

		response := make([]TeeGroupResponse, 0, len(groups))
		for _, g := range groups {
			names := make([]string, 0, len(g.Players))
			for _, p := range g.Players {
				names = append(names, p.Registration.Member.DisplayName)
			}
			var teeTime *string
			if g.TeeTime != nil {
				s := g.TeeTime.UTC().Format(time.RFC3339)
				teeTime = &s
			}
			response = append(response, TeeGroupResponse{
				ID:           g.ID.String(),
				GroupNumber:  g.GroupNumber,
				TeeTime:      teeTime,
				StartingHole: g.StartingHole,
				PlayerNames:  names,
			})
		}
		return c.JSON(response)
	}
}

// BuildTeeGroups returns a handler for POST /api/v1/events/:id/groups.
// Admin or the event's creating manager only. Replaces any existing sheet.
func BuildTeeGroups(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID, role, err := currentMember(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid member ID",
			})
		}
		eventID, err := parseIDParam(c, "id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid event ID",
			})
		}
		if !canManageEvent(db, eventID, memberID, role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "not authorized to manage this event",
			})
		}

		var req BuildTeeGroupsRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.GroupSize == 0 {
			req.GroupSize = 4
		}
		if req.GroupSize < 2 || req.GroupSize > 5 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "group_size must be between 2 and 5",
			})
		}
		if req.IntervalMinutes == 0 {
			req.IntervalMinutes = 10
		}

		var firstTee *time.Time
		if req.FirstTeeTime != nil && *req.FirstTeeTime != "" {
			t, err := time.Parse(time.RFC3339, *req.FirstTeeTime)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "first_tee_time must be RFC 3339",
				})
			}
			firstTee = &t
		}

		var regs []models.Registration
		err = db.Where("event_id = ? AND status = ?", eventID, models.RegistrationStatusRegistered).
			Order("created_at").
			Find(&regs).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch registrations",
			})
		}
		if len(regs) == 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "no registered players to group",
			})
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			// Drop the old sheet before rebuilding.
			var old []models.TeeGroup
			if err := tx.Where("event_id = ?", eventID).Find(&old).Error; err != nil {
				return err
			}
			for _, g := range old {
				if err := tx.Where("tee_group_id = ?", g.ID).
					Delete(&models.TeeGroupPlayer{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("event_id = ?", eventID).
				Delete(&models.TeeGroup{}).Error; err != nil {
				return err
			}

			for i := 0; i < len(regs); i += req.GroupSize {
				end := i + req.GroupSize
				if end > len(regs) {
					end = len(regs)
				}
				groupNumber := i/req.GroupSize + 1

				var teeTime *time.Time
				if firstTee != nil {
					t := firstTee.Add(time.Duration(groupNumber-1) *
						time.Duration(req.IntervalMinutes) * time.Minute)
					teeTime = &t
				}

				group := models.TeeGroup{
					EventID:      eventID,
					GroupNumber:  groupNumber,
					TeeTime:      teeTime,
					StartingHole: 1,
				}
				if err := tx.Create(&group).Error; err != nil {
					return err
				}
				for _, reg := range regs[i:end] {
					gp := models.TeeGroupPlayer{
						TeeGroupID:     group.ID,
						RegistrationID: reg.ID,
					}
					if err := tx.Create(&gp).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to build tee groups",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"groups": (len(regs) + req.GroupSize - 1) / req.GroupSize,
		})
	}
}
