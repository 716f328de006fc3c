package handlers

// rolex.go — the club's season-long point leaderboard (the "Rolex").
//
// Tournaments flagged for Rolex points award them by finishing position once
// results are final. Standings are the per-member sum of awards for a season;
// nothing is precomputed, the leaderboard is one grouped query.

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/models"
)

// rolexPointsTable maps finishing position to points. Positions past the
// table earn the participation floor.
var rolexPointsTable = []int{100, 80, 65, 55, 50, 45, 40, 36, 32, 30}

const rolexParticipationPoints = 10

// rolexPointsForPosition returns the Rolex points a finishing position earns.
func rolexPointsForPosition(position int) int {
	if position < 1 {
		return 0
	}
	if position <= len(rolexPointsTable) {
		return rolexPointsTable[position-1]
	}
	return rolexParticipationPoints
}

// StandingResponse is one row of the leaderboard.
type StandingResponse struct {
	MemberID     string `json:"member_id"`
	MemberName   string `json:"member_name"`
	Season       int    `json:"season"`
	TotalPoints  int    `json:"total_points"`
	EventsPlayed int    `json:"events_played"`
}

// GetStandings returns a handler for GET /api/v1/rolex.
// Optional query param: ?season=2026 (defaults to the current year).
func GetStandings(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		season := c.QueryInt("season")
		if season == 0 {
			season = time.Now().UTC().Year()
		}

		var standings []StandingResponse
		err := db.Model(&models.RolexAward{}).
			Select("rolex_awards.member_id as member_id, members.display_name as member_name, rolex_awards.season as season, SUM(rolex_awards.points) as total_points, COUNT(rolex_awards.id) as events_played").
			Joins("JOIN members ON members.id = rolex_awards.member_id").
			Where("rolex_awards.season = ?", season).
			Group("rolex_awards.member_id, members.display_name, rolex_awards.season").
			Order("total_points DESC").
			Scan(&standings).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch standings",
			})
		}
		if standings == nil {
			standings = []StandingResponse{}
		}
		return c.JSON(standings)
	}
}

// AwardPoints returns a handler for POST /api/v1/events/:id/rolex.
// Admin or the event's creating manager. Awards points to every registration
// with a finish position, in one transaction; re-running replaces the event's
// awards so corrected results can be re-posted.
func AwardPoints(db *gorm.DB) fiber.Handler {
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

		var event models.Event
		if err := db.First(&event, "id = ?", eventID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "event not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "database error",
			})
		}
		if !event.RolexPoints {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "event does not award Rolex points",
			})
		}

		var regs []models.Registration
		err = db.Where("event_id = ? AND finish_position IS NOT NULL", eventID).Find(&regs).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch results",
			})
		}
		if len(regs) == 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "no finishing positions recorded",
			})
		}

		season := time.Now().UTC().Year()
		if event.StartDate != nil {
			season = event.StartDate.Year()
		}

		awarded := 0
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("event_id = ?", eventID).
				Delete(&models.RolexAward{}).Error; err != nil {
				return err
			}
			for _, reg := range regs {
				award := models.RolexAward{
					MemberID: reg.MemberID,
					EventID:  eventID,
					Season:   season,
					Position: *reg.FinishPosition,
					Points:   rolexPointsForPosition(*reg.FinishPosition),
				}
				if err := tx.Create(&award).Error; err != nil {
					return err
				}
				awarded++
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to award points",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"season":  season,
			"awarded": awarded,
		})
	}
}
