package handlers

// scores.go — hole-by-hole score entry for event registrations.
//
// Scores are upserted one hole at a time as the group plays. The net score is
// derived on write from the registration's frozen course handicap and the
// course's stroke-index table, and every write is pushed to clients following
// the event's live feed.

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/models"
	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/websocket"
)

// ScoreResponse is one hole's entry on a scorecard.
type ScoreResponse struct {
	ID             string `json:"id"`
	RegistrationID string `json:"registration_id"`
	HoleNumber     int    `json:"hole_number"`
	GrossScore     int    `json:"gross_score"`
	NetScore       int    `json:"net_score"`
	EnteredAt      string `json:"entered_at"`
}

// UpsertScoreRequest is the JSON body for PUT /api/v1/registrations/:id/scores/:hole.
type UpsertScoreRequest struct {
	GrossScore int `json:"gross_score"`
}

// ListScores returns a handler for GET /api/v1/registrations/:id/scores.
func ListScores(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		regID, err := parseIDParam(c, "id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid registration ID",
			})
		}

		var scores []models.Score
		err = db.Where("registration_id = ?", regID).Order("hole_number").Find(&scores).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch scores",
			})
		}

		response := make([]ScoreResponse, 0, len(scores))
		for _, s := range scores {
			response = append(response, ScoreResponse{
				ID:             s.ID.String(),
				RegistrationID: s.RegistrationID.String(),
				HoleNumber:     s.HoleNumber,
				GrossScore:     s.GrossScore,
				NetScore:       s.NetScore,
				EnteredAt:      s.EnteredAt.UTC().Format(time.RFC3339),
			})
		}
		return c.JSON(response)
	}
}

// UpsertScore returns a handler for PUT /api/v1/registrations/:id/scores/:hole.
// Creates or replaces the score for one hole, recomputes the net, updates the
// registration's running totals, and broadcasts the write to the event feed.
func UpsertScore(db *gorm.DB, hub *websocket.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID, _, err := currentMember(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid member ID",
			})
		}
		regID, err := parseIDParam(c, "id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid registration ID",
			})
		}
		hole, err := c.ParamsInt("hole")
		if err != nil || hole < 1 || hole > 18 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "hole must be between 1 and 18",
			})
		}

		var req UpsertScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.GrossScore < 1 || req.GrossScore > 20 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "gross_score must be between 1 and 20",
			})
		}

		var registration models.Registration
		err = db.Preload("Event").First(&registration, "id = ?", regID).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "registration not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "database error",
			})
		}

		// Net = gross minus the strokes this hole's index grants the player's
		// frozen course handicap. Without a handicap or course, net == gross.
		net := req.GrossScore
		if registration.CourseHandicap != nil && registration.Event.CourseID != nil {
			var courseHole models.CourseHole
			err := db.Where("course_id = ? AND hole_number = ?",
				registration.Event.CourseID, hole).First(&courseHole).Error
			if err == nil {
				net -= strokesOnHole(*registration.CourseHandicap, courseHole.StrokeIndex)
			}
		}

		var score models.Score
		err = db.Where("registration_id = ? AND hole_number = ?", regID, hole).First(&score).Error
		switch {
		case err == nil:
			score.GrossScore = req.GrossScore
			score.NetScore = net
			score.EnteredBy = memberID
			err = db.Save(&score).Error
		case err == gorm.ErrRecordNotFound:
			score = models.Score{
				RegistrationID: regID,
				HoleNumber:     hole,
				GrossScore:     req.GrossScore,
				NetScore:       net,
				EnteredBy:      memberID,
			}
			err = db.Create(&score).Error
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save score",
			})
		}

		updateRegistrationTotals(db, &registration)

		// Push the write to anyone following the event live.
		payload, _ := json.Marshal(fiber.Map{
			"registration_id": regID.String(),
			"hole_number":     hole,
			"gross_score":     req.GrossScore,
			"net_score":       net,
		})
		hub.Broadcast("event:"+registration.EventID.String(), payload)

		return c.JSON(ScoreResponse{
			ID:             score.ID.String(),
			RegistrationID: score.RegistrationID.String(),
			HoleNumber:     score.HoleNumber,
			GrossScore:     score.GrossScore,
			NetScore:       score.NetScore,
			EnteredAt:      score.EnteredAt.UTC().Format(time.RFC3339),
		})
	}
}

// updateRegistrationTotals recomputes a registration's gross and net totals
// from its score rows. Totals stay nil until all 18 holes are in, matching how
// the app distinguishes "in progress" from "finished".
func updateRegistrationTotals(db *gorm.DB, registration *models.Registration) {
	var scores []models.Score
	if err := db.Where("registration_id = ?", registration.ID).Find(&scores).Error; err != nil {
		return
	}
	if len(scores) < 18 {
		return
	}

	gross := 0
	for _, s := range scores {
		gross += s.GrossScore
	}
	net := gross
	if registration.CourseHandicap != nil {
		net -= *registration.CourseHandicap
	}
	db.Model(registration).Updates(map[string]interface{}{
		"total_gross": gross,
		"total_net":   net,
	})
}
