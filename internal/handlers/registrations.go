package handlers

// registrations.go — event sign-up and withdrawal.
//
// Registering checks the registration window and capacity; overflow goes to
// the waitlist instead of being rejected. When the event has an entry fee, the
// registration and its ledger entry are created in one database transaction so
// neither can exist without the other.

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/models"
)

// RegistrationResponse is one row on an event's player list.
type RegistrationResponse struct {
	ID             string  `json:"id"`
	EventID        string  `json:"event_id"`
	MemberID       string  `json:"member_id"`
	MemberName     string  `json:"member_name"`
	Status         string  `json:"status"`
	Paid           bool    `json:"paid"`
	CourseHandicap *int    `json:"course_handicap"`
	FinishPosition *int    `json:"finish_position"`
	TotalGross     *int    `json:"total_gross"`
	TotalNet       *int    `json:"total_net"`
	CreatedAt      string  `json:"created_at"`
}

func registrationResponse(r models.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:             r.ID.String(),
		EventID:        r.EventID.String(),
		MemberID:       r.MemberID.String(),
		MemberName:     r.Member.DisplayName,
		Status:         string(r.Status),
		Paid:           r.Paid,
		CourseHandicap: r.CourseHandicap,
		FinishPosition: r.FinishPosition,
		TotalGross:     r.TotalGross,
		TotalNet:       r.TotalNet,
		CreatedAt:      r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListRegistrations returns a handler for GET /api/v1/events/:id/registrations.
func ListRegistrations(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventID, err := parseIDParam(c, "id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid event ID",
			})
		}

		var regs []models.Registration
		err = db.Preload("Member").
			Where("event_id = ?", eventID).
			Order("created_at").
			Find(&regs).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch registrations",
			})
		}

		response := make([]RegistrationResponse, 0, len(regs))
		for _, r := range regs {
			response = append(response, registrationResponse(r))
		}
		return c.JSON(response)
	}
}

// RegisterForEvent returns a handler for POST /api/v1/events/:id/registrations.
// The authenticated member registers themselves.
func RegisterForEvent(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID, _, err := currentMember(c)
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

		var event models.Event
		if err := db.First(&event, "id = ?", eventID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "event not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch event",
			})
		}

		switch event.Status {
		case models.EventStatusCompleted, models.EventStatusCancelled:
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "event is closed",
			})
		}

		now := time.Now().UTC()
		if event.RegistrationOpen != nil && now.Before(*event.RegistrationOpen) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "registration has not opened yet",
			})
		}
		if event.RegistrationClose != nil && now.After(*event.RegistrationClose) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "registration has closed",
			})
		}

		var existing models.Registration
		err = db.Where("event_id = ? AND member_id = ?", eventID, memberID).First(&existing).Error
		if err == nil && existing.Status != models.RegistrationStatusWithdrawn {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "already registered",
			})
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "database error",
			})
		}

		// Capacity check: overflow registers as waitlisted rather than failing.
		status := models.RegistrationStatusRegistered
		if event.Capacity != nil {
			var registered int64
			db.Model(&models.Registration{}).
				Where("event_id = ? AND status = ?", eventID, models.RegistrationStatusRegistered).
				Count(&registered)
			if registered >= int64(*event.Capacity) {
				status = models.RegistrationStatusWaitlisted
			}
		}

		var registration models.Registration
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if existing.ID != uuid.Nil {
				// Re-registering after a withdrawal reuses the row.
				existing.Status = status
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				registration = existing
			} else {
				registration = models.Registration{
					EventID:  eventID,
					MemberID: memberID,
					Status:   status,
				}
				if err := tx.Create(&registration).Error; err != nil {
					return err
				}
			}

			// Entry fee goes on the ledger the moment the spot is taken; the
			// payment capture marks it paid later. Waitlisted members owe
			// nothing until promoted.
			if event.EntryFee.IsPositive() && status == models.RegistrationStatusRegistered {
				ledger := models.Transaction{
					MemberID:    &memberID,
					EventID:     &eventID,
					Type:        models.TransactionTypeEntryFee,
					Amount:      event.EntryFee,
					Description: "Entry fee: " + event.Name,
					RecordedBy:  memberID,
				}
				if err := tx.Create(&ledger).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to register",
			})
		}

		db.Preload("Member").First(&registration, "id = ?", registration.ID)
		return c.Status(fiber.StatusCreated).JSON(registrationResponse(registration))
	}
}

// WithdrawFromEvent returns a handler for DELETE /api/v1/events/:id/registrations.
// The authenticated member withdraws themselves; a paid entry fee produces a
// refund ledger entry in the same transaction.
func WithdrawFromEvent(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID, _, err := currentMember(c)
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

		var registration models.Registration
		err = db.Preload("Event").
			Where("event_id = ? AND member_id = ?", eventID, memberID).
			First(&registration).Error
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
		if registration.Status == models.RegistrationStatusWithdrawn {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "already withdrawn",
			})
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&registration).
				Update("status", models.RegistrationStatusWithdrawn).Error; err != nil {
				return err
			}
			if registration.Paid && registration.Event.EntryFee.IsPositive() {
				refund := models.Transaction{
					MemberID:    &memberID,
					EventID:     &eventID,
					Type:        models.TransactionTypeRefund,
					Amount:      registration.Event.EntryFee.Neg(),
					Description: "Withdrawal refund: " + registration.Event.Name,
					RecordedBy:  memberID,
				}
				if err := tx.Create(&refund).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to withdraw",
			})
		}
		return c.JSON(fiber.Map{"status": "withdrawn"})
	}
}
