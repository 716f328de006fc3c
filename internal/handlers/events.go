package handlers

// events.go — the /api/v1/events routes.
//
// An event is the top-level container for anything the club puts on the
// calendar: a tournament (competitive, Rolex points), a social outing, or a
// recurring league night.
//
// Permission model, two layers:
//
//  1. Route-level (middleware.RequireRole): only "admin" and "manager" global
//     roles can create events; every authenticated member can read them.
//  2. Resource-level (canManageEvent below): admins can manage any event;
//     a manager can only manage events they created.

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/models"
)

// EventResponse is what the mobile app renders in the calendar and event
// detail screens. Money is serialized as a decimal string ("25.00") so the
// client never sees a float.
type EventResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	EventType         string  `json:"event_type"`
	Status            string  `json:"status"`
	StartDate         *string `json:"start_date"`
	RegistrationOpen  *string `json:"registration_open"`
	RegistrationClose *string `json:"registration_close"`
	Capacity          *int    `json:"capacity"`
	EntryFee          string  `json:"entry_fee"`
	RolexPoints       bool    `json:"rolex_points"`
	CreatorName       string  `json:"creator_name"`
	RegisteredCount   int64   `json:"registered_count"`
	CreatedAt         string  `json:"created_at"`
}

// CreateEventRequest is the JSON body for POST /api/v1/events.
type CreateEventRequest struct {
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	EventType         string  `json:"event_type"`
	CourseID          *string `json:"course_id"`
	StartDate         *string `json:"start_date"`
	RegistrationOpen  *string `json:"registration_open"`
	RegistrationClose *string `json:"registration_close"`
	Capacity          *int    `json:"capacity"`
	EntryFee          *string `json:"entry_fee"` // decimal string, e.g. "25.00"
	RolexPoints       bool    `json:"rolex_points"`
}

func eventResponse(db *gorm.DB, event models.Event) EventResponse {
	var registered int64
	db.Model(&models.Registration{}).
		Where("event_id = ? AND status = ?", event.ID, models.RegistrationStatusRegistered).
		Count(&registered)

	return EventResponse{
		ID:                event.ID.String(),
		Name:              event.Name,
		Description:       event.Description,
		EventType:         string(event.EventType),
		Status:            string(event.Status),
		StartDate:         formatOptionalDate(event.StartDate),
		RegistrationOpen:  formatOptionalDate(event.RegistrationOpen),
		RegistrationClose: formatOptionalDate(event.RegistrationClose),
		Capacity:          event.Capacity,
		EntryFee:          event.EntryFee.StringFixed(2),
		RolexPoints:       event.RolexPoints,
		CreatorName:       event.Creator.DisplayName,
		RegisteredCount:   registered,
		CreatedAt:         event.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GetEvents returns a handler for GET /api/v1/events.
// The whole club calendar is visible to every member. Optional filters:
// ?type=tournament|social|league_night and ?status=upcoming|open|active|...
func GetEvents(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Preload("Creator") fetches the related Member for each event's
		// CreatedBy in one extra query instead of one per row.
		query := db.Preload("Creator").Order("start_date")
		if t := c.Query("type"); t != "" {
			query = query.Where("event_type = ?", t)
		}
		if s := c.Query("status"); s != "" {
			query = query.Where("status = ?", s)
		}

		var events []models.Event
		if err := query.Find(&events).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch events",
			})
		}

		response := make([]EventResponse, 0, len(events))
		for _, event := range events {
			response = append(response, eventResponse(db, event))
		}
		return c.JSON(response)
	}
}

// GetEvent returns a handler for GET /api/v1/events/:id.
func GetEvent(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid event ID",
			})
		}

		var event models.Event
		if err := db.Preload("Creator").First(&event, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "event not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch event",
			})
		}
		return c.JSON(eventResponse(db, event))
	}
}

// CreateEvent returns a handler for POST /api/v1/events.
// Requires "admin" or "manager" (enforced by RequireRole on the route).
func CreateEvent(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID, _, err := currentMember(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid member ID",
			})
		}

		var req CreateEventRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name is required",
			})
		}
		switch models.EventType(req.EventType) {
		case models.EventTypeTournament, models.EventTypeSocial, models.EventTypeLeagueNight:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "event_type must be 'tournament', 'social', or 'league_night'",
			})
		}

		startDate, err := parseOptionalDate(req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "start_date must be in YYYY-MM-DD format",
			})
		}
		regOpen, err := parseOptionalDate(req.RegistrationOpen)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "registration_open must be in YYYY-MM-DD format",
			})
		}
		regClose, err := parseOptionalDate(req.RegistrationClose)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "registration_close must be in YYYY-MM-DD format",
			})
		}

		entryFee := decimal.Zero
		if req.EntryFee != nil && *req.EntryFee != "" {
			entryFee, err = decimal.NewFromString(*req.EntryFee)
			if err != nil || entryFee.IsNegative() {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "entry_fee must be a non-negative decimal amount",
				})
			}
		}

		var courseID *uuid.UUID
		if req.CourseID != nil && *req.CourseID != "" {
			parsed, err := uuid.Parse(*req.CourseID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid course_id",
				})
			}
			courseID = &parsed
		}

		if req.Capacity != nil && *req.Capacity < 2 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "capacity must be at least 2",
			})
		}

		event := models.Event{
			Name:              req.Name,
			Description:       req.Description,
			EventType:         models.EventType(req.EventType),
			Status:            models.EventStatusUpcoming,
			CourseID:          courseID,
			StartDate:         startDate,
			RegistrationOpen:  regOpen,
			RegistrationClose: regClose,
			Capacity:          req.Capacity,
			EntryFee:          entryFee,
			RolexPoints:       req.RolexPoints,
			CreatedBy:         memberID,
		}
		// The organizer plays too: creating an event registers the creator in
		// the same transaction, entry fee owed like everyone else's.
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
			registration := models.Registration{
				EventID:  event.ID,
				MemberID: memberID,
				Status:   models.RegistrationStatusRegistered,
			}
			if err := tx.Create(&registration).Error; err != nil {
				return err
			}
			if event.EntryFee.IsPositive() {
				fee := models.Transaction{
					MemberID:    &memberID,
					EventID:     &event.ID,
					Type:        models.TransactionTypeEntryFee,
					Amount:      event.EntryFee,
					Description: "Entry fee: " + event.Name,
					RecordedBy:  memberID,
				}
				if err := tx.Create(&fee).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create event",
			})
		}

		var creator models.Member
		db.First(&creator, "id = ?", memberID)
		event.Creator = creator

		return c.Status(fiber.StatusCreated).JSON(eventResponse(db, event))
	}
}

// canManageEvent reports whether a member may modify a specific event.
// Global admins can manage any event; everyone else only the events they
// created. Call this at the top of any handler that mutates an event.
func canManageEvent(db *gorm.DB, eventID, memberID uuid.UUID, role string) bool {
	if role == "admin" {
		return true
	}
	var event models.Event
	err := db.Select("created_by").First(&event, "id = ?", eventID).Error
	return err == nil && event.CreatedBy == memberID
}
