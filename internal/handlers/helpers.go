// Package handlers contains the HTTP route handler functions for the Golfbook
// API. Each exported function follows the handler-factory pattern: it takes
// its collaborators (*gorm.DB, the websocket hub, the score cache) and returns
// a fiber.Handler, so dependencies are injected instead of living in globals.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// formatOptionalDate converts a *time.Time to a *string in "2006-01-02"
// format, preserving nil so the JSON field stays null.
func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02")
	return &s
}

// parseOptionalDate parses an optional "YYYY-MM-DD" string. Nil or empty input
// yields nil; a non-empty invalid string is an error.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// currentMember reads the authenticated member's ID and role out of the
// request context, where the Auth middleware stored them.
func currentMember(c *fiber.Ctx) (uuid.UUID, string, error) {
	idStr, _ := c.Locals("memberID").(string)
	role, _ := c.Locals("memberRole").(string)
	id, err := uuid.Parse(idStr)
	return id, role, err
}

// parseIDParam parses a UUID route parameter.
func parseIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}
