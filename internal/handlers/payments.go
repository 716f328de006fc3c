package handlers

// payments.go — payment-processor capture records.
//
// The mobile app completes the charge against the processor directly; the API
// only records the capture and settles it against the ledger. ProcessorRef is
// unique, so a replayed webhook or a double-tapped confirmation screen lands
// on the existing row instead of double-booking money.

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/models"
)

// PaymentResponse is one capture record.
type PaymentResponse struct {
	ID           string `json:"id"`
	MemberID     string `json:"member_id"`
	ProcessorRef string `json:"processor_ref"`
	Amount       string `json:"amount"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// RecordPaymentRequest is the JSON body for POST /api/v1/payments.
type RecordPaymentRequest struct {
	ProcessorRef  string  `json:"processor_ref"`
	Amount        string  `json:"amount"`
	TransactionID *string `json:"transaction_id"` // Ledger entry this capture settles, if known
	EventID       *string `json:"event_id"`       // Marks the member's registration paid
}

func paymentResponse(p models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID.String(),
		MemberID:     p.MemberID.String(),
		ProcessorRef: p.ProcessorRef,
		Amount:       p.Amount.StringFixed(2),
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// RecordPayment returns a handler for POST /api/v1/payments.
// Idempotent on processor_ref: posting the same capture twice returns the
// original row with 200 instead of creating a duplicate.
func RecordPayment(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID, _, err := currentMember(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid member ID",
			})
		}

		var req RecordPaymentRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.ProcessorRef == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "processor_ref is required",
			})
		}
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil || !amount.IsPositive() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "amount must be a positive decimal",
			})
		}

		// Idempotency check before anything is written.
		var existing models.Payment
		err = db.Where("processor_ref = ?", req.ProcessorRef).First(&existing).Error
		if err == nil {
			return c.JSON(paymentResponse(existing))
		}
		if err != gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "database error",
			})
		}

		var transactionID *uuid.UUID
		if req.TransactionID != nil && *req.TransactionID != "" {
			id, err := uuid.Parse(*req.TransactionID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid transaction_id",
				})
			}
			transactionID = &id
		}

		payment := models.Payment{
			MemberID:      memberID,
			TransactionID: transactionID,
			ProcessorRef:  req.ProcessorRef,
			Amount:        amount,
			Status:        models.PaymentStatusCaptured,
		}

		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
			// A capture tied to an event settles that registration's fee.
			if req.EventID != nil && *req.EventID != "" {
				eventID, err := uuid.Parse(*req.EventID)
				if err != nil {
					return err
				}
				if err := tx.Model(&models.Registration{}).
					Where("event_id = ? AND member_id = ?", eventID, memberID).
					Update("paid", true).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record payment",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(paymentResponse(payment))
	}
}

// ListPayments returns a handler for GET /api/v1/payments.
// Members see their own captures; admins can pass ?member_id= for anyone's.
func ListPayments(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		memberID, role, err := currentMember(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid member ID",
			})
		}

		target := memberID
		if m := c.Query("member_id"); m != "" && role == "admin" {
			parsed, err := uuid.Parse(m)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid member_id",
				})
			}
			target = parsed
		}

		var payments []models.Payment
		err = db.Where("member_id = ?", target).Order("created_at DESC").Find(&payments).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch payments",
			})
		}

		response := make([]PaymentResponse, 0, len(payments))
		for _, p := range payments {
			response = append(response, paymentResponse(p))
		}
		return c.JSON(response)
	}
}
