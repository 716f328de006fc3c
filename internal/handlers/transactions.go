package handlers

// transactions.go — the club's financial ledger.
//
// Every money movement is one signed row: dues and entry fees credit the club,
// payouts and refunds debit it. Amounts are decimals end to end; a member's
// balance is a SUM over their rows, never a cached float.

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ourschoolpix-photostudio/rork-golfbook-sub003/internal/models"
)

// TransactionResponse is one ledger row.
type TransactionResponse struct {
	ID          string  `json:"id"`
	MemberID    *string `json:"member_id"`
	EventID     *string `json:"event_id"`
	Type        string  `json:"type"`
	Amount      string  `json:"amount"` // signed decimal string
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

// CreateTransactionRequest is the JSON body for POST /api/v1/transactions.
type CreateTransactionRequest struct {
	MemberID    *string `json:"member_id"`
	EventID     *string `json:"event_id"`
	Type        string  `json:"type"`
	Amount      string  `json:"amount"`
	Description string  `json:"description"`
}

func transactionResponse(t models.Transaction) TransactionResponse {
	var memberID, eventID *string
	if t.MemberID != nil {
		s := t.MemberID.String()
		memberID = &s
	}
	if t.EventID != nil {
		s := t.EventID.String()
		eventID = &s
	}
	return TransactionResponse{
		ID:          t.ID.String(),
		MemberID:    memberID,
		EventID:     eventID,
		Type:        string(t.Type),
		Amount:      t.Amount.StringFixed(2),
		Description: t.Description,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ListTransactions returns a handler for GET /api/v1/transactions.
// Admin only. Optional filters: ?member_id=<uuid> and ?type=dues|entry_fee|...
func ListTransactions(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := db.Order("created_at DESC")
		if m := c.Query("member_id"); m != "" {
			id, err := uuid.Parse(m)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid member_id",
				})
			}
			query = query.Where("member_id = ?", id)
		}
		if t := c.Query("type"); t != "" {
			query = query.Where("type = ?", t)
		}

		var txs []models.Transaction
		if err := query.Find(&txs).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch transactions",
			})
		}

		response := make([]TransactionResponse, 0, len(txs))
		for _, t := range txs {
			response = append(response, transactionResponse(t))
		}
		return c.JSON(response)
	}
}

// CreateTransaction returns a handler for POST /api/v1/transactions.
// Admin only: manual ledger entries for dues, payouts, and adjustments.
func CreateTransaction(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recorderID, _, err := currentMember(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid member ID",
			})
		}

		var req CreateTransactionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		switch models.TransactionType(req.Type) {
		case models.TransactionTypeDues, models.TransactionTypeEntryFee,
			models.TransactionTypePayout, models.TransactionTypeRefund,
			models.TransactionTypeAdjustment:
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown transaction type",
			})
		}

		amount, err := decimal.NewFromString(req.Amount)
		if err != nil || amount.IsZero() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "amount must be a non-zero decimal",
			})
		}

		tx := models.Transaction{
			Type:        models.TransactionType(req.Type),
			Amount:      amount,
			Description: req.Description,
			RecordedBy:  recorderID,
		}
		if req.MemberID != nil && *req.MemberID != "" {
			id, err := uuid.Parse(*req.MemberID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid member_id",
				})
			}
			tx.MemberID = &id
		}
		if req.EventID != nil && *req.EventID != "" {
			id, err := uuid.Parse(*req.EventID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid event_id",
				})
			}
			tx.EventID = &id
		}

		if err := db.Create(&tx).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create transaction",
			})
		}
		return c.Status(fiber.StatusCreated).JSON(transactionResponse(tx))
	}
}

// GetMemberBalance returns a handler for GET /api/v1/members/:id/balance.
// The balance is the signed sum of the member's ledger rows: positive means
// the member owes the club.
func GetMemberBalance(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid member ID",
			})
		}

		var balance decimal.Decimal
		err = db.Model(&models.Transaction{}).
			Where("member_id = ?", id).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&balance).Error
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute balance",
			})
		}

		return c.JSON(fiber.Map{
			"member_id": id.String(),
			"balance":   balance.StringFixed(2),
		})
	}
}
