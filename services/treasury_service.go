package services

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pool-league-system/engine"
	"pool-league-system/models"
)

// ledgerLockKey serializes appends so two admins recording at once cannot
// both read the same running balance (postgres advisory lock, tx-scoped).
const ledgerLockKey = 7235001

// TreasuryService owns the append-only ledger. Entries are never mutated or
// deleted; corrections are new entries.
type TreasuryService struct {
	DB       *gorm.DB
	Activity *ActivityService
	Notifier *Notifier
}

func NewTreasuryService(db *gorm.DB, activity *ActivityService, notifier *Notifier) *TreasuryService {
	return &TreasuryService{DB: db, Activity: activity, Notifier: notifier}
}

// GetTransactions lists ledger entries, newest first.
func (s *TreasuryService) GetTransactions(c *fiber.Ctx) error {
	var txs []models.Transaction
	if err := s.DB.
		Preload("Player").
		Order("created_at DESC").
		Find(&txs).Error; err != nil {
		return respondErr(c, err)
	}
	return c.JSON(txs)
}

// GetBalance reduces the full ledger to the treasury totals.
func (s *TreasuryService) GetBalance(c *fiber.Ctx) error {
	var txs []models.Transaction
	if err := s.DB.Find(&txs).Error; err != nil {
		return respondErr(c, err)
	}
	return c.JSON(engine.Summarize(txs))
}

type addTransactionRequest struct {
	PlayerID       *string `json:"player_id,omitempty"`
	Type           string  `json:"type"`
	Category       string  `json:"category"`
	Amount         int64   `json:"amount"` // cents, unsigned; type carries the sign
	Description    string  `json:"description"`
	RelatedMatchID *string `json:"related_match_id,omitempty"`
}

// AddTransaction (admin) appends a ledger entry with its running balance.
// The balance is recomputed from the full history inside the same locked
// transaction as the insert, so balance_after can never disagree with the
// sum of everything before it.
func (s *TreasuryService) AddTransaction(c *fiber.Ctx) error {
	var req addTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON", "details": err.Error()})
	}
	if err := engine.ValidateTransaction(req.Type, req.Amount); err != nil {
		return respondErr(c, err)
	}
	if err := engine.ValidateCategory(req.Category); err != nil {
		return respondErr(c, err)
	}
	if req.Description == "" {
		return c.Status(400).JSON(fiber.Map{"error": "description is required"})
	}

	adminID, _ := c.Locals("user_id").(string)

	entry := models.Transaction{
		PlayerID:       req.PlayerID,
		Type:           req.Type,
		Category:       req.Category,
		Amount:         req.Amount,
		Description:    req.Description,
		RelatedMatchID: req.RelatedMatchID,
	}
	if adminID != "" {
		entry.AdminID = &adminID
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", ledgerLockKey).Error; err != nil {
			return err
		}

		var current int64
		if err := tx.Model(&models.Transaction{}).
			Select("COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)").
			Scan(&current).Error; err != nil {
			return err
		}

		next, err := engine.NextBalance(current, entry.Type, entry.Amount)
		if err != nil {
			return err
		}
		entry.BalanceAfter = next

		return tx.Create(&entry).Error
	})
	if err != nil {
		return respondErr(c, err)
	}

	if entry.Type == models.TransactionIncome && entry.PlayerID != nil {
		s.Activity.Log(models.Activity{
			Type:        models.ActivityPaymentReceived,
			ActorID:     entry.PlayerID,
			MatchID:     entry.RelatedMatchID,
			Description: entry.Description,
		})
	}
	s.Notifier.Invalidate(engine.TreasuryInvalidations...)

	return c.Status(fiber.StatusCreated).JSON(entry)
}
