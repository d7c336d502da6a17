package service

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"

	"github.com/splitsmart/splitsmart/internal/models"
	"github.com/splitsmart/splitsmart/internal/notify"
	"github.com/splitsmart/splitsmart/internal/storage"
)

// CreateSettlementInput carries a new settlement.
type CreateSettlementInput struct {
	Amount           float64
	Note             string
	Date             int64
	PaidByUserID     string
	ReceivedByUserID string
	GroupID          string
}

// SettlementService handles recording payments between users.
type SettlementService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewSettlementService creates a new settlement service.
func NewSettlementService(store storage.Store, notifier notify.Notifier) *SettlementService {
	return &SettlementService{store: store, notifier: notifier}
}

// CreateSettlement validates and persists a payment, then notifies the
// counterparty.
func (s *SettlementService) CreateSettlement(ctx context.Context, userID string, in CreateSettlementInput) (*models.Settlement, error) {
	if in.Amount <= 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return nil, invalidf("amount must be positive")
	}
	if in.PaidByUserID == "" || in.ReceivedByUserID == "" {
		return nil, invalidf("payer and receiver are required")
	}
	if in.PaidByUserID == in.ReceivedByUserID {
		return nil, invalidf("payer and receiver must differ")
	}
	if userID != in.PaidByUserID && userID != in.ReceivedByUserID {
		return nil, ErrPermissionDenied
	}

	if in.GroupID != "" {
		group, err := s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if !group.HasMember(in.PaidByUserID) || !group.HasMember(in.ReceivedByUserID) {
			return nil, invalidf("both parties must be members of the group")
		}
	}

	settlement := &models.Settlement{
		Amount:           in.Amount,
		Note:             strings.TrimSpace(in.Note),
		Date:             in.Date,
		PaidByUserID:     in.PaidByUserID,
		ReceivedByUserID: in.ReceivedByUserID,
		GroupID:          in.GroupID,
		CreatedBy:        userID,
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("failed to create settlement", "user_id", userID, "error", err)
		return nil, err
	}

	slog.Info("settlement recorded",
		"settlement_id", settlement.ID,
		"amount", settlement.Amount,
		"paid_by", settlement.PaidByUserID,
		"received_by", settlement.ReceivedByUserID,
	)

	s.notifyCounterparty(ctx, userID, settlement)

	return settlement, nil
}

// ListSettlements returns every settlement the user is part of, newest first.
func (s *SettlementService) ListSettlements(ctx context.Context, userID string) ([]*models.Settlement, error) {
	return s.store.ListSettlementsByParticipant(ctx, userID)
}

func (s *SettlementService) notifyCounterparty(ctx context.Context, creatorID string, settlement *models.Settlement) {
	otherID := settlement.PaidByUserID
	if otherID == creatorID {
		otherID = settlement.ReceivedByUserID
	}

	users, err := s.store.GetUsersByIDs(ctx, []string{creatorID, otherID})
	if err != nil {
		slog.Warn("failed to load users for notification", "settlement_id", settlement.ID, "error", err)
		return
	}
	creator, recipient := users[creatorID], users[otherID]
	if creator == nil || recipient == nil {
		return
	}

	event := notify.Event{
		Type:           notify.EventSettlementRecorded,
		RecipientEmail: recipient.Email,
		RecipientName:  recipient.Name,
		ActorName:      creator.Name,
		Description:    settlement.Note,
		Amount:         settlement.Amount,
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		slog.Warn("failed to notify counterparty",
			"settlement_id", settlement.ID,
			"user_id", otherID,
			"error", err,
		)
	}
}
