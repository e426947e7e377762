package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/fondos-backend/internal/logger"
	"github.com/yungbote/fondos-backend/internal/types"
)

// TransactionRepo is append-only. There is no update or delete operation in
// this contract; the history is the audit trail.
type TransactionRepo interface {
	Append(ctx context.Context, tx *gorm.DB, record *types.TransactionRecord) error
	LatestForSubscription(ctx context.Context, tx *gorm.DB, subscriptionID uuid.UUID) (*types.TransactionRecord, error)
	ListBySubscriptionIDs(ctx context.Context, tx *gorm.DB, subscriptionIDs []uuid.UUID) ([]*types.TransactionRecord, error)
}

type transactionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTransactionRepo(db *gorm.DB, baseLog *logger.Logger) TransactionRepo {
	repoLog := baseLog.With("repo", "TransactionRepo")
	return &transactionRepo{db: db, log: repoLog}
}

func (tr *transactionRepo) Append(ctx context.Context, tx *gorm.DB, record *types.TransactionRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).Create(record).Error
}

func (tr *transactionRepo) LatestForSubscription(ctx context.Context, tx *gorm.DB, subscriptionID uuid.UUID) (*types.TransactionRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var record types.TransactionRecord
	if err := transaction.WithContext(ctx).
		Where("subscription_id = ?", subscriptionID).
		Order("timestamp DESC").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (tr *transactionRepo) ListBySubscriptionIDs(ctx context.Context, tx *gorm.DB, subscriptionIDs []uuid.UUID) ([]*types.TransactionRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.TransactionRecord
	if len(subscriptionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("subscription_id IN ?", subscriptionIDs).
		Order("timestamp").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
