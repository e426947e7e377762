package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/fondos-backend/internal/errs"
	"github.com/yungbote/fondos-backend/internal/logger"
	"github.com/yungbote/fondos-backend/internal/types"
)

type SubscriptionRepo interface {
	// Create inserts a new subscription. A duplicate active (user, fund)
	// pair is rejected by the store's partial unique index and surfaces as
	// errs.ErrAlreadyExists.
	Create(ctx context.Context, tx *gorm.DB, sub *types.Subscription) error
	GetByID(ctx context.Context, tx *gorm.DB, subscriptionID uuid.UUID) (*types.Subscription, error)
	ActiveExists(ctx context.Context, tx *gorm.DB, userID, fundID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Subscription, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Subscription, error)
	// CancelActive flips an active subscription to cancelled. It only
	// matches the active row, so a concurrent double-cancel loses the race
	// and gets errs.ErrNotFound.
	CancelActive(ctx context.Context, tx *gorm.DB, subscriptionID uuid.UUID) error
}

type subscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	repoLog := baseLog.With("repo", "SubscriptionRepo")
	return &subscriptionRepo{db: db, log: repoLog}
}

func (sr *subscriptionRepo) Create(ctx context.Context, tx *gorm.DB, sub *types.Subscription) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if err := transaction.WithContext(ctx).Create(sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (sr *subscriptionRepo) GetByID(ctx context.Context, tx *gorm.DB, subscriptionID uuid.UUID) (*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var sub types.Subscription
	if err := transaction.WithContext(ctx).
		Where("id = ?", subscriptionID).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (sr *subscriptionRepo) ActiveExists(ctx context.Context, tx *gorm.DB, userID, fundID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Subscription{}).
		Where("user_id = ? AND fund_id = ? AND status = ?", userID, fundID, types.SubscriptionStatusActive).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (sr *subscriptionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Subscription
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *subscriptionRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Subscription, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Subscription
	if err := transaction.WithContext(ctx).
		Order("created_at").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *subscriptionRepo) CancelActive(ctx context.Context, tx *gorm.DB, subscriptionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Subscription{}).
		Where("id = ? AND status = ?", subscriptionID, types.SubscriptionStatusActive).
		Update("status", types.SubscriptionStatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
