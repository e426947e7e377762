package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/fondos-backend/internal/apierr"
	"github.com/yungbote/fondos-backend/internal/errs"
	"github.com/yungbote/fondos-backend/internal/logger"
	"github.com/yungbote/fondos-backend/internal/repos"
	"github.com/yungbote/fondos-backend/internal/types"
	"github.com/yungbote/fondos-backend/internal/utils"
)

type SubscribeResult struct {
	Detail          string          `json:"detail"`
	SubscriptionID  uuid.UUID       `json:"subscription_id"`
	NewCapitalValue decimal.Decimal `json:"new_capital_value"`
}

type CancelResult struct {
	Detail          string          `json:"detail"`
	NewCapitalValue decimal.Decimal `json:"new_capital_value"`
}

// SubscriptionView is a subscription joined with its owner, fund, and the
// timestamp of its most recent transaction.
type SubscriptionView struct {
	ID                   uuid.UUID   `json:"id"`
	Status               string      `json:"status"`
	NotificationChannel  string      `json:"notification_channel,omitempty"`
	User                 *types.User `json:"user,omitempty"`
	Fund                 *types.Fund `json:"fund,omitempty"`
	TransactionTimestamp string      `json:"transaction_timestamp,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
}

type TransactionView struct {
	types.TransactionRecord
	User *types.User `json:"user,omitempty"`
	Fund *types.Fund `json:"fund,omitempty"`
}

// SubscriptionService is the subscription lifecycle engine. Every mutating
// operation runs its checks and writes inside one store transaction, so a
// failure at any step leaves no partial state behind. Notifications are
// dispatched only after the transaction has committed.
type SubscriptionService interface {
	CreateSubscription(ctx context.Context, userID, fundID uuid.UUID, requestedChannel string) (*SubscribeResult, error)
	CancelSubscription(ctx context.Context, subscriptionID uuid.UUID) (*CancelResult, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*SubscriptionView, error)
	ListAllWithOwners(ctx context.Context) ([]*SubscriptionView, error)
	TransactionsForUser(ctx context.Context, userID uuid.UUID) ([]*TransactionView, error)
}

type subscriptionService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	fundRepo repos.FundRepo
	subRepo  repos.SubscriptionRepo
	txnRepo  repos.TransactionRepo
	notifier SubscriptionNotifier
}

func NewSubscriptionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	fundRepo repos.FundRepo,
	subRepo repos.SubscriptionRepo,
	txnRepo repos.TransactionRepo,
	notifier SubscriptionNotifier,
) SubscriptionService {
	serviceLog := baseLog.With("service", "SubscriptionService")
	return &subscriptionService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		fundRepo: fundRepo,
		subRepo:  subRepo,
		txnRepo:  txnRepo,
		notifier: notifier,
	}
}

func (ss *subscriptionService) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if ss.db == nil {
		return fn(nil)
	}
	return ss.db.WithContext(ctx).Transaction(fn)
}

func errUserNotFoundToSubscribe() error {
	return apierr.New(http.StatusNotFound, "user_not_found", errors.New(types.ErrMsgUserNotFoundToSubscribe))
}

func errFundNotFoundToSubscribe() error {
	return apierr.New(http.StatusNotFound, "fund_not_found", errors.New(types.ErrMsgFundNotFoundToSubscribe))
}

func errAlreadySubscribed() error {
	return apierr.New(http.StatusBadRequest, "already_subscribed", errors.New(types.ErrMsgAlreadySubscribed))
}

func errInsufficientFunds(fundName string) error {
	return apierr.New(http.StatusBadRequest, "insufficient_funds",
		fmt.Errorf("%s %s", types.ErrMsgNoAvailableBalance, fundName))
}

func (ss *subscriptionService) CreateSubscription(ctx context.Context, userID, fundID uuid.UUID, requestedChannel string) (*SubscribeResult, error) {
	channel, err := types.ParseNotificationChannel(requestedChannel)
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "unsupported_channel", err)
	}

	var (
		result *SubscribeResult
		user   *types.User
		fund   *types.Fund
	)
	err = ss.inTx(ctx, func(tx *gorm.DB) error {
		var err error

		user, err = ss.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return errUserNotFoundToSubscribe()
			}
			return err
		}

		fund, err = ss.fundRepo.GetByID(ctx, tx, fundID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return errFundNotFoundToSubscribe()
			}
			return err
		}

		exists, err := ss.subRepo.ActiveExists(ctx, tx, userID, fundID)
		if err != nil {
			return err
		}
		if exists {
			return errAlreadySubscribed()
		}

		if !fund.MinimumInvestmentAmount.Valid {
			return apierr.New(http.StatusBadRequest, "no_minimum_configured", errors.New(types.ErrMsgNoMinimumAmount))
		}
		minimum := fund.MinimumInvestmentAmount.Decimal

		if user.InvestmentCapital.LessThan(minimum) {
			return errInsufficientFunds(fund.Name)
		}

		now := time.Now().UTC()
		sub := &types.Subscription{
			ID:                  uuid.New(),
			UserID:              userID,
			FundID:              fundID,
			Status:              types.SubscriptionStatusActive,
			NotificationChannel: string(channel),
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := ss.subRepo.Create(ctx, tx, sub); err != nil {
			// A concurrent subscribe for the same pair won the insert race.
			if errors.Is(err, errs.ErrAlreadyExists) {
				return errAlreadySubscribed()
			}
			return err
		}

		if err := ss.txnRepo.Append(ctx, tx, &types.TransactionRecord{
			ID:                  uuid.New(),
			SubscriptionID:      sub.ID,
			Action:              types.TransactionActionCreated,
			NotificationChannel: string(channel),
			Timestamp:           now,
		}); err != nil {
			return err
		}

		newBalance, err := ss.userRepo.DebitCapital(ctx, tx, userID, minimum)
		if err != nil {
			// A concurrent debit drained the balance between the check and
			// the conditional write.
			if errors.Is(err, errs.ErrInsufficientCapital) {
				return errInsufficientFunds(fund.Name)
			}
			return err
		}

		result = &SubscribeResult{
			Detail:          types.MsgSubscriptionCreated,
			SubscriptionID:  sub.ID,
			NewCapitalValue: newBalance,
		}
		return nil
	})
	if err != nil {
		ss.log.Warn("CreateSubscription failed", "error", err)
		return nil, storageError(err)
	}

	if ss.notifier != nil {
		ss.notifier.SubscriptionCreated(ctx, user, fund, channel)
	}

	return result, nil
}

func (ss *subscriptionService) CancelSubscription(ctx context.Context, subscriptionID uuid.UUID) (*CancelResult, error) {
	var result *CancelResult
	err := ss.inTx(ctx, func(tx *gorm.DB) error {
		sub, err := ss.subRepo.GetByID(ctx, tx, subscriptionID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return apierr.New(http.StatusNotFound, "subscription_not_found", errors.New(types.ErrMsgSubscriptionNotFound))
			}
			return err
		}
		if sub.Status == types.SubscriptionStatusCancelled {
			return apierr.New(http.StatusBadRequest, "subscription_already_cancelled", errors.New(types.ErrMsgSubscriptionAlreadyCancelled))
		}

		user, err := ss.userRepo.GetByID(ctx, tx, sub.UserID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return errUserNotFoundToSubscribe()
			}
			return err
		}

		fund, err := ss.fundRepo.GetByID(ctx, tx, sub.FundID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return errFundNotFoundToSubscribe()
			}
			return err
		}

		if !fund.MinimumInvestmentAmount.Valid {
			return apierr.New(http.StatusBadRequest, "no_minimum_configured", errors.New(types.ErrMsgNoMinimumAmount))
		}
		// The refund re-reads the fund's current minimum rather than the
		// amount debited at subscribe time. If the minimum changed in
		// between, the refund drifts.
		minimum := fund.MinimumInvestmentAmount.Decimal

		newBalance, err := ss.userRepo.CreditCapital(ctx, tx, user.ID, minimum)
		if err != nil {
			return err
		}

		if err := ss.subRepo.CancelActive(ctx, tx, sub.ID); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return apierr.New(http.StatusBadRequest, "subscription_already_cancelled", errors.New(types.ErrMsgSubscriptionAlreadyCancelled))
			}
			return err
		}

		channel := sub.NotificationChannel
		if channel == "" {
			channel = types.NoChannel
		}
		if err := ss.txnRepo.Append(ctx, tx, &types.TransactionRecord{
			ID:                  uuid.New(),
			SubscriptionID:      sub.ID,
			Action:              types.TransactionActionCancelled,
			NotificationChannel: channel,
			Timestamp:           time.Now().UTC(),
		}); err != nil {
			return err
		}

		result = &CancelResult{
			Detail:          types.MsgSubscriptionCancelled,
			NewCapitalValue: newBalance,
		}
		return nil
	})
	if err != nil {
		ss.log.Warn("CancelSubscription failed", "error", err)
		return nil, storageError(err)
	}
	return result, nil
}

func (ss *subscriptionService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*SubscriptionView, error) {
	subs, err := ss.subRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		ss.log.Warn("ListByUser failed", "error", err)
		return nil, storageError(err)
	}
	views, err := ss.buildViews(ctx, subs)
	if err != nil {
		ss.log.Warn("ListByUser join failed", "error", err)
		return nil, storageError(err)
	}
	return views, nil
}

func (ss *subscriptionService) ListAllWithOwners(ctx context.Context) ([]*SubscriptionView, error) {
	subs, err := ss.subRepo.ListAll(ctx, nil)
	if err != nil {
		ss.log.Warn("ListAllWithOwners failed", "error", err)
		return nil, storageError(err)
	}
	views, err := ss.buildViews(ctx, subs)
	if err != nil {
		ss.log.Warn("ListAllWithOwners join failed", "error", err)
		return nil, storageError(err)
	}
	return views, nil
}

func (ss *subscriptionService) buildViews(ctx context.Context, subs []*types.Subscription) ([]*SubscriptionView, error) {
	views := make([]*SubscriptionView, 0, len(subs))
	for _, sub := range subs {
		view := &SubscriptionView{
			ID:                  sub.ID,
			Status:              sub.Status,
			NotificationChannel: sub.NotificationChannel,
			CreatedAt:           sub.CreatedAt,
		}

		user, err := ss.userRepo.GetByID(ctx, nil, sub.UserID)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		view.User = user

		fund, err := ss.fundRepo.GetByID(ctx, nil, sub.FundID)
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		view.Fund = fund

		latest, err := ss.txnRepo.LatestForSubscription(ctx, nil, sub.ID)
		if err != nil {
			return nil, err
		}
		if latest != nil {
			view.TransactionTimestamp = utils.FormatTimestamp(latest.Timestamp)
		}

		views = append(views, view)
	}
	return views, nil
}

func (ss *subscriptionService) TransactionsForUser(ctx context.Context, userID uuid.UUID) ([]*TransactionView, error) {
	if _, err := ss.userRepo.GetByID(ctx, nil, userID); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, "user_not_found", errors.New(types.ErrMsgUserNotFound))
		}
		ss.log.Warn("TransactionsForUser failed", "error", err)
		return nil, storageError(err)
	}

	subs, err := ss.subRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		ss.log.Warn("TransactionsForUser failed", "error", err)
		return nil, storageError(err)
	}

	subByID := make(map[uuid.UUID]*types.Subscription, len(subs))
	subIDs := make([]uuid.UUID, 0, len(subs))
	for _, sub := range subs {
		subByID[sub.ID] = sub
		subIDs = append(subIDs, sub.ID)
	}

	records, err := ss.txnRepo.ListBySubscriptionIDs(ctx, nil, subIDs)
	if err != nil {
		ss.log.Warn("TransactionsForUser failed", "error", err)
		return nil, storageError(err)
	}

	views := make([]*TransactionView, 0, len(records))
	for _, record := range records {
		view := &TransactionView{TransactionRecord: *record}

		if sub, ok := subByID[record.SubscriptionID]; ok {
			user, err := ss.userRepo.GetByID(ctx, nil, sub.UserID)
			if err != nil && !errors.Is(err, errs.ErrNotFound) {
				return nil, storageError(err)
			}
			view.User = user

			fund, err := ss.fundRepo.GetByID(ctx, nil, sub.FundID)
			if err != nil && !errors.Is(err, errs.ErrNotFound) {
				return nil, storageError(err)
			}
			view.Fund = fund
		}

		views = append(views, view)
	}
	return views, nil
}
