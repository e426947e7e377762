package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/yungbote/fondos-backend/internal/errs"
	"github.com/yungbote/fondos-backend/internal/types"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*types.User

	createErr error
	listErr   error
}

func newFakeUserRepo(users ...*types.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[uuid.UUID]*types.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*types.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) DebitCapital(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return decimal.Zero, errs.ErrNotFound
	}
	if user.InvestmentCapital.LessThan(amount) {
		return decimal.Zero, errs.ErrInsufficientCapital
	}
	user.InvestmentCapital = user.InvestmentCapital.Sub(amount)
	return user.InvestmentCapital, nil
}

func (f *fakeUserRepo) CreditCapital(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return decimal.Zero, errs.ErrNotFound
	}
	user.InvestmentCapital = user.InvestmentCapital.Add(amount)
	return user.InvestmentCapital, nil
}

type fakeFundRepo struct {
	mu    sync.Mutex
	funds map[uuid.UUID]*types.Fund

	createErr error
	listErr   error
}

func newFakeFundRepo(funds ...*types.Fund) *fakeFundRepo {
	repo := &fakeFundRepo{funds: map[uuid.UUID]*types.Fund{}}
	for _, fund := range funds {
		repo.funds[fund.ID] = fund
	}
	return repo
}

func (f *fakeFundRepo) Create(ctx context.Context, tx *gorm.DB, fund *types.Fund) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.funds[fund.ID] = fund
	return nil
}

func (f *fakeFundRepo) GetByID(ctx context.Context, tx *gorm.DB, fundID uuid.UUID) (*types.Fund, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fund, ok := f.funds[fundID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return fund, nil
}

func (f *fakeFundRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Fund, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*types.Fund, 0, len(f.funds))
	for _, fund := range f.funds {
		out = append(out, fund)
	}
	return out, nil
}

type fakeSubscriptionRepo struct {
	mu   sync.Mutex
	subs []*types.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{}
}

func (f *fakeSubscriptionRepo) Create(ctx context.Context, tx *gorm.DB, sub *types.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.subs {
		if existing.UserID == sub.UserID && existing.FundID == sub.FundID &&
			existing.Status == types.SubscriptionStatusActive {
			return errs.ErrAlreadyExists
		}
	}
	f.subs = append(f.subs, sub)
	return nil
}

func (f *fakeSubscriptionRepo) GetByID(ctx context.Context, tx *gorm.DB, subscriptionID uuid.UUID) (*types.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs {
		if sub.ID == subscriptionID {
			return sub, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeSubscriptionRepo) ActiveExists(ctx context.Context, tx *gorm.DB, userID, fundID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs {
		if sub.UserID == userID && sub.FundID == fundID && sub.Status == types.SubscriptionStatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSubscriptionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*types.Subscription{}
	for _, sub := range f.subs {
		if sub.UserID == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (f *fakeSubscriptionRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*types.Subscription, len(f.subs))
	copy(out, f.subs)
	return out, nil
}

func (f *fakeSubscriptionRepo) CancelActive(ctx context.Context, tx *gorm.DB, subscriptionID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, sub := range f.subs {
		if sub.ID == subscriptionID && sub.Status == types.SubscriptionStatusActive {
			sub.Status = types.SubscriptionStatusCancelled
			return nil
		}
	}
	return errs.ErrNotFound
}

type fakeTransactionRepo struct {
	mu      sync.Mutex
	records []*types.TransactionRecord
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{}
}

func (f *fakeTransactionRepo) Append(ctx context.Context, tx *gorm.DB, record *types.TransactionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	return nil
}

func (f *fakeTransactionRepo) LatestForSubscription(ctx context.Context, tx *gorm.DB, subscriptionID uuid.UUID) (*types.TransactionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *types.TransactionRecord
	for _, record := range f.records {
		if record.SubscriptionID != subscriptionID {
			continue
		}
		if latest == nil || record.Timestamp.After(latest.Timestamp) {
			latest = record
		}
	}
	return latest, nil
}

func (f *fakeTransactionRepo) ListBySubscriptionIDs(ctx context.Context, tx *gorm.DB, subscriptionIDs []uuid.UUID) ([]*types.TransactionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := map[uuid.UUID]bool{}
	for _, id := range subscriptionIDs {
		wanted[id] = true
	}
	out := []*types.TransactionRecord{}
	for _, record := range f.records {
		if wanted[record.SubscriptionID] {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) forSubscription(subscriptionID uuid.UUID) []*types.TransactionRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*types.TransactionRecord{}
	for _, record := range f.records {
		if record.SubscriptionID == subscriptionID {
			out = append(out, record)
		}
	}
	return out
}

type notifierCall struct {
	user    *types.User
	fund    *types.Fund
	channel types.NotificationChannel
}

type fakeNotifier struct {
	mu        sync.Mutex
	calls     []notifierCall
	delivered []types.NotificationMessage
}

func (f *fakeNotifier) SubscriptionCreated(ctx context.Context, user *types.User, fund *types.Fund, channel types.NotificationChannel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notifierCall{user: user, fund: fund, channel: channel})
}

func (f *fakeNotifier) Deliver(ctx context.Context, msg types.NotificationMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delivered = append(f.delivered, msg)
}

func (f *fakeNotifier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
