package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/fondos-backend/internal/services"
	"github.com/yungbote/fondos-backend/internal/types"
)

type stubSubscriptionService struct {
	createCalls int
	cancelCalls int
	lastUserID  uuid.UUID
	lastFundID  uuid.UUID
}

func (s *stubSubscriptionService) CreateSubscription(ctx context.Context, userID, fundID uuid.UUID, requestedChannel string) (*services.SubscribeResult, error) {
	s.createCalls++
	s.lastUserID = userID
	s.lastFundID = fundID
	return &services.SubscribeResult{Detail: types.MsgSubscriptionCreated, SubscriptionID: uuid.New()}, nil
}

func (s *stubSubscriptionService) CancelSubscription(ctx context.Context, subscriptionID uuid.UUID) (*services.CancelResult, error) {
	s.cancelCalls++
	return &services.CancelResult{Detail: types.MsgSubscriptionCancelled}, nil
}

func (s *stubSubscriptionService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*services.SubscriptionView, error) {
	return []*services.SubscriptionView{}, nil
}

func (s *stubSubscriptionService) ListAllWithOwners(ctx context.Context) ([]*services.SubscriptionView, error) {
	return []*services.SubscriptionView{}, nil
}

func (s *stubSubscriptionService) TransactionsForUser(ctx context.Context, userID uuid.UUID) ([]*services.TransactionView, error) {
	return []*services.TransactionView{}, nil
}

func subscriptionRouter(stub *stubSubscriptionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewSubscriptionHandler(stub)
	router.POST("/subscriptions/", h.CreateSubscription)
	router.POST("/subscriptions/cancel/:subscription_id", h.CancelSubscription)
	return router
}

func TestCreateSubscriptionParsesIDs(t *testing.T) {
	stub := &stubSubscriptionService{}
	router := subscriptionRouter(stub)

	userID := uuid.New()
	fundID := uuid.New()
	body := `{"user_id":"` + userID.String() + `","fund_id":"` + fundID.String() + `","notification_channel":"email"}`
	req := httptest.NewRequest(http.MethodPost, "/subscriptions/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: want=201 got=%d body=%s", rec.Code, rec.Body.String())
	}
	if stub.createCalls != 1 {
		t.Fatalf("create calls: want=1 got=%d", stub.createCalls)
	}
	if stub.lastUserID != userID || stub.lastFundID != fundID {
		t.Fatalf("ids not forwarded: user=%s fund=%s", stub.lastUserID, stub.lastFundID)
	}
}

func TestCreateSubscriptionMalformedUserIDReadsAsMissing(t *testing.T) {
	stub := &stubSubscriptionService{}
	router := subscriptionRouter(stub)

	body := `{"user_id":"not-a-uuid","fund_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/subscriptions/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: want=404 got=%d", rec.Code)
	}
	if stub.createCalls != 0 {
		t.Fatalf("create calls: want=0 got=%d", stub.createCalls)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if envelope.Error.Message != types.ErrMsgUserNotFoundToSubscribe {
		t.Fatalf("message: want=%q got=%q", types.ErrMsgUserNotFoundToSubscribe, envelope.Error.Message)
	}
}

func TestCancelSubscriptionMalformedIDReadsAsMissing(t *testing.T) {
	stub := &stubSubscriptionService{}
	router := subscriptionRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/subscriptions/cancel/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: want=404 got=%d", rec.Code)
	}
	if stub.cancelCalls != 0 {
		t.Fatalf("cancel calls: want=0 got=%d", stub.cancelCalls)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if envelope.Error.Message != types.ErrMsgSubscriptionNotFound {
		t.Fatalf("message: want=%q got=%q", types.ErrMsgSubscriptionNotFound, envelope.Error.Message)
	}
}

func TestCancelSubscriptionValidID(t *testing.T) {
	stub := &stubSubscriptionService{}
	router := subscriptionRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/subscriptions/cancel/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: want=200 got=%d body=%s", rec.Code, rec.Body.String())
	}
	if stub.cancelCalls != 1 {
		t.Fatalf("cancel calls: want=1 got=%d", stub.cancelCalls)
	}
}
