package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/fondos-backend/internal/services"
	"github.com/yungbote/fondos-backend/internal/types"
)

type SubscriptionHandler struct {
	subService services.SubscriptionService
}

func NewSubscriptionHandler(subService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subService: subService}
}

type createSubscriptionRequest struct {
	UserID              string `json:"user_id" binding:"required"`
	FundID              string `json:"fund_id" binding:"required"`
	NotificationChannel string `json:"notification_channel"`
}

func (sh *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "user_not_found", errors.New(types.ErrMsgUserNotFoundToSubscribe))
		return
	}
	fundID, err := uuid.Parse(req.FundID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "fund_not_found", errors.New(types.ErrMsgFundNotFoundToSubscribe))
		return
	}
	result, err := sh.subService.CreateSubscription(c.Request.Context(), userID, fundID, req.NotificationChannel)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, result)
}

func (sh *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	subscriptionID, err := uuid.Parse(c.Param("subscription_id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "subscription_not_found", errors.New(types.ErrMsgSubscriptionNotFound))
		return
	}
	result, err := sh.subService.CancelSubscription(c.Request.Context(), subscriptionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, result)
}

func (sh *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	views, err := sh.subService.ListAllWithOwners(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, views)
}

func (sh *SubscriptionHandler) ListUserSubscriptions(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "user_not_found", errors.New(types.ErrMsgUserNotFound))
		return
	}
	views, err := sh.subService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, views)
}

func (sh *SubscriptionHandler) ListUserTransactions(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "user_not_found", errors.New(types.ErrMsgUserNotFound))
		return
	}
	views, err := sh.subService.TransactionsForUser(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, views)
}
