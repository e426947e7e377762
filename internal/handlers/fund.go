package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yungbote/fondos-backend/internal/services"
	"github.com/yungbote/fondos-backend/internal/types"
)

type FundHandler struct {
	fundService services.FundService
}

func NewFundHandler(fundService services.FundService) *FundHandler {
	return &FundHandler{fundService: fundService}
}

type createFundRequest struct {
	Name                    string              `json:"name" binding:"required"`
	Category                string              `json:"category"`
	MinimumInvestmentAmount decimal.NullDecimal `json:"minimum_investment_amount"`
	Status                  string              `json:"status"`
}

func (fh *FundHandler) CreateFund(c *gin.Context) {
	var req createFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	fund, err := fh.fundService.CreateFund(c.Request.Context(), services.CreateFundInput{
		Name:                    req.Name,
		Category:                req.Category,
		MinimumInvestmentAmount: req.MinimumInvestmentAmount,
		Status:                  req.Status,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"detail": types.MsgFundCreated, "fund": fund})
}

func (fh *FundHandler) GetFund(c *gin.Context) {
	// Malformed ids behave like missing funds so path probing cannot tell
	// the two apart.
	fundID, err := uuid.Parse(c.Param("fund_id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "fund_not_found", errors.New(types.ErrMsgFundNotFound))
		return
	}
	fund, err := fh.fundService.GetFund(c.Request.Context(), fundID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, fund)
}

func (fh *FundHandler) ListFunds(c *gin.Context) {
	funds, err := fh.fundService.ListFunds(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, funds)
}
