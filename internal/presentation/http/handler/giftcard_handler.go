package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/nashon/pos-ledger-api/internal/application/service"
	"github.com/nashon/pos-ledger-api/internal/domain/entity"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/dto/request"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/dto/response"
	"github.com/nashon/pos-ledger-api/internal/presentation/http/middleware"
	"github.com/nashon/pos-ledger-api/pkg/pagination"
)

// GiftCardHandler handles gift card HTTP requests
type GiftCardHandler struct {
	giftCards *service.GiftCardService
}

// NewGiftCardHandler creates a new gift card handler
func NewGiftCardHandler(giftCards *service.GiftCardService) *GiftCardHandler {
	return &GiftCardHandler{giftCards: giftCards}
}

// List handles listing the cached gift card collection
func (h *GiftCardHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result := pagination.Paginate(h.giftCards.List(), &params)
	response.SuccessWithPagination(c, 200, "Gift cards retrieved successfully", result)
}

// Get handles retrieving a single cached gift card
func (h *GiftCardHandler) Get(c *gin.Context) {
	card, err := h.giftCards.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Gift card retrieved successfully", card)
}

// Refresh handles an explicit refetch from the backend
func (h *GiftCardHandler) Refresh(c *gin.Context) {
	if err := h.giftCards.Refresh(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Gift cards refreshed successfully", h.giftCards.List())
}

// Issue handles creating a gift card on the backend
func (h *GiftCardHandler) Issue(c *gin.Context) {
	var req request.IssueGiftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	err := h.giftCards.Issue(c.Request.Context(), service.IssueGiftCardInput{
		CardNumber:     req.CardNumber,
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		RecipientPhone: req.RecipientPhone,
		Issuer:         req.Issuer,
		PartnerName:    req.PartnerName,
		Amount:         req.Amount,
		ExpiryDate:     req.ExpiryDate,
	})
	middleware.RecordCardOperation("issue", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Gift card issued successfully", h.giftCards.List())
}

// Update handles patching a card's mutable fields
func (h *GiftCardHandler) Update(c *gin.Context) {
	var req request.UpdateGiftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	err := h.giftCards.Update(c.Request.Context(), c.Param("id"), entity.GiftCardUpdate{
		RecipientName:  req.RecipientName,
		RecipientEmail: req.RecipientEmail,
		RecipientPhone: req.RecipientPhone,
		Issuer:         req.Issuer,
		PartnerName:    req.PartnerName,
		ExpiryDate:     req.ExpiryDate,
	})
	middleware.RecordCardOperation("update", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Gift card updated successfully", h.giftCards.List())
}

// Redeem handles drawing down a card's balance
func (h *GiftCardHandler) Redeem(c *gin.Context) {
	var req request.CardActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	card, err := h.giftCards.Redeem(c.Request.Context(), req.CardNumber, req.Amount)
	middleware.RecordCardOperation("redeem", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Gift card redeemed successfully", card)
}

// Reload handles topping up a card's balance
func (h *GiftCardHandler) Reload(c *gin.Context) {
	var req request.CardActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	card, err := h.giftCards.Reload(c.Request.Context(), req.CardNumber, req.Amount)
	middleware.RecordCardOperation("reload", err == nil)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Gift card reloaded successfully", card)
}
