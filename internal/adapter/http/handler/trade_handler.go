package handler

import (
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/adapter/http/dto"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/ports"
	"github.com/VWA-XRPL/VWA-XRPL/pkg/apperror"
	"github.com/VWA-XRPL/VWA-XRPL/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TradeHandler handles trade-order endpoints.
type TradeHandler struct {
	tradeSvc ports.TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeSvc ports.TradeService) *TradeHandler {
	return &TradeHandler{tradeSvc: tradeSvc}
}

// Create handles POST /api/v1/trades/orders.
func (h *TradeHandler) Create(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid asset id"))
		return
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		e := time.Unix(*req.ExpiresAt, 0).UTC()
		expiresAt = &e
	}

	order, err := h.tradeSvc.Create(c.Request.Context(), ports.CreateOrderRequest{
		OwnerID:      actorID,
		AssetID:      assetID,
		OrderType:    domain.OrderType(req.OrderType),
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
		ExpiresAt:    expiresAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toOrderResponse(order))
}

// GetByID handles GET /api/v1/trades/orders/:id.
func (h *TradeHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid order id"))
		return
	}

	order, err := h.tradeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toOrderResponse(order))
}

// List handles GET /api/v1/trades/orders.
func (h *TradeHandler) List(c *gin.Context) {
	skip, limit := pagination(c)
	params := ports.OrderListParams{Skip: skip, Limit: limit}

	if a := c.Query("asset_id"); a != "" {
		assetID, err := uuid.Parse(a)
		if err != nil {
			response.Error(c, apperror.Validation("invalid asset id"))
			return
		}
		params.AssetID = &assetID
	}
	if t := c.Query("order_type"); t != "" {
		orderType := domain.OrderType(t)
		if !orderType.IsValid() {
			response.Error(c, apperror.Validation("invalid order type"))
			return
		}
		params.OrderType = &orderType
	}
	if s := c.Query("status"); s != "" {
		status := domain.OrderStatus(s)
		params.Status = &status
	}
	if o := c.Query("owner_id"); o != "" {
		ownerID, err := uuid.Parse(o)
		if err != nil {
			response.Error(c, apperror.Validation("invalid owner id"))
			return
		}
		params.OwnerID = &ownerID
	}

	orders, err := h.tradeSvc.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderResponse(&orders[i]))
	}
	response.OK(c, items)
}

// Update handles PUT /api/v1/trades/orders/:id.
func (h *TradeHandler) Update(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid order id"))
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	order, err := h.tradeSvc.Update(c.Request.Context(), actorID, id, ports.UpdateOrderRequest{
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toOrderResponse(order))
}

// Cancel handles DELETE /api/v1/trades/orders/:id.
func (h *TradeHandler) Cancel(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid order id"))
		return
	}

	if err := h.tradeSvc.Cancel(c.Request.Context(), actorID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"cancelled": true})
}

// Execute handles POST /api/v1/trades/orders/:id/execute.
func (h *TradeHandler) Execute(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid order id"))
		return
	}

	if err := h.tradeSvc.Execute(c.Request.Context(), actorID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"executed": true})
}

func toOrderResponse(o *domain.TradeOrder) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:           o.ID.String(),
		AssetID:      o.AssetID.String(),
		OwnerID:      o.OwnerID.String(),
		OrderType:    string(o.OrderType),
		Quantity:     o.Quantity,
		PricePerUnit: o.PricePerUnit,
		TotalValue:   o.Quantity * o.PricePerUnit,
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt.Format(timeFormat),
	}
	if o.UpdatedAt != nil {
		s := o.UpdatedAt.Format(timeFormat)
		resp.UpdatedAt = &s
	}
	if o.ExpiresAt != nil {
		s := o.ExpiresAt.Format(timeFormat)
		resp.ExpiresAt = &s
	}
	return resp
}
