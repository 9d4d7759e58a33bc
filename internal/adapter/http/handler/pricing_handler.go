package handler

import (
	"strconv"

	"github.com/VWA-XRPL/VWA-XRPL/internal/adapter/http/dto"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/ports"
	"github.com/VWA-XRPL/VWA-XRPL/pkg/apperror"
	"github.com/VWA-XRPL/VWA-XRPL/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PricingHandler handles market data and price-history endpoints.
type PricingHandler struct {
	pricingSvc ports.PricingService
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(pricingSvc ports.PricingService) *PricingHandler {
	return &PricingHandler{pricingSvc: pricingSvc}
}

// MarketPrices handles GET /api/v1/pricing/market.
func (h *PricingHandler) MarketPrices(c *gin.Context) {
	prices, err := h.pricingSvc.MarketPrices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.MarketPriceResponse, 0, len(prices))
	for i := range prices {
		items = append(items, toMarketPriceResponse(&prices[i]))
	}
	response.OK(c, items)
}

// MarketPrice handles GET /api/v1/pricing/market/:asset_type.
func (h *PricingHandler) MarketPrice(c *gin.Context) {
	assetType := domain.AssetType(c.Param("asset_type"))
	if !assetType.IsValid() {
		response.Error(c, apperror.ErrUnknownAssetType())
		return
	}

	price, err := h.pricingSvc.MarketPrice(c.Request.Context(), assetType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toMarketPriceResponse(price))
}

// CreateHistory handles POST /api/v1/pricing/history.
func (h *PricingHandler) CreateHistory(c *gin.Context) {
	var req dto.CreatePriceHistoryRequest
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

	entry, err := h.pricingSvc.CreateHistory(c.Request.Context(), ports.CreatePriceHistoryRequest{
		AssetID: assetID,
		Price:   req.Price,
		Source:  req.Source,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toPriceHistoryResponse(entry))
}

// History handles GET /api/v1/pricing/history/:asset_id.
func (h *PricingHandler) History(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("asset_id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid asset id"))
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}
	skip, limit := pagination(c)

	entries, err := h.pricingSvc.History(c.Request.Context(), assetID, days, skip, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.PriceHistoryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, toPriceHistoryResponse(&entries[i]))
	}
	response.OK(c, items)
}

// UpdatePrices handles POST /api/v1/pricing/update-prices — bulk refresh
// of every active asset from the market feed.
func (h *PricingHandler) UpdatePrices(c *gin.Context) {
	updated, err := h.pricingSvc.UpdateAllPrices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.UpdatePricesResponse{Updated: updated})
}

// Trends handles GET /api/v1/pricing/trends.
func (h *PricingHandler) Trends(c *gin.Context) {
	var assetType *domain.AssetType
	if t := c.Query("asset_type"); t != "" {
		at := domain.AssetType(t)
		if !at.IsValid() {
			response.Error(c, apperror.Validation("invalid asset type"))
			return
		}
		assetType = &at
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	if days < 1 || days > 365 {
		days = 7
	}

	trend, err := h.pricingSvc.Trends(c.Request.Context(), assetType, days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.PriceTrendResponse{
		Trend:         string(trend.Trend),
		ChangePercent: trend.ChangePercent,
		Volatility:    trend.Volatility,
		DataPoints:    trend.DataPoints,
		FirstPrice:    trend.FirstPrice,
		LastPrice:     trend.LastPrice,
	})
}

func toMarketPriceResponse(p *domain.MarketPrice) dto.MarketPriceResponse {
	return dto.MarketPriceResponse{
		AssetType:   string(p.AssetType),
		Price:       p.Price,
		Change24h:   p.Change24h,
		Volume24h:   p.Volume24h,
		LastUpdated: p.LastUpdated.Format(timeFormat),
	}
}

func toPriceHistoryResponse(e *domain.PriceHistory) dto.PriceHistoryResponse {
	return dto.PriceHistoryResponse{
		ID:        e.ID.String(),
		AssetID:   e.AssetID.String(),
		Price:     e.Price,
		Timestamp: e.Timestamp.Format(timeFormat),
		Source:    e.Source,
	}
}
