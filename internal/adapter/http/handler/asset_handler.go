package handler

import (
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/adapter/http/dto"
	"github.com/VWA-XRPL/VWA-XRPL/internal/adapter/http/middleware"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/ports"
	"github.com/VWA-XRPL/VWA-XRPL/pkg/apperror"
	"github.com/VWA-XRPL/VWA-XRPL/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const timeFormat = time.RFC3339

// AssetHandler handles tokenized-asset endpoints.
type AssetHandler struct {
	assetSvc ports.AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetSvc ports.AssetService) *AssetHandler {
	return &AssetHandler{assetSvc: assetSvc}
}

// Create handles POST /api/v1/assets.
func (h *AssetHandler) Create(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	asset, err := h.assetSvc.Create(c.Request.Context(), ports.CreateAssetRequest{
		OwnerID:       actorID,
		AssetType:     domain.AssetType(req.AssetType),
		Weight:        req.Weight,
		Purity:        req.Purity,
		Certification: req.Certification,
		CurrentPrice:  req.CurrentPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAssetResponse(asset))
}

// GetByID handles GET /api/v1/assets/:id.
func (h *AssetHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid asset id"))
		return
	}

	asset, err := h.assetSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAssetResponse(asset))
}

// List handles GET /api/v1/assets.
func (h *AssetHandler) List(c *gin.Context) {
	skip, limit := pagination(c)
	params := ports.AssetListParams{Skip: skip, Limit: limit}

	if t := c.Query("asset_type"); t != "" {
		assetType := domain.AssetType(t)
		if !assetType.IsValid() {
			response.Error(c, apperror.Validation("invalid asset type"))
			return
		}
		params.AssetType = &assetType
	}
	if o := c.Query("owner_id"); o != "" {
		ownerID, err := uuid.Parse(o)
		if err != nil {
			response.Error(c, apperror.Validation("invalid owner id"))
			return
		}
		params.OwnerID = &ownerID
	}
	if a := c.Query("is_active"); a != "" {
		active := a == "true"
		params.IsActive = &active
	}

	assets, err := h.assetSvc.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.AssetResponse, 0, len(assets))
	for i := range assets {
		items = append(items, toAssetResponse(&assets[i]))
	}
	response.OK(c, items)
}

// Update handles PUT /api/v1/assets/:id.
func (h *AssetHandler) Update(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid asset id"))
		return
	}

	var req dto.UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	asset, err := h.assetSvc.Update(c.Request.Context(), actorID, id, ports.UpdateAssetRequest{
		Weight:        req.Weight,
		Purity:        req.Purity,
		Certification: req.Certification,
		CurrentPrice:  req.CurrentPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toAssetResponse(asset))
}

// Delete handles DELETE /api/v1/assets/:id (soft delete).
func (h *AssetHandler) Delete(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid asset id"))
		return
	}

	if err := h.assetSvc.Delete(c.Request.Context(), actorID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"deleted": true})
}

// MarketSummary handles GET /api/v1/assets/market/summary.
func (h *AssetHandler) MarketSummary(c *gin.Context) {
	summary, err := h.assetSvc.MarketSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.MarketSummaryResponse{
		TotalAssets:  summary.TotalAssets,
		TotalValue:   summary.TotalValue,
		ActiveOrders: summary.ActiveOrders,
		PriceUpdates: summary.PriceUpdates,
		LastUpdated:  summary.LastUpdated.Format(timeFormat),
	})
}

// currentUser pulls the authenticated user ID set by the JWT middleware.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.CtxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func toAssetResponse(a *domain.Asset) dto.AssetResponse {
	resp := dto.AssetResponse{
		ID:            a.ID.String(),
		OwnerID:       a.OwnerID.String(),
		AssetType:     string(a.AssetType),
		Weight:        a.Weight,
		Purity:        a.Purity,
		Certification: a.Certification,
		CurrentPrice:  a.CurrentPrice,
		TotalValue:    a.Value(),
		CreatedAt:     a.CreatedAt.Format(timeFormat),
		IsActive:      a.IsActive,
		MintAddress:   a.MintAddress,
		TokenAccount:  a.TokenAccount,
	}
	if a.LastPriceUpdate != nil {
		s := a.LastPriceUpdate.Format(timeFormat)
		resp.LastPriceUpdate = &s
	}
	return resp
}
