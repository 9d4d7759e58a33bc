package service

import (
	"context"
	"hash/fnv"
	"math"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/ports"
	"github.com/VWA-XRPL/VWA-XRPL/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	priceCacheTTL = 5 * time.Minute

	// variationSpread bounds the deterministic per-hour price wiggle, in
	// percent either side of the base price.
	variationSpread = 2.0
)

// basePrices holds reference spot prices in USD per gram, used when no
// external feed is configured or the feed is unavailable.
var basePrices = map[domain.AssetType]float64{
	domain.AssetTypeGold:      65.00,
	domain.AssetTypeSilver:    0.85,
	domain.AssetTypePlatinum:  32.00,
	domain.AssetTypePalladium: 40.00,
	domain.AssetTypeDiamond:   5500.00,
	domain.AssetTypeRuby:      1200.00,
	domain.AssetTypeEmerald:   900.00,
	domain.AssetTypeSapphire:  800.00,
}

type pricingService struct {
	assetRepo   ports.AssetRepository
	historyRepo ports.PriceHistoryRepository
	cache       ports.MarketCache
	feed        ports.PriceFeed // nil when no API keys configured
	transactor  ports.DBTransactor
	log         zerolog.Logger
}

// NewPricingService creates a new market data and price history service.
// feed may be nil; the service then derives prices from the base table.
func NewPricingService(
	assetRepo ports.AssetRepository,
	historyRepo ports.PriceHistoryRepository,
	cache ports.MarketCache,
	feed ports.PriceFeed,
	transactor ports.DBTransactor,
	log zerolog.Logger,
) ports.PricingService {
	return &pricingService{
		assetRepo:   assetRepo,
		historyRepo: historyRepo,
		cache:       cache,
		feed:        feed,
		transactor:  transactor,
		log:         log,
	}
}

func (s *pricingService) MarketPrices(ctx context.Context) ([]domain.MarketPrice, error) {
	prices := make([]domain.MarketPrice, 0, len(domain.AssetTypes()))
	for _, t := range domain.AssetTypes() {
		price, err := s.MarketPrice(ctx, t)
		if err != nil {
			return nil, err
		}
		prices = append(prices, *price)
	}
	return prices, nil
}

func (s *pricingService) MarketPrice(ctx context.Context, assetType domain.AssetType) (*domain.MarketPrice, error) {
	if !assetType.IsValid() {
		return nil, apperror.ErrUnknownAssetType()
	}

	cached, err := s.cache.GetPrice(ctx, assetType)
	if err != nil {
		// Cache trouble degrades to a recompute, the request still succeeds.
		s.log.Warn().Err(err).Str("asset_type", string(assetType)).Msg("market cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	price := s.spot(ctx, assetType)

	if err := s.cache.SetPrice(ctx, price, priceCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("asset_type", string(assetType)).Msg("market cache write failed")
	}
	return price, nil
}

// spot resolves the current spot price, preferring the external feed and
// falling back to the base table with a deterministic hourly variation.
func (s *pricingService) spot(ctx context.Context, assetType domain.AssetType) *domain.MarketPrice {
	now := time.Now().UTC()

	if s.feed != nil {
		if p, err := s.feed.Spot(ctx, assetType); err == nil {
			return &domain.MarketPrice{
				AssetType:   assetType,
				Price:       round2(p),
				Change24h:   0,
				Volume24h:   simulatedVolume(assetType, now),
				LastUpdated: now,
			}
		} else {
			s.log.Warn().Err(err).Str("asset_type", string(assetType)).Msg("price feed unavailable, using base price")
		}
	}

	base := basePrices[assetType]
	variation := hourlyVariation(assetType, now)

	return &domain.MarketPrice{
		AssetType:   assetType,
		Price:       round2(base * (1 + variation/100)),
		Change24h:   round2(variation),
		Volume24h:   simulatedVolume(assetType, now),
		LastUpdated: now,
	}
}

func (s *pricingService) CreateHistory(ctx context.Context, req ports.CreatePriceHistoryRequest) (*domain.PriceHistory, error) {
	asset, err := s.assetRepo.GetByID(ctx, req.AssetID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if asset == nil {
		return nil, apperror.ErrNotFound("asset")
	}
	if !asset.IsActive {
		return nil, apperror.ErrAssetInactive()
	}

	now := time.Now().UTC()
	source := req.Source
	if source == nil {
		manual := "manual"
		source = &manual
	}

	entry := &domain.PriceHistory{
		ID:        uuid.New(),
		AssetID:   req.AssetID,
		Price:     round2(req.Price),
		Timestamp: now,
		Source:    source,
	}

	// The history row and the asset price bump commit together.
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	defer tx.Rollback(ctx)

	if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if err := s.assetRepo.UpdatePrice(ctx, tx, req.AssetID, entry.Price, now); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	return entry, nil
}

func (s *pricingService) History(ctx context.Context, assetID uuid.UUID, days, skip, limit int) ([]domain.PriceHistory, error) {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if asset == nil {
		return nil, apperror.ErrNotFound("asset")
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)

	entries, err := s.historyRepo.ListByAsset(ctx, assetID, from, to, skip, limit)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	return entries, nil
}

// UpdateAllPrices refreshes every active asset from the current spot price,
// scaled by purity, recording one history entry per asset.
func (s *pricingService) UpdateAllPrices(ctx context.Context) (int64, error) {
	active := true
	assets, err := s.assetRepo.List(ctx, ports.AssetListParams{
		IsActive: &active,
		Limit:    10000,
	})
	if err != nil {
		return 0, apperror.ErrDatabaseError(err)
	}

	source := "api_update"
	var updated int64
	for i := range assets {
		asset := &assets[i]

		spot := s.spot(ctx, asset.AssetType)
		newPrice := round2(spot.Price * asset.Purity / 100)
		now := time.Now().UTC()

		tx, err := s.transactor.Begin(ctx)
		if err != nil {
			return updated, apperror.ErrDatabaseError(err)
		}

		entry := &domain.PriceHistory{
			ID:        uuid.New(),
			AssetID:   asset.ID,
			Price:     newPrice,
			Timestamp: now,
			Source:    &source,
		}

		if err := s.historyRepo.Create(ctx, tx, entry); err != nil {
			tx.Rollback(ctx)
			return updated, apperror.ErrDatabaseError(err)
		}
		if err := s.assetRepo.UpdatePrice(ctx, tx, asset.ID, newPrice, now); err != nil {
			tx.Rollback(ctx)
			return updated, apperror.ErrDatabaseError(err)
		}
		if err := tx.Commit(ctx); err != nil {
			return updated, apperror.ErrDatabaseError(err)
		}
		updated++
	}

	s.log.Info().Int64("updated", updated).Msg("bulk price update complete")
	return updated, nil
}

func (s *pricingService) Trends(ctx context.Context, assetType *domain.AssetType, days int) (*domain.PriceTrend, error) {
	if assetType != nil && !assetType.IsValid() {
		return nil, apperror.ErrUnknownAssetType()
	}

	to := time.Now().UTC()
	from := to.AddDate(0, 0, -days)

	entries, err := s.historyRepo.ListByWindow(ctx, assetType, from, to)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	if len(entries) < 2 {
		return &domain.PriceTrend{
			Trend:      domain.TrendStable,
			DataPoints: len(entries),
		}, nil
	}

	first := entries[0].Price
	last := entries[len(entries)-1].Price

	changePercent := 0.0
	if first != 0 {
		changePercent = (last - first) / first * 100
	}

	trend := domain.TrendStable
	switch {
	case changePercent > 1:
		trend = domain.TrendUp
	case changePercent < -1:
		trend = domain.TrendDown
	}

	return &domain.PriceTrend{
		Trend:         trend,
		ChangePercent: round2(changePercent),
		Volatility:    round2(volatility(entries)),
		DataPoints:    len(entries),
		FirstPrice:    first,
		LastPrice:     last,
	}, nil
}

// volatility is the coefficient of variation (stddev/mean) in percent.
func volatility(entries []domain.PriceHistory) float64 {
	var sum float64
	for _, e := range entries {
		sum += e.Price
	}
	mean := sum / float64(len(entries))
	if mean == 0 {
		return 0
	}

	var sq float64
	for _, e := range entries {
		d := e.Price - mean
		sq += d * d
	}
	stddev := math.Sqrt(sq / float64(len(entries)))

	return stddev / mean * 100
}

// hourlyVariation returns a deterministic pseudo-variation in
// [-variationSpread, +variationSpread] percent, stable within the hour so
// repeated reads inside one cache window agree.
func hourlyVariation(assetType domain.AssetType, now time.Time) float64 {
	h := fnv.New32a()
	h.Write([]byte(assetType))
	h.Write([]byte(now.Format("2006010215")))
	n := float64(h.Sum32()%1000)/1000*2 - 1 // [-1, 1)
	return n * variationSpread
}

func simulatedVolume(assetType domain.AssetType, now time.Time) float64 {
	h := fnv.New32a()
	h.Write([]byte("vol:"))
	h.Write([]byte(assetType))
	h.Write([]byte(now.Format("20060102")))
	return float64(1000 + h.Sum32()%50000)
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
