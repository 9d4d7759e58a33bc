// Package pricefeed fetches spot prices from the external market-data
// providers: a metals API for bullion and a gems API for stones. Both
// return USD per gram through the same PriceFeed port.
package pricefeed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

// caratsPerGram converts gem prices quoted per carat to per gram.
const caratsPerGram = 5.0

// metalSymbols maps bullion asset types to provider ticker symbols.
var metalSymbols = map[domain.AssetType]string{
	domain.AssetTypeGold:      "XAU",
	domain.AssetTypeSilver:    "XAG",
	domain.AssetTypePlatinum:  "XPT",
	domain.AssetTypePalladium: "XPD",
}

// gemTypes lists the asset types served by the gems API.
var gemTypes = map[domain.AssetType]bool{
	domain.AssetTypeDiamond:  true,
	domain.AssetTypeRuby:     true,
	domain.AssetTypeEmerald:  true,
	domain.AssetTypeSapphire: true,
}

// Client implements the PriceFeed port over the two provider APIs.
type Client struct {
	baseURL   string
	metalsKey string
	gemsKey   string
	httpc     *http.Client
	log       zerolog.Logger
}

// New creates a feed client. Both provider keys are required; callers
// with no keys configured should not construct a client and instead
// run with the feed disabled.
func New(baseURL, metalsKey, gemsKey string, log zerolog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		metalsKey: metalsKey,
		gemsKey:   gemsKey,
		httpc:     &http.Client{Timeout: 10 * time.Second},
		log:       log.With().Str("component", "pricefeed").Logger(),
	}
}

// Spot returns the current USD-per-gram price for an asset type.
func (c *Client) Spot(ctx context.Context, assetType domain.AssetType) (float64, error) {
	if symbol, ok := metalSymbols[assetType]; ok {
		return c.metalSpot(ctx, symbol)
	}
	if gemTypes[assetType] {
		return c.gemSpot(ctx, string(assetType))
	}
	return 0, fmt.Errorf("no feed source for asset type %q", assetType)
}

// metalSpot queries the metals provider. Response shape:
// {"data":{"symbol":"XAU","price_per_gram":65.43,"currency":"USD"}}
func (c *Client) metalSpot(ctx context.Context, symbol string) (float64, error) {
	url := fmt.Sprintf("%s/metals/spot/%s", c.baseURL, symbol)
	body, err := c.get(ctx, url, c.metalsKey)
	if err != nil {
		return 0, err
	}

	price := gjson.GetBytes(body, "data.price_per_gram")
	if !price.Exists() || price.Float() <= 0 {
		return 0, fmt.Errorf("metals feed returned no price for %s", symbol)
	}
	return price.Float(), nil
}

// gemSpot queries the gems provider, which quotes per carat. Response
// shape: {"data":{"type":"diamond","price_per_carat":27500,"currency":"USD"}}
func (c *Client) gemSpot(ctx context.Context, gemType string) (float64, error) {
	url := fmt.Sprintf("%s/gems/spot/%s", c.baseURL, gemType)
	body, err := c.get(ctx, url, c.gemsKey)
	if err != nil {
		return 0, err
	}

	price := gjson.GetBytes(body, "data.price_per_carat")
	if !price.Exists() || price.Float() <= 0 {
		return 0, fmt.Errorf("gems feed returned no price for %s", gemType)
	}
	return price.Float() * caratsPerGram, nil
}

func (c *Client) get(ctx context.Context, url, apiKey string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building feed request: %w", err)
	}
	req.Header.Set("X-API-Key", apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching spot price: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading feed response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("feed request failed")
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	return body, nil
}
