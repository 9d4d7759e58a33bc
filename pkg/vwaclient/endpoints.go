package vwaclient

import "strings"

// Endpoint is a registry entry: an HTTP method plus a URL template.
// Templates use `{name}` placeholders filled by Render.
type Endpoint struct {
	Method string
	Path   string
}

// Render substitutes `{name}` placeholders from params. Unknown
// placeholders are left as-is; extra params are ignored.
func (e Endpoint) Render(params map[string]string) string {
	path := e.Path
	for k, v := range params {
		path = strings.ReplaceAll(path, "{"+k+"}", v)
	}
	return path
}

// Registry entry names, grouped by resource. The resource prefix
// (before the first dot) is what cache invalidation matches on.
const (
	EpUserCreate = "users.create"
	EpUserMe     = "users.me"
	EpUserGet    = "users.get"
	EpUserList   = "users.list"
	EpAuthLogin  = "auth.login"

	EpAssetCreate  = "assets.create"
	EpAssetList    = "assets.list"
	EpAssetGet     = "assets.get"
	EpAssetUpdate  = "assets.update"
	EpAssetDelete  = "assets.delete"
	EpAssetSummary = "assets.market_summary"

	EpOrderCreate  = "orders.create"
	EpOrderList    = "orders.list"
	EpOrderGet     = "orders.get"
	EpOrderUpdate  = "orders.update"
	EpOrderCancel  = "orders.cancel"
	EpOrderExecute = "orders.execute"

	EpPricingMarket        = "pricing.market"
	EpPricingMarketByType  = "pricing.market_by_type"
	EpPricingHistoryCreate = "pricing.history_create"
	EpPricingHistory       = "pricing.history"
	EpPricingUpdate        = "pricing.update"
	EpPricingTrends        = "pricing.trends"
)

// registry is the static table of logical operations. It is the only
// place URL paths appear on the client side.
var registry = map[string]Endpoint{
	EpAuthLogin:  {Method: "POST", Path: "/api/v1/auth/login"},
	EpUserCreate: {Method: "POST", Path: "/api/v1/users"},
	EpUserMe:     {Method: "GET", Path: "/api/v1/users/me"},
	EpUserGet:    {Method: "GET", Path: "/api/v1/users/{id}"},
	EpUserList:   {Method: "GET", Path: "/api/v1/users/"},

	EpAssetCreate:  {Method: "POST", Path: "/api/v1/assets"},
	EpAssetList:    {Method: "GET", Path: "/api/v1/assets"},
	EpAssetGet:     {Method: "GET", Path: "/api/v1/assets/{id}"},
	EpAssetUpdate:  {Method: "PUT", Path: "/api/v1/assets/{id}"},
	EpAssetDelete:  {Method: "DELETE", Path: "/api/v1/assets/{id}"},
	EpAssetSummary: {Method: "GET", Path: "/api/v1/assets/market/summary"},

	EpOrderCreate:  {Method: "POST", Path: "/api/v1/trades/orders"},
	EpOrderList:    {Method: "GET", Path: "/api/v1/trades/orders"},
	EpOrderGet:     {Method: "GET", Path: "/api/v1/trades/orders/{id}"},
	EpOrderUpdate:  {Method: "PUT", Path: "/api/v1/trades/orders/{id}"},
	EpOrderCancel:  {Method: "DELETE", Path: "/api/v1/trades/orders/{id}"},
	EpOrderExecute: {Method: "POST", Path: "/api/v1/trades/orders/{id}/execute"},

	EpPricingMarket:        {Method: "GET", Path: "/api/v1/pricing/market"},
	EpPricingMarketByType:  {Method: "GET", Path: "/api/v1/pricing/market/{asset_type}"},
	EpPricingHistoryCreate: {Method: "POST", Path: "/api/v1/pricing/history"},
	EpPricingHistory:       {Method: "GET", Path: "/api/v1/pricing/history/{asset_id}"},
	EpPricingUpdate:        {Method: "POST", Path: "/api/v1/pricing/update-prices"},
	EpPricingTrends:        {Method: "GET", Path: "/api/v1/pricing/trends"},
}

// Lookup returns the registry entry for a logical operation name.
func Lookup(name string) (Endpoint, bool) {
	ep, ok := registry[name]
	return ep, ok
}
