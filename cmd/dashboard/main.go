// Command dashboard is a terminal view over the tokenization API,
// built on the vwaclient data layer. It logs in with a wallet address,
// then renders portfolio and market views.
//
// Usage:
//
//	dashboard -wallet <address> [-base http://localhost:8080] <view>
//
// Views: portfolio, orders, market, trends.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/pkg/vwaclient"
)

func main() {
	baseURL := flag.String("base", "http://localhost:8080", "API base URL")
	wallet := flag.String("wallet", os.Getenv("VWA_WALLET_ADDRESS"), "wallet address to log in with")
	flag.Parse()

	view := flag.Arg(0)
	if view == "" {
		view = "portfolio"
	}
	if *wallet == "" {
		fmt.Fprintln(os.Stderr, "a wallet address is required (-wallet or VWA_WALLET_ADDRESS)")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session := vwaclient.NewMemorySessionStore()
	client := vwaclient.NewClient(*baseURL, session, vwaclient.WithOnSessionInvalid(func() {
		fmt.Fprintln(os.Stderr, "session invalidated, log in again")
	}))
	cache := vwaclient.NewCache(time.Minute)
	portfolio := vwaclient.NewPortfolio(client, cache, promptConfirmer{})

	if err := portfolio.Login(ctx, *wallet); err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}

	var err error
	switch view {
	case "portfolio":
		err = renderPortfolio(ctx, portfolio, *wallet)
	case "orders":
		err = renderOrders(ctx, portfolio)
	case "market":
		err = renderMarket(ctx, portfolio)
	case "trends":
		err = renderTrends(ctx, portfolio, flag.Arg(1))
	default:
		err = fmt.Errorf("unknown view %q", view)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// promptConfirmer asks on stdin before destructive mutations.
type promptConfirmer struct{}

func (promptConfirmer) Confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func renderPortfolio(ctx context.Context, p *vwaclient.Portfolio, wallet string) error {
	me, err := p.Me(ctx)
	if err != nil {
		return err
	}

	// Only the logged-in wallet's holdings, not the whole market.
	assets, err := p.ListAssets(ctx, map[string]string{
		"owner_id":  me.ID,
		"is_active": "true",
	})
	if err != nil {
		return err
	}

	fmt.Printf("Portfolio for %s\n\n", wallet)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tWEIGHT (g)\tPURITY\tPRICE/g\tVALUE")
	for _, a := range assets {
		fmt.Fprintf(w, "%s\t%.2f\t%.1f%%\t%.2f\t%.2f\n",
			a.AssetType, a.Weight, a.Purity, a.CurrentPrice, a.CurrentPrice*a.Weight)
	}
	w.Flush()

	total := vwaclient.TotalValue(assets)
	fmt.Printf("\nTotal value: %.2f USD\n", total)

	dist := vwaclient.DistributionByType(assets)
	types := make([]string, 0, len(dist))
	for t := range dist {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Printf("  %-10s %5.1f%%\n", t, dist[t])
	}

	if top, ok := vwaclient.TopPerformer(assets); ok {
		fmt.Printf("Top performer: %s (%.2f USD)\n", top.AssetType, top.CurrentPrice*top.Weight)
	}
	return nil
}

func renderOrders(ctx context.Context, p *vwaclient.Portfolio) error {
	orders, err := p.ListOrders(ctx, nil)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tQTY\tPRICE\tSTATUS\tCREATED")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%s\t%s\n",
			o.ID, o.OrderType, o.Quantity, o.PricePerUnit, o.Status, o.CreatedAt)
	}
	return w.Flush()
}

func renderMarket(ctx context.Context, p *vwaclient.Portfolio) error {
	summary, err := p.Summary(ctx)
	if err != nil {
		return err
	}
	prices, err := p.MarketPrices(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Assets: %d  Total value: %.2f USD  Active orders: %d  Price updates: %d\n\n",
		summary.TotalAssets, summary.TotalValue, summary.ActiveOrders, summary.PriceUpdates)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tPRICE/g\t24H\tVOLUME")
	for _, mp := range prices {
		fmt.Fprintf(w, "%s\t%.2f\t%+.2f%%\t%.0f\n", mp.AssetType, mp.Price, mp.Change24h, mp.Volume24h)
	}
	return w.Flush()
}

func renderTrends(ctx context.Context, p *vwaclient.Portfolio, assetType string) error {
	trend, err := p.Trends(ctx, assetType)
	if err != nil {
		return err
	}

	label := assetType
	if label == "" {
		label = "all assets"
	}
	fmt.Printf("Trend (%s): %s  change %+.2f%%  volatility %.2f%%  samples %d\n",
		label, trend.Trend, trend.ChangePercent, trend.Volatility, trend.DataPoints)
	return nil
}
