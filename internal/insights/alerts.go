// Package insights derives alerts, buy/sell signals, and market movers from
// an in-memory snapshot of a user's items. Everything here is a pure
// function: no I/O, no retained state, deterministic for fixed inputs.
// Callers pass a read-only slice per invocation and may memoize freely.
package insights

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/praperty/photo2value/internal/models"
)

type AlertType string

const (
	AlertTopGainer         AlertType = "Top Gainer"
	AlertFastestFlip       AlertType = "Fastest Flip"
	AlertBiggestWin        AlertType = "Biggest Win"
	AlertBelowCost         AlertType = "Below Cost"
	AlertUnderpriced       AlertType = "Underpriced"
	AlertPricedHigh        AlertType = "Priced High"
	AlertStrongPerformer   AlertType = "Strong Performer"
	AlertNeedsComps        AlertType = "Needs Comps"
	AlertSetMarketValue    AlertType = "Set Market Value"
	AlertAddPhoto          AlertType = "Add Photo"
	AlertNewItem           AlertType = "New Item Added"
	AlertHighConcentration AlertType = "High Concentration"
	AlertStaleItem         AlertType = "Stale Item"
	AlertReadyToSell       AlertType = "Ready to Sell"
)

type AlertCategory string

const (
	CategoryHighlights AlertCategory = "highlights"
	CategoryPricing    AlertCategory = "pricing"
	CategoryAction     AlertCategory = "action"
	CategoryActivity   AlertCategory = "activity"
	CategoryInsights   AlertCategory = "insights"
)

// Priority orders alerts in the feed; lower surfaces first. Bands are
// grouped by category so the ordering contract is explicit rather than
// scattered integer literals.
type Priority int

const (
	PriorityTopGainer         Priority = 0
	PriorityFastestFlip       Priority = 1
	PriorityBiggestWin        Priority = 2
	PriorityBelowCost         Priority = 5
	PriorityUnderpriced       Priority = 6
	PriorityPricedHigh        Priority = 7
	PriorityStrongPerformer   Priority = 10
	PriorityReadyToSell       Priority = 11
	PriorityNeedsComps        Priority = 12
	PrioritySetMarketValue    Priority = 13
	PriorityAddPhoto          Priority = 14
	PriorityHighConcentration Priority = 15
	PriorityStaleItem         Priority = 16
	PriorityNewItem           Priority = 20
)

// Alert is a derived, never-persisted notification about one item or the
// portfolio as a whole. The full list is recomputed on every call.
type Alert struct {
	ID       int           `json:"id"`
	Type     AlertType     `json:"type"`
	Category AlertCategory `json:"category"`
	Priority Priority      `json:"priority"`
	Message  string        `json:"message"`
	Emoji    string        `json:"emoji"`
	ItemID   string        `json:"item_id,omitempty"`
}

const (
	strongPerformerGainPct = 15
	pricedHighFactor       = 1.2
	underpricedFactor      = 0.9
	readyToSellTolerance   = 0.10
	concentrationShare     = 0.5
	newItemWindow          = 24 * time.Hour
	staleAfterDays         = 30
)

// gainPct returns the item's percentage gain of value over cost, rounded to
// the nearest integer. Zero-cost items report zero gain.
func gainPct(item *models.Item) int {
	if item.Cost == 0 {
		return 0
	}
	return int(math.Round((item.Value - item.Cost) / item.Cost * 100))
}

func earnings(item *models.Item) float64 {
	if item.Earnings == nil {
		return 0
	}
	return *item.Earnings
}

// daysToSell returns the whole days between acquisition (DatePurchased,
// falling back to CreatedAt) and sale, never negative.
func daysToSell(item *models.Item) int {
	start := item.CreatedAt
	if item.DatePurchased != nil {
		start = *item.DatePurchased
	}
	days := int(math.Round(item.DateSold.Sub(start).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// fmtMoney renders a dollar amount with thousands separators, no cents.
func fmtMoney(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-$" + s
	}
	return "$" + s
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// GenerateAlerts scans the item snapshot and produces the prioritized alert
// feed. The result is sorted ascending by priority with ties kept in rule
// evaluation order; repeated calls with the same items and now return an
// identical list.
func GenerateAlerts(items []models.Item, now time.Time) []Alert {
	var alerts []Alert
	nextID := 1

	push := func(typ AlertType, cat AlertCategory, prio Priority, item *models.Item, msg string) {
		alerts = append(alerts, Alert{
			ID:       nextID,
			Type:     typ,
			Category: cat,
			Priority: prio,
			Message:  msg,
			Emoji:    item.Emoji,
			ItemID:   item.ID,
		})
		nextID++
	}

	var active, sold []*models.Item
	totalValue := 0.0
	for i := range items {
		if items[i].IsSold() {
			sold = append(sold, &items[i])
		} else {
			active = append(active, &items[i])
			totalValue += items[i].Value
		}
	}

	// Highlights

	if len(active) > 0 {
		top := active[0]
		for _, it := range active[1:] {
			if gainPct(it) > gainPct(top) {
				top = it
			}
		}
		if g := gainPct(top); g > 0 {
			push(AlertTopGainer, CategoryHighlights, PriorityTopGainer, top,
				fmt.Sprintf("%s is your best performer at +%d%% gain.", top.Name, g))
		}
	}

	var flippable []*models.Item
	for _, it := range sold {
		if it.DateSold != nil {
			flippable = append(flippable, it)
		}
	}
	if len(flippable) > 0 {
		fastest := flippable[0]
		for _, it := range flippable[1:] {
			if daysToSell(it) < daysToSell(fastest) {
				fastest = it
			}
		}
		days := daysToSell(fastest)
		profit := earnings(fastest) - fastest.Cost
		push(AlertFastestFlip, CategoryHighlights, PriorityFastestFlip, fastest,
			fmt.Sprintf("%s sold in %d day%s for %s profit.", fastest.Name, days, plural(days), fmtMoney(profit)))
	}

	if len(sold) > 0 {
		best := sold[0]
		for _, it := range sold[1:] {
			if earnings(it)-it.Cost > earnings(best)-best.Cost {
				best = it
			}
		}
		if win := earnings(best) - best.Cost; win > 0 {
			push(AlertBiggestWin, CategoryHighlights, PriorityBiggestWin, best,
				fmt.Sprintf("%s earned you +%s (cost %s, sold %s).",
					best.Name, fmtMoney(win), fmtMoney(best.Cost), fmtMoney(earnings(best))))
		}
	}

	// Pricing

	for _, it := range active {
		gain := gainPct(it)

		if gain > strongPerformerGainPct {
			push(AlertStrongPerformer, CategoryPricing, PriorityStrongPerformer, it,
				fmt.Sprintf("%s is up %d%% from what you paid.", it.Name, gain))
		}

		if it.Value < it.Cost && it.Cost > 0 {
			loss := int(math.Round((it.Cost - it.Value) / it.Cost * 100))
			push(AlertBelowCost, CategoryPricing, PriorityBelowCost, it,
				fmt.Sprintf("%s market value is %d%% below what you paid.", it.Name, loss))
		}

		if it.Asking > 0 && it.Value > 0 && it.Asking > it.Value*pricedHighFactor {
			over := int(math.Round((it.Asking - it.Value) / it.Value * 100))
			push(AlertPricedHigh, CategoryPricing, PriorityPricedHigh, it,
				fmt.Sprintf("%s asking is %d%% above market. May be hard to sell.", it.Name, over))
		}

		if it.Asking > 0 && it.Value > 0 && it.Asking < it.Value*underpricedFactor {
			push(AlertUnderpriced, CategoryPricing, PriorityUnderpriced, it,
				fmt.Sprintf("%s is listed below market value. You could ask for more.", it.Name))
		}
	}

	// Action needed

	for _, it := range active {
		if len(it.Comps) == 0 {
			push(AlertNeedsComps, CategoryAction, PriorityNeedsComps, it,
				fmt.Sprintf("%s has no comparable listings. Add comps for better valuation.", it.Name))
		}

		// Proxy for "valuation never updated": the value was seeded from
		// cost and never touched. Best-effort; there is no lastValuedAt
		// field to check against.
		if it.Value == it.Cost && it.Asking != it.Cost {
			push(AlertSetMarketValue, CategoryAction, PrioritySetMarketValue, it,
				fmt.Sprintf("%s market value may need updating. It's still set to your cost.", it.Name))
		}

		if len(it.Photos) == 0 {
			push(AlertAddPhoto, CategoryAction, PriorityAddPhoto, it,
				fmt.Sprintf("%s has no photo. Items with photos get better valuations.", it.Name))
		}
	}

	// Activity

	for _, it := range active {
		if now.Sub(it.CreatedAt) < newItemWindow {
			push(AlertNewItem, CategoryActivity, PriorityNewItem, it,
				fmt.Sprintf("%s was added to your inventory.", it.Name))
		}
	}

	// Insights

	if len(active) >= 3 && totalValue > 0 {
		biggest := active[0]
		for _, it := range active[1:] {
			if it.Value > biggest.Value {
				biggest = it
			}
		}
		if biggest.Value/totalValue > concentrationShare {
			share := int(math.Round(biggest.Value / totalValue * 100))
			push(AlertHighConcentration, CategoryInsights, PriorityHighConcentration, biggest,
				fmt.Sprintf("%s is %d%% of your portfolio. Consider diversifying.", biggest.Name, share))
		}
	}

	for _, it := range active {
		days := int(math.Round(now.Sub(it.CreatedAt).Hours() / 24))
		if days > staleAfterDays {
			push(AlertStaleItem, CategoryInsights, PriorityStaleItem, it,
				fmt.Sprintf("%s hasn't been updated in %d days. Refresh your valuation.", it.Name, days))
		}
	}

	for _, it := range active {
		if it.Asking > 0 && it.Value > it.Cost && it.Cost > 0 {
			if math.Abs(it.Asking-it.Value)/it.Value < readyToSellTolerance {
				push(AlertReadyToSell, CategoryInsights, PriorityReadyToSell, it,
					fmt.Sprintf("%s is priced near market value and profitable. Good time to list.", it.Name))
			}
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Priority < alerts[j].Priority
	})
	return alerts
}
