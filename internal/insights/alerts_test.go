package insights

import (
	"reflect"
	"testing"
	"time"

	"github.com/praperty/photo2value/internal/models"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func activeItem(id, name string, cost, value, asking float64) models.Item {
	return models.Item{
		ID:        id,
		Name:      name,
		Emoji:     "📦",
		Cost:      cost,
		Value:     value,
		Asking:    asking,
		Photos:    models.PhotoList{"photo.jpg"},
		Comps:     []models.Comp{{ID: "c1", Title: "comp", Price: value}},
		CreatedAt: testNow.Add(-48 * time.Hour),
	}
}

func soldItem(id, name string, cost, earned float64, daysToSell int) models.Item {
	it := activeItem(id, name, cost, earned, 0)
	purchased := testNow.AddDate(0, 0, -daysToSell-10)
	soldAt := purchased.AddDate(0, 0, daysToSell)
	e := earned
	it.DatePurchased = &purchased
	it.DateSold = &soldAt
	it.Earnings = &e
	return it
}

func alertsOfType(alerts []Alert, typ AlertType) []Alert {
	var out []Alert
	for _, a := range alerts {
		if a.Type == typ {
			out = append(out, a)
		}
	}
	return out
}

func TestGenerateAlertsEmptyInput(t *testing.T) {
	if alerts := GenerateAlerts(nil, testNow); len(alerts) != 0 {
		t.Errorf("Expected no alerts for empty input, got %d", len(alerts))
	}
	if alerts := GenerateAlerts([]models.Item{}, testNow); len(alerts) != 0 {
		t.Errorf("Expected no alerts for empty slice, got %d", len(alerts))
	}
}

func TestGenerateAlertsDeterministic(t *testing.T) {
	items := []models.Item{
		activeItem("1", "Rolex Submariner", 8000, 9500, 9400),
		activeItem("2", "MacBook Pro", 1270, 1100, 0),
		soldItem("3", "PS5", 400, 550, 3),
	}

	first := GenerateAlerts(items, testNow)
	for i := 0; i < 5; i++ {
		again := GenerateAlerts(items, testNow)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Run %d differed from first run", i)
		}
	}
}

func TestGenerateAlertsPriorityOrdering(t *testing.T) {
	items := []models.Item{
		activeItem("1", "Rolex Submariner", 8000, 9500, 9400),
		activeItem("2", "MacBook Pro", 1270, 1100, 0),
		activeItem("3", "Aeron Chair", 500, 500, 600),
		soldItem("4", "PS5", 400, 550, 3),
	}
	items[2].Photos = nil
	items[2].Comps = nil

	alerts := GenerateAlerts(items, testNow)
	if len(alerts) == 0 {
		t.Fatal("Expected alerts")
	}
	for i := 1; i < len(alerts); i++ {
		if alerts[i].Priority < alerts[i-1].Priority {
			t.Errorf("Alert %d (%s, prio %d) sorted before %d (%s, prio %d)",
				i-1, alerts[i-1].Type, alerts[i-1].Priority, i, alerts[i].Type, alerts[i].Priority)
		}
	}
}

func TestBelowCostScenario(t *testing.T) {
	// gain = round((1100-1270)/1270*100) = -13
	items := []models.Item{activeItem("1", "MacBook Pro", 1270, 1100, 0)}
	alerts := GenerateAlerts(items, testNow)

	below := alertsOfType(alerts, AlertBelowCost)
	if len(below) != 1 {
		t.Fatalf("Expected 1 Below Cost alert, got %d", len(below))
	}
	if below[0].Message != "MacBook Pro market value is 13% below what you paid." {
		t.Errorf("Unexpected message: %q", below[0].Message)
	}
	if below[0].ItemID != "1" {
		t.Errorf("Alert should link back to item, got %q", below[0].ItemID)
	}
	if len(alertsOfType(alerts, AlertStrongPerformer)) != 0 {
		t.Error("Item below cost must not be a Strong Performer")
	}
}

func TestZeroCostDivisionGuards(t *testing.T) {
	items := []models.Item{activeItem("1", "Found Lamp", 0, 40, 0)}
	alerts := GenerateAlerts(items, testNow)

	if len(alertsOfType(alerts, AlertStrongPerformer)) != 0 {
		t.Error("Zero-cost item must not trigger Strong Performer")
	}
	if len(alertsOfType(alerts, AlertBelowCost)) != 0 {
		t.Error("Zero-cost item must not trigger Below Cost")
	}
}

func TestGainAboveCostNeverBelowCost(t *testing.T) {
	items := []models.Item{activeItem("1", "Jordan 1", 150, 300, 0)}
	alerts := GenerateAlerts(items, testNow)

	if len(alertsOfType(alerts, AlertBelowCost)) != 0 {
		t.Error("Item worth more than cost must not trigger Below Cost")
	}
	if len(alertsOfType(alerts, AlertStrongPerformer)) != 1 {
		t.Error("100% gain should trigger Strong Performer")
	}
}

func TestReadyToSellScenario(t *testing.T) {
	// asking within 10% of value and profitable: |190-200|/200 = 0.05
	items := []models.Item{activeItem("1", "Switch OLED", 100, 200, 190)}
	alerts := GenerateAlerts(items, testNow)

	if len(alertsOfType(alerts, AlertReadyToSell)) != 1 {
		t.Fatal("Expected Ready to Sell alert")
	}
}

func TestTopGainerRequiresPositiveGain(t *testing.T) {
	items := []models.Item{
		activeItem("1", "Loser A", 100, 80, 0),
		activeItem("2", "Loser B", 200, 150, 0),
	}
	alerts := GenerateAlerts(items, testNow)
	if len(alertsOfType(alerts, AlertTopGainer)) != 0 {
		t.Error("Top Gainer should not fire when no item has positive gain")
	}

	items = append(items, activeItem("3", "Winner", 100, 110, 0))
	alerts = GenerateAlerts(items, testNow)
	top := alertsOfType(alerts, AlertTopGainer)
	if len(top) != 1 {
		t.Fatal("Expected Top Gainer alert")
	}
	if top[0].ItemID != "3" {
		t.Errorf("Top Gainer should be item 3, got %q", top[0].ItemID)
	}
}

func TestFastestFlipPicksMinimumDays(t *testing.T) {
	items := []models.Item{
		soldItem("1", "Slow Flip", 100, 150, 30),
		soldItem("2", "Quick Flip", 200, 260, 2),
	}
	alerts := GenerateAlerts(items, testNow)

	flips := alertsOfType(alerts, AlertFastestFlip)
	if len(flips) != 1 {
		t.Fatalf("Expected 1 Fastest Flip alert, got %d", len(flips))
	}
	if flips[0].ItemID != "2" {
		t.Errorf("Fastest flip should be item 2, got %q", flips[0].ItemID)
	}
	if flips[0].Message != "Quick Flip sold in 2 days for $60 profit." {
		t.Errorf("Unexpected message: %q", flips[0].Message)
	}
}

func TestBiggestWinRequiresProfit(t *testing.T) {
	items := []models.Item{soldItem("1", "Bad Sale", 500, 400, 10)}
	alerts := GenerateAlerts(items, testNow)
	if len(alertsOfType(alerts, AlertBiggestWin)) != 0 {
		t.Error("Biggest Win should not fire on a losing sale")
	}
}

func TestSoldItemsExcludedFromPricingRules(t *testing.T) {
	// Sold at a loss relative to cost; Below Cost only applies to active items.
	items := []models.Item{soldItem("1", "Old Couch", 900, 300, 60)}
	alerts := GenerateAlerts(items, testNow)
	if len(alertsOfType(alerts, AlertBelowCost)) != 0 {
		t.Error("Sold items must not trigger pricing alerts")
	}
}

func TestPricedHighAndUnderpriced(t *testing.T) {
	items := []models.Item{
		activeItem("1", "Greedy", 100, 100, 130), // 30% over market
		activeItem("2", "Generous", 100, 200, 150),
	}
	alerts := GenerateAlerts(items, testNow)

	high := alertsOfType(alerts, AlertPricedHigh)
	if len(high) != 1 || high[0].ItemID != "1" {
		t.Errorf("Expected Priced High on item 1, got %+v", high)
	}
	under := alertsOfType(alerts, AlertUnderpriced)
	if len(under) != 1 || under[0].ItemID != "2" {
		t.Errorf("Expected Underpriced on item 2, got %+v", under)
	}
}

func TestActionAlerts(t *testing.T) {
	it := activeItem("1", "Bare Item", 50, 50, 0)
	it.Comps = nil
	it.Photos = nil
	alerts := GenerateAlerts([]models.Item{it}, testNow)

	if len(alertsOfType(alerts, AlertNeedsComps)) != 1 {
		t.Error("Item without comps should trigger Needs Comps")
	}
	if len(alertsOfType(alerts, AlertAddPhoto)) != 1 {
		t.Error("Item without photos should trigger Add Photo")
	}
	// value == cost and asking (0) != cost (50)
	if len(alertsOfType(alerts, AlertSetMarketValue)) != 1 {
		t.Error("Item with value still at cost should trigger Set Market Value")
	}
}

func TestSetMarketValueSkippedWhenAskingMatchesCost(t *testing.T) {
	items := []models.Item{activeItem("1", "Priced At Cost", 50, 50, 50)}
	alerts := GenerateAlerts(items, testNow)
	if len(alertsOfType(alerts, AlertSetMarketValue)) != 0 {
		t.Error("asking == cost should suppress Set Market Value")
	}
}

func TestNewAndStaleItems(t *testing.T) {
	fresh := activeItem("1", "Fresh", 10, 10, 10)
	fresh.CreatedAt = testNow.Add(-2 * time.Hour)
	stale := activeItem("2", "Dusty", 10, 10, 10)
	stale.CreatedAt = testNow.AddDate(0, 0, -45)

	alerts := GenerateAlerts([]models.Item{fresh, stale}, testNow)

	added := alertsOfType(alerts, AlertNewItem)
	if len(added) != 1 || added[0].ItemID != "1" {
		t.Errorf("Expected New Item Added for item 1, got %+v", added)
	}
	staleAlerts := alertsOfType(alerts, AlertStaleItem)
	if len(staleAlerts) != 1 || staleAlerts[0].ItemID != "2" {
		t.Errorf("Expected Stale Item for item 2, got %+v", staleAlerts)
	}
}

func TestHighConcentration(t *testing.T) {
	items := []models.Item{
		activeItem("1", "Whale", 100, 1000, 0),
		activeItem("2", "Minnow A", 100, 100, 0),
		activeItem("3", "Minnow B", 100, 100, 0),
	}
	alerts := GenerateAlerts(items, testNow)

	conc := alertsOfType(alerts, AlertHighConcentration)
	if len(conc) != 1 || conc[0].ItemID != "1" {
		t.Fatalf("Expected High Concentration on the whale, got %+v", conc)
	}

	// Needs at least 3 active items
	alerts = GenerateAlerts(items[:2], testNow)
	if len(alertsOfType(alerts, AlertHighConcentration)) != 0 {
		t.Error("High Concentration requires at least 3 active items")
	}
}

func TestAlertsNotDeduplicatedAcrossItems(t *testing.T) {
	items := []models.Item{
		activeItem("1", "Loss A", 100, 50, 0),
		activeItem("2", "Loss B", 200, 100, 0),
	}
	alerts := GenerateAlerts(items, testNow)
	if got := len(alertsOfType(alerts, AlertBelowCost)); got != 2 {
		t.Errorf("Expected a Below Cost alert per item, got %d", got)
	}
}
