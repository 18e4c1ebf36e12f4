package insights

import (
	"testing"

	"github.com/praperty/photo2value/internal/models"
)

func TestComputeSignalBuyScenario(t *testing.T) {
	// margin 50% -> +20, soldCount>3 -> +10, totalComps>5 -> +10,
	// avgSold>avgValue -> +10 => 100
	stats := models.AggregateStats{
		AvgValue:   150,
		AvgCost:    100,
		SoldCount:  5,
		TotalComps: 8,
		AvgSold:    160,
		Listings:   3,
	}
	sig := ComputeSignal(stats)
	if sig.Score != 100 {
		t.Errorf("Expected score 100, got %d", sig.Score)
	}
	if sig.Label != SignalBuy {
		t.Errorf("Expected BUY, got %s", sig.Label)
	}
	if len(sig.Reasons) == 0 {
		t.Error("Expected reasons for a strong signal")
	}
}

func TestComputeSignalNoData(t *testing.T) {
	// listings == 0 resets everything regardless of other stats
	stats := models.AggregateStats{
		AvgValue:   500,
		AvgCost:    100,
		SoldCount:  10,
		TotalComps: 20,
		AvgSold:    600,
		Listings:   0,
	}
	sig := ComputeSignal(stats)
	if sig.Score != 50 {
		t.Errorf("Expected neutral score 50, got %d", sig.Score)
	}
	if sig.Label != SignalHold {
		t.Errorf("Expected HOLD, got %s", sig.Label)
	}
	if len(sig.Reasons) != 1 || sig.Reasons[0] != "No community data yet" {
		t.Errorf("Expected single no-data reason, got %v", sig.Reasons)
	}
}

func TestComputeSignalDeterministic(t *testing.T) {
	stats := models.AggregateStats{AvgValue: 120, AvgCost: 100, SoldCount: 2, TotalComps: 3, Listings: 4}
	first := ComputeSignal(stats)
	for i := 0; i < 3; i++ {
		if got := ComputeSignal(stats); got.Score != first.Score || got.Label != first.Label {
			t.Fatalf("Signal changed across calls: %+v vs %+v", first, got)
		}
	}
}

func TestComputeSignalSoldCountMonotonic(t *testing.T) {
	base := models.AggregateStats{AvgValue: 100, AvgCost: 100, Listings: 2}

	prev := -1
	for sold := 0; sold <= 4; sold++ {
		stats := base
		stats.SoldCount = sold
		score := ComputeSignal(stats).Score
		if score < prev {
			t.Errorf("Score decreased from %d to %d when soldCount rose to %d", prev, score, sold)
		}
		prev = score
	}
}

func TestComputeSignalNegativeMargin(t *testing.T) {
	stats := models.AggregateStats{
		AvgValue: 80,
		AvgCost:  100,
		Listings: 2,
	}
	sig := ComputeSignal(stats)
	if sig.Score != 35 {
		t.Errorf("Expected 50-15=35, got %d", sig.Score)
	}
	if sig.Label != SignalSell {
		t.Errorf("Expected SELL below 45, got %s", sig.Label)
	}
}

func TestComputeSignalOversupply(t *testing.T) {
	with := models.AggregateStats{AvgValue: 140, AvgCost: 100, Listings: 10}
	without := models.AggregateStats{AvgValue: 140, AvgCost: 100, Listings: 3}
	if ComputeSignal(with).Score >= ComputeSignal(without).Score {
		t.Error("Oversupply should lower the score")
	}
}

func TestComputeSignalClamped(t *testing.T) {
	stats := models.AggregateStats{
		AvgValue:   1000,
		AvgCost:    100,
		SoldCount:  100,
		TotalComps: 100,
		AvgSold:    2000,
		Listings:   1,
	}
	sig := ComputeSignal(stats)
	if sig.Score < 0 || sig.Score > 100 {
		t.Errorf("Score out of bounds: %d", sig.Score)
	}
}

func TestComputeSignalLabelBoundaries(t *testing.T) {
	// margin between 10 and 30 -> +10, some sales -> +5, few comps -> +5 => 70
	stats := models.AggregateStats{
		AvgValue:   120,
		AvgCost:    100,
		SoldCount:  1,
		TotalComps: 2,
		Listings:   1,
	}
	sig := ComputeSignal(stats)
	if sig.Score != 70 {
		t.Fatalf("Expected score 70, got %d", sig.Score)
	}
	if sig.Label != SignalBuy {
		t.Errorf("Score 70 should label BUY, got %s", sig.Label)
	}
}
