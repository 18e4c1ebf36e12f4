package insights

import (
	"fmt"
	"math"

	"github.com/praperty/photo2value/internal/models"
)

type SignalLabel string

const (
	SignalBuy  SignalLabel = "BUY"
	SignalHold SignalLabel = "HOLD"
	SignalSell SignalLabel = "SELL"
)

// Signal is a 0-100 buy/sell/hold score for a researched query, with the
// reasons that moved the score.
type Signal struct {
	Score   int         `json:"score"`
	Label   SignalLabel `json:"label"`
	Reasons []string    `json:"reasons"`
}

const (
	signalBaseline  = 50
	buyThreshold    = 70
	holdThreshold   = 45
	oversupplyCount = 5
)

// ComputeSignal scores aggregate community stats for a query. Same stats
// always produce the same signal; with no listings at all the score stays
// at the neutral baseline.
func ComputeSignal(stats models.AggregateStats) Signal {
	score := signalBaseline
	var reasons []string

	if stats.AvgValue > 0 && stats.AvgCost > 0 {
		margin := (stats.AvgValue - stats.AvgCost) / stats.AvgCost * 100
		switch {
		case margin > 30:
			score += 20
			reasons = append(reasons, fmt.Sprintf("Strong margins: value runs %d%% above cost", int(math.Round(margin))))
		case margin > 10:
			score += 10
			reasons = append(reasons, fmt.Sprintf("Healthy margins: value runs %d%% above cost", int(math.Round(margin))))
		case margin < 0:
			score -= 15
			reasons = append(reasons, "Items typically resell below what owners paid")
		}
	}

	switch {
	case stats.SoldCount > 3:
		score += 10
		reasons = append(reasons, fmt.Sprintf("Active sales: %d recently sold", stats.SoldCount))
	case stats.SoldCount > 0:
		score += 5
		reasons = append(reasons, fmt.Sprintf("Some sales activity: %d sold", stats.SoldCount))
	}

	switch {
	case stats.TotalComps > 5:
		score += 10
		reasons = append(reasons, fmt.Sprintf("Well-documented market: %d comps on file", stats.TotalComps))
	case stats.TotalComps > 0:
		score += 5
		reasons = append(reasons, fmt.Sprintf("Limited comp data: %d comps on file", stats.TotalComps))
	}

	if stats.AvgSold > stats.AvgValue && stats.AvgSold > 0 {
		score += 10
		reasons = append(reasons, "Items sell above their estimated value")
	}

	if stats.Listings > oversupplyCount {
		score -= 5
		reasons = append(reasons, fmt.Sprintf("Oversupply: %d active listings", stats.Listings))
	}

	if stats.Listings == 0 {
		score = signalBaseline
		reasons = []string{"No community data yet"}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	label := SignalSell
	switch {
	case score >= buyThreshold:
		label = SignalBuy
	case score >= holdThreshold:
		label = SignalHold
	}

	return Signal{Score: score, Label: label, Reasons: reasons}
}
