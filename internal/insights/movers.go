package insights

import (
	"hash/fnv"
	"math"
	"sort"

	"github.com/praperty/photo2value/internal/models"
)

// Mover is an item whose market value changed meaningfully since the last
// snapshot. Change is the absolute dollar delta, ChangePct the relative one.
type Mover struct {
	Item      models.Item `json:"item"`
	Change    float64     `json:"change"`
	ChangePct float64     `json:"change_pct"`
	Simulated bool        `json:"simulated"`
}

const (
	maxMovers       = 5
	noiseFloorPct   = 0.5
	simulatedRange  = 120 // hash buckets
	simulatedOffset = 40  // shifts range to -4.0%..+7.9%
)

// ComputeMovers returns up to 5 items ranked by the size of their daily
// value change. Items with at least two price-history points use the real
// delta between the latest two snapshots; if no item clears the 0.5% noise
// floor, the highest-valued active items get a simulated change instead.
func ComputeMovers(items []models.Item) []Mover {
	var movers []Mover

	for i := range items {
		it := &items[i]
		if it.IsSold() || len(it.PriceHistory) < 2 {
			continue
		}
		latest := it.PriceHistory[len(it.PriceHistory)-1].Value
		prev := it.PriceHistory[len(it.PriceHistory)-2].Value
		change := latest - prev
		pct := 0.0
		if prev != 0 {
			pct = change / prev * 100
		}
		if math.Abs(pct) < noiseFloorPct {
			continue
		}
		movers = append(movers, Mover{Item: items[i], Change: change, ChangePct: pct})
	}

	if len(movers) > 0 {
		sort.SliceStable(movers, func(i, j int) bool {
			return math.Abs(movers[i].ChangePct) > math.Abs(movers[j].ChangePct)
		})
		if len(movers) > maxMovers {
			movers = movers[:maxMovers]
		}
		return movers
	}

	// Fallback: simulate a daily move for the biggest active holdings. The
	// change is a pure function of the item name, so it stays identical
	// across renders until real price history exists.
	var candidates []int
	for i := range items {
		if items[i].IsSold() {
			continue
		}
		if baseValue(&items[i]) > 0 {
			candidates = append(candidates, i)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return baseValue(&items[candidates[a]]) > baseValue(&items[candidates[b]])
	})
	if len(candidates) > maxMovers {
		candidates = candidates[:maxMovers]
	}

	for _, idx := range candidates {
		base := baseValue(&items[idx])
		pct := simulatedChangePct(items[idx].Name)
		movers = append(movers, Mover{
			Item:      items[idx],
			Change:    math.Round(base * pct / 100),
			ChangePct: pct,
			Simulated: true,
		})
	}
	return movers
}

func baseValue(item *models.Item) float64 {
	if item.Value > 0 {
		return item.Value
	}
	return item.Cost
}

// simulatedChangePct derives a stable pseudo-random daily change in the
// range -4.0%..+7.9% from an FNV-1a hash of the item name. This is a
// documented placeholder for absent real price-history data, not market
// information.
func simulatedChangePct(name string) float64 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return (float64(h.Sum32()%simulatedRange) - simulatedOffset) / 10
}
