package services

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/praperty/photo2value/internal/database"
	"github.com/praperty/photo2value/internal/metrics"
	"github.com/praperty/photo2value/internal/models"
)

const (
	// refreshBatchSize caps items refreshed per worker pass
	refreshBatchSize = 10
	// maxStoredComps caps eBay-sourced comps kept per item per refresh
	maxStoredComps = 8
)

// RefreshWorker drains a queue of user-requested comp refreshes: it fetches
// fresh eBay comps for each queued item, stores them, and revalues the item.
type RefreshWorker struct {
	ebay      *EbayService
	valuation *ValuationService

	updateInterval time.Duration

	// Queue of item IDs awaiting refresh
	queueMu sync.Mutex
	queue   []string

	// Stats (reset at midnight)
	statsMu             sync.Mutex
	itemsRefreshedToday int
	lastRefreshTime     time.Time
	lastStatsDay        time.Time
}

// RefreshStatus reports worker and quota state for the API.
type RefreshStatus struct {
	QueueSize           int       `json:"queue_size"`
	ItemsRefreshedToday int       `json:"items_refreshed_today"`
	LastRefreshTime     time.Time `json:"last_refresh_time"`
	DailyLimit          int       `json:"daily_limit"`
	Remaining           int       `json:"remaining"`
}

func NewRefreshWorker(ebay *EbayService, valuation *ValuationService) *RefreshWorker {
	return &RefreshWorker{
		ebay:           ebay,
		valuation:      valuation,
		updateInterval: time.Minute,
	}
}

// QueueRefresh adds an item to the refresh queue, returning its 1-indexed
// position. Already-queued items keep their position.
func (w *RefreshWorker) QueueRefresh(itemID string) int {
	w.queueMu.Lock()
	defer w.queueMu.Unlock()

	for i, id := range w.queue {
		if id == itemID {
			return i + 1
		}
	}
	w.queue = append(w.queue, itemID)
	metrics.RefreshQueueSize.Set(float64(len(w.queue)))
	log.Printf("Refresh worker: queued item %s (queue size: %d)", itemID, len(w.queue))
	return len(w.queue)
}

// GetQueueSize returns the current queue size.
func (w *RefreshWorker) GetQueueSize() int {
	w.queueMu.Lock()
	defer w.queueMu.Unlock()
	return len(w.queue)
}

// Status reports the worker's current state.
func (w *RefreshWorker) Status() RefreshStatus {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()

	status := RefreshStatus{
		QueueSize:           w.GetQueueSize(),
		ItemsRefreshedToday: w.itemsRefreshedToday,
		LastRefreshTime:     w.lastRefreshTime,
	}
	if w.ebay != nil {
		status.DailyLimit = w.ebay.dailyLimit
		status.Remaining = w.ebay.RequestsRemaining()
	}
	return status
}

func (w *RefreshWorker) resetDailyStatsIfNeeded() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if w.lastStatsDay.Before(today) {
		if !w.lastStatsDay.IsZero() {
			log.Printf("Refresh worker: daily stats reset (previous day: %d items refreshed)", w.itemsRefreshedToday)
		}
		w.itemsRefreshedToday = 0
		w.lastStatsDay = today
	}
}

// Start begins the background refresh worker.
func (w *RefreshWorker) Start(ctx context.Context) {
	log.Printf("Refresh worker started: draining up to %d items every %v", refreshBatchSize, w.updateInterval)

	ticker := time.NewTicker(w.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Refresh worker stopping...")
			return
		case <-ticker.C:
			if refreshed, err := w.ProcessBatch(ctx); err != nil {
				log.Printf("Refresh worker: batch failed: %v", err)
			} else if refreshed > 0 {
				log.Printf("Refresh worker: refreshed %d items", refreshed)
			}
		}
	}
}

// ProcessBatch drains up to refreshBatchSize queued items.
func (w *RefreshWorker) ProcessBatch(ctx context.Context) (int, error) {
	w.resetDailyStatsIfNeeded()

	if w.ebay == nil || !w.ebay.IsEnabled() {
		// Nothing to fetch from; drop the queue so it doesn't grow unbounded
		w.queueMu.Lock()
		w.queue = nil
		w.queueMu.Unlock()
		return 0, nil
	}
	if w.ebay.RequestsRemaining() == 0 {
		return 0, nil
	}

	w.queueMu.Lock()
	batch := w.queue
	if len(batch) > refreshBatchSize {
		batch = batch[:refreshBatchSize]
		w.queue = w.queue[refreshBatchSize:]
	} else {
		w.queue = nil
	}
	metrics.RefreshQueueSize.Set(float64(len(w.queue)))
	w.queueMu.Unlock()

	refreshed := 0
	for _, itemID := range batch {
		if err := w.refreshItem(ctx, itemID); err != nil {
			log.Printf("Refresh worker: item %s failed: %v", itemID, err)
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		w.statsMu.Lock()
		w.itemsRefreshedToday += refreshed
		w.lastRefreshTime = time.Now()
		w.statsMu.Unlock()
		metrics.CompRefreshesTotal.Add(float64(refreshed))
	}
	return refreshed, nil
}

// refreshItem fetches fresh eBay comps for one item, replaces its previous
// eBay-sourced comps, and revalues it.
func (w *RefreshWorker) refreshItem(ctx context.Context, itemID string) error {
	db := database.GetDB()

	var item models.Item
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		return err
	}
	if item.IsSold() {
		return nil
	}

	query := strings.TrimSpace(strings.Join([]string{item.Brand, item.Name}, " "))
	comps, err := w.ebay.SearchComps(ctx, query)
	if err != nil {
		return err
	}
	if len(comps) > maxStoredComps {
		comps = comps[:maxStoredComps]
	}

	// Replace previous automatic comps; user-added ones stay
	if err := db.Where("item_id = ? AND source = ?", item.ID, "eBay").Delete(&models.Comp{}).Error; err != nil {
		return err
	}
	for i := range comps {
		comps[i].ID = uuid.New().String()
		comps[i].ItemID = item.ID
	}
	if len(comps) > 0 {
		if err := db.Create(&comps).Error; err != nil {
			return err
		}
	}

	return w.valuation.Revalue(&item)
}
