package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/praperty/photo2value/internal/metrics"
	"github.com/praperty/photo2value/internal/models"
)

const (
	ebayBaseURL        = "https://api.ebay.com/buy/browse/v1"
	ebayDefaultTimeout = 10 * time.Second
	ebayCacheSize      = 200
	ebayCacheTTL       = 15 * time.Minute
	ebaySearchLimit    = 20
)

// EbayService searches eBay Browse for comparable listings. Responses are
// cached per query and calls are bounded by a daily quota plus a short-term
// rate limiter.
type EbayService struct {
	client     *resty.Client
	apiToken   string
	dailyLimit int
	limiter    *rate.Limiter
	cache      *lru.Cache[string, cachedSearch]

	// Quota accounting, reset at midnight
	mu             sync.Mutex
	requestsToday  int
	lastRequestDay time.Time
}

type cachedSearch struct {
	comps     []models.Comp
	fetchedAt time.Time
}

type ebaySearchResponse struct {
	ItemSummaries []ebayItemSummary `json:"itemSummaries"`
	Total         int               `json:"total"`
}

type ebayItemSummary struct {
	ItemID     string `json:"itemId"`
	Title      string `json:"title"`
	Condition  string `json:"condition"`
	ItemWebURL string `json:"itemWebUrl"`
	Price      struct {
		Value    string `json:"value"`
		Currency string `json:"currency"`
	} `json:"price"`
}

// NewEbayService creates a new eBay Browse client. An empty token disables
// the service; callers get an explanatory error instead of network calls.
func NewEbayService(apiToken string, dailyLimit int) *EbayService {
	if dailyLimit <= 0 {
		dailyLimit = 100 // Conservative default for the free tier
	}

	cache, err := lru.New[string, cachedSearch](ebayCacheSize)
	if err != nil {
		log.Printf("Failed to create eBay search cache: %v", err)
	}

	client := resty.New()
	client.SetBaseURL(ebayBaseURL)
	client.SetTimeout(ebayDefaultTimeout)

	svc := &EbayService{
		client:     client,
		apiToken:   apiToken,
		dailyLimit: dailyLimit,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 2),
		cache:      cache,
	}

	if svc.IsEnabled() {
		log.Printf("eBay service: enabled (daily limit=%d, cache=%d)", dailyLimit, ebayCacheSize)
	} else {
		log.Println("eBay service: disabled (no EBAY_API_TOKEN)")
	}
	return svc
}

// IsEnabled returns whether the client has credentials to call eBay.
func (s *EbayService) IsEnabled() bool {
	return s.apiToken != ""
}

// RequestsRemaining returns today's remaining API quota.
func (s *EbayService) RequestsRemaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if s.lastRequestDay.Before(today) {
		return s.dailyLimit
	}

	remaining := s.dailyLimit - s.requestsToday
	if remaining < 0 {
		return 0
	}
	return remaining
}

// recordRequest counts one API call against today's quota. Returns false if
// the quota is already exhausted.
func (s *EbayService) recordRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if s.lastRequestDay.Before(today) {
		s.requestsToday = 0
		s.lastRequestDay = today
	}

	if s.requestsToday >= s.dailyLimit {
		return false
	}
	s.requestsToday++
	metrics.EbayRequestsTotal.Inc()
	metrics.EbayQuotaRemaining.Set(float64(s.dailyLimit - s.requestsToday))
	return true
}

// SearchComps finds comparable sold/active listings for a free-text query.
// Cached results are served for 15 minutes to spare the quota.
func (s *EbayService) SearchComps(ctx context.Context, query string) ([]models.Comp, error) {
	if !s.IsEnabled() {
		return nil, fmt.Errorf("eBay service is not configured")
	}

	if s.cache != nil {
		if hit, ok := s.cache.Get(query); ok && time.Since(hit.fetchedAt) < ebayCacheTTL {
			metrics.EbayCacheHitsTotal.Inc()
			return hit.comps, nil
		}
	}

	if !s.recordRequest() {
		return nil, fmt.Errorf("eBay daily quota exhausted (%d requests)", s.dailyLimit)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	var searchResp ebaySearchResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.apiToken).
		SetQueryParam("q", query).
		SetQueryParam("limit", fmt.Sprintf("%d", ebaySearchLimit)).
		SetResult(&searchResp).
		Get("/item_summary/search")
	if err != nil {
		return nil, fmt.Errorf("searching eBay: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("eBay API returned status %d", resp.StatusCode())
	}

	now := time.Now()
	comps := make([]models.Comp, 0, len(searchResp.ItemSummaries))
	for _, item := range searchResp.ItemSummaries {
		price := parsePrice(item.Price.Value)
		if price <= 0 {
			continue
		}
		date := now
		comps = append(comps, models.Comp{
			Title:     item.Title,
			Price:     price,
			Source:    "eBay",
			Condition: item.Condition,
			Date:      &date,
			URL:       item.ItemWebURL,
		})
	}

	if s.cache != nil {
		s.cache.Add(query, cachedSearch{comps: comps, fetchedAt: now})
	}
	return comps, nil
}

func parsePrice(raw string) float64 {
	var v float64
	if _, err := fmt.Sscanf(raw, "%f", &v); err != nil {
		return 0
	}
	return v
}
