package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	barcodeBaseURL        = "https://api.upcitemdb.com/prod/trial"
	barcodeDefaultTimeout = 10 * time.Second
)

// BarcodeService looks up scanned product codes against UPCitemdb. It is a
// pass-through: the response is normalized but nothing is persisted here.
type BarcodeService struct {
	client  *http.Client
	apiKey  string
	baseURL string
	limiter *rate.Limiter
}

// BarcodeProduct is the normalized result of a barcode lookup.
type BarcodeProduct struct {
	Code     string  `json:"code"`
	Title    string  `json:"title"`
	Brand    string  `json:"brand"`
	Model    string  `json:"model"`
	Category string  `json:"category"`
	MSRP     float64 `json:"msrp"`
}

type upcLookupResponse struct {
	Code  string `json:"code"`
	Total int    `json:"total"`
	Items []struct {
		Title    string  `json:"title"`
		Brand    string  `json:"brand"`
		Model    string  `json:"model"`
		Category string  `json:"category"`
		MSRP     float64 `json:"msrp"`
	} `json:"items"`
}

func NewBarcodeService(apiKey string) *BarcodeService {
	return &BarcodeService{
		client: &http.Client{
			Timeout: barcodeDefaultTimeout,
		},
		apiKey:  apiKey,
		baseURL: barcodeBaseURL,
		// Trial tier allows bursts of a few lookups, not sustained scanning
		limiter: rate.NewLimiter(rate.Every(6*time.Second), 3),
	}
}

// Lookup resolves a UPC/EAN code to product details.
func (s *BarcodeService) Lookup(ctx context.Context, code string) (*BarcodeProduct, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	reqURL := fmt.Sprintf("%s/lookup?upc=%s", s.baseURL, url.QueryEscape(code))
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("user_key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to look up barcode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("barcode API returned status %d", resp.StatusCode)
	}

	var lookupResp upcLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lookupResp); err != nil {
		return nil, fmt.Errorf("failed to decode barcode response: %w", err)
	}

	if len(lookupResp.Items) == 0 {
		return nil, nil
	}

	item := lookupResp.Items[0]
	return &BarcodeProduct{
		Code:     code,
		Title:    item.Title,
		Brand:    item.Brand,
		Model:    item.Model,
		Category: item.Category,
		MSRP:     item.MSRP,
	}, nil
}
