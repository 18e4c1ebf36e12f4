package services

import (
	"context"
	"testing"
)

func TestEbayDisabledWithoutToken(t *testing.T) {
	svc := NewEbayService("", 100)
	if svc.IsEnabled() {
		t.Error("Service should be disabled without a token")
	}
	if _, err := svc.SearchComps(context.Background(), "rolex"); err == nil {
		t.Error("Expected error from disabled service")
	}
}

func TestEbayQuotaAccounting(t *testing.T) {
	svc := NewEbayService("token", 3)

	if got := svc.RequestsRemaining(); got != 3 {
		t.Errorf("Expected 3 remaining, got %d", got)
	}

	for i := 0; i < 3; i++ {
		if !svc.recordRequest() {
			t.Fatalf("Request %d should be within quota", i+1)
		}
	}
	if svc.recordRequest() {
		t.Error("Fourth request should be rejected")
	}
	if got := svc.RequestsRemaining(); got != 0 {
		t.Errorf("Expected 0 remaining, got %d", got)
	}
}

func TestEbayDefaultDailyLimit(t *testing.T) {
	svc := NewEbayService("token", 0)
	if svc.RequestsRemaining() != 100 {
		t.Errorf("Expected default limit 100, got %d", svc.RequestsRemaining())
	}
}

func TestParsePrice(t *testing.T) {
	cases := map[string]float64{
		"125.50":  125.50,
		"0":       0,
		"":        0,
		"garbage": 0,
	}
	for raw, want := range cases {
		if got := parsePrice(raw); got != want {
			t.Errorf("parsePrice(%q) = %f, want %f", raw, got, want)
		}
	}
}
