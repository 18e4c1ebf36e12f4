package services

import (
	"testing"

	"github.com/praperty/photo2value/internal/models"
)

func TestCompAverage(t *testing.T) {
	comps := []models.Comp{
		{Title: "a", Price: 100},
		{Title: "b", Price: 200},
		{Title: "c", Price: 0},   // unpriced, ignored
		{Title: "d", Price: -50}, // malformed, ignored
	}
	if avg := CompAverage(comps); avg != 150 {
		t.Errorf("Expected average 150, got %f", avg)
	}
}

func TestCompAverageEmpty(t *testing.T) {
	if avg := CompAverage(nil); avg != 0 {
		t.Errorf("Expected 0 for no comps, got %f", avg)
	}
	if avg := CompAverage([]models.Comp{{Title: "a", Price: 0}}); avg != 0 {
		t.Errorf("Expected 0 when no comp has a price, got %f", avg)
	}
}

func TestCompAverageRounding(t *testing.T) {
	comps := []models.Comp{
		{Title: "a", Price: 10},
		{Title: "b", Price: 10},
		{Title: "c", Price: 10.01},
	}
	if avg := CompAverage(comps); avg != 10.00 {
		t.Errorf("Expected cent-rounded average 10.00, got %f", avg)
	}
}
