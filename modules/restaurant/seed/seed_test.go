package seed

import (
	"strings"
	"testing"

	"restaurant-directory/modules/restaurant/hours"
)

func TestRestaurants(t *testing.T) {
	items, err := Restaurants()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) < 40 {
		t.Fatalf("expected the bundled directory, got %d entries", len(items))
	}
	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" || strings.TrimSpace(item.OpeningHours) == "" {
			t.Fatalf("incomplete entry %+v", item)
		}
	}
}

func TestBundledHoursParse(t *testing.T) {
	items, err := Restaurants()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, item := range items {
		if hours.Parse(item.OpeningHours).IsEmpty() {
			t.Errorf("%s: no schedule parsed from %q", item.Name, item.OpeningHours)
		}
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("restaurants: [")); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
