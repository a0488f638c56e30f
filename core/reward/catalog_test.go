package reward

import (
	"testing"
	"time"
)

func TestCatalogIntegrity(t *testing.T) {
	knownCategories := map[Category]bool{
		CategoryAvatar: true, CategoryTheme: true, CategoryBadge: true,
		CategoryCertificate: true, CategoryPrintable: true,
	}
	seen := make(map[string]bool)
	for _, r := range Rewards {
		if seen[r.ID] {
			t.Errorf("duplicate reward id %q", r.ID)
		}
		seen[r.ID] = true
		if r.Cost <= 0 {
			t.Errorf("%s: cost must be positive, got %d", r.ID, r.Cost)
		}
		if !knownCategories[r.Category] {
			t.Errorf("%s: unknown category %q", r.ID, r.Category)
		}
		if r.MinAge > 0 && r.MaxAge > 0 && r.MinAge > r.MaxAge {
			t.Errorf("%s: min age %d > max age %d", r.ID, r.MinAge, r.MaxAge)
		}
	}

	knownKinds := map[AchievementKind]bool{KindPoints: true, KindCompletions: true, KindStreak: true}
	seen = make(map[string]bool)
	for _, a := range Achievements {
		if seen[a.ID] {
			t.Errorf("duplicate achievement id %q", a.ID)
		}
		seen[a.ID] = true
		if a.Threshold <= 0 {
			t.Errorf("%s: threshold must be positive, got %d", a.ID, a.Threshold)
		}
		if !knownKinds[a.Kind] {
			t.Errorf("%s: unknown kind %q", a.ID, a.Kind)
		}
	}
}

func TestCurrentSeason(t *testing.T) {
	tests := []struct {
		month time.Month
		want  Season
	}{
		{time.January, SeasonWinter},
		{time.February, SeasonWinter},
		{time.April, SeasonSpring},
		{time.July, SeasonSummer},
		{time.October, SeasonAutumn},
		{time.December, SeasonWinter},
	}
	for _, tt := range tests {
		at := time.Date(2024, tt.month, 15, 0, 0, 0, 0, time.UTC)
		if got := CurrentSeason(at); got != tt.want {
			t.Errorf("CurrentSeason(%s) = %q; want %q", tt.month, got, tt.want)
		}
	}
}

func TestCatalogFiltering(t *testing.T) {
	svc := NewService(nil, nil)
	contains := func(rwds []Reward, id string) bool {
		for _, r := range rwds {
			if r.ID == id {
				return true
			}
		}
		return false
	}

	january := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	july := time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC)

	winterCatalog := svc.Catalog(0, january, "")
	if !contains(winterCatalog, "snowflake-theme") {
		t.Error("snowflake-theme should be available in winter")
	}
	if contains(winterCatalog, "sunshine-theme") {
		t.Error("sunshine-theme should not be available in winter")
	}
	if contains(svc.Catalog(0, july, ""), "snowflake-theme") {
		t.Error("snowflake-theme should not be available in summer")
	}

	// age bounds
	forTenYearOld := svc.Catalog(10, january, "")
	if contains(forTenYearOld, "coloring-pack") {
		t.Error("coloring-pack is for ages 2-6, not 10")
	}
	if !contains(forTenYearOld, "puzzle-pack") {
		t.Error("puzzle-pack should be available at age 10")
	}
	if contains(svc.Catalog(4, january, ""), "puzzle-pack") {
		t.Error("puzzle-pack is for ages 6-12, not 4")
	}

	// category filter
	for _, r := range svc.Catalog(0, january, CategoryAvatar) {
		if r.Category != CategoryAvatar {
			t.Errorf("category filter leaked %s (%s)", r.ID, r.Category)
		}
	}
}
