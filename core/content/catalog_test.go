package content

import "testing"

func TestCatalogIntegrity(t *testing.T) {
	seen := make(map[string]bool)
	for _, lang := range Languages {
		if len(lang.Items) == 0 {
			t.Errorf("language %q has no items", lang.Code)
		}
		for _, item := range lang.Items {
			if seen[item.ID] {
				t.Errorf("duplicate catalog ID %q", item.ID)
			}
			seen[item.ID] = true
			if item.Points <= 0 {
				t.Errorf("item %q has no points", item.ID)
			}
		}
	}
	for _, act := range Activities {
		if seen[act.ID] {
			t.Errorf("duplicate catalog ID %q", act.ID)
		}
		seen[act.ID] = true
		if !KnownModule(act.Module) {
			t.Errorf("activity %q references unknown module %q", act.ID, act.Module)
		}
		if act.MinAge > act.MaxAge {
			t.Errorf("activity %q has MinAge > MaxAge", act.ID)
		}
	}
}

func TestLookupActivity(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantModule string
		wantOK     bool
	}{
		{name: "course item", id: "english-letter-a", wantModule: "english", wantOK: true},
		{name: "native script item", id: "hindi-word-paani", wantModule: "hindi", wantOK: true},
		{name: "activity", id: "counting_train", wantModule: "math", wantOK: true},
		{name: "unknown", id: "yodeling_101", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := LookupActivity(tt.id)
			if ok != tt.wantOK {
				t.Fatalf("LookupActivity(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			}
			if ok && ref.Module != tt.wantModule {
				t.Errorf("LookupActivity(%q) module = %q, want %q", tt.id, ref.Module, tt.wantModule)
			}
		})
	}
}

func TestFilterActivities(t *testing.T) {
	all := FilterActivities("", 0)
	if len(all) != len(Activities) {
		t.Errorf("FilterActivities(all) = %d activities, want %d", len(all), len(Activities))
	}

	math := FilterActivities(CategoryMath, 0)
	for _, act := range math {
		if act.Category != CategoryMath {
			t.Errorf("FilterActivities(math) returned %q of category %q", act.ID, act.Category)
		}
	}

	toddler := FilterActivities("", 3)
	for _, act := range toddler {
		if 3 < act.MinAge || 3 > act.MaxAge {
			t.Errorf("FilterActivities(age 3) returned %q for ages %d-%d", act.ID, act.MinAge, act.MaxAge)
		}
	}
	if len(toddler) == 0 {
		t.Error("FilterActivities(age 3) returned nothing")
	}
}

func TestFindLanguage(t *testing.T) {
	lang, ok := FindLanguage("arabic")
	if !ok {
		t.Fatal("FindLanguage(arabic) not found")
	}
	if !lang.RTL {
		t.Error("FindLanguage(arabic) RTL = false, want true")
	}
	if _, ok := FindLanguage("klingon"); ok {
		t.Error("FindLanguage(klingon) found, want not found")
	}
}
