package taxonomy

import (
	"reflect"
	"testing"
)

func TestDefaultTableLoads(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if len(table.Entries()) == 0 {
		t.Fatalf("expected embedded industries")
	}
}

func TestMatchTextPhotography(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	entry, score, ok := table.MatchText("I run a wedding photography studio doing portraits and headshots")
	if !ok {
		t.Fatalf("expected a match")
	}
	if entry.Display != "Photography" {
		t.Fatalf("expected Photography, got %s", entry.Display)
	}
	if score < 3 {
		t.Fatalf("expected at least 3 overlapping keywords, got %d", score)
	}
}

func TestMatchTextNoOverlap(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if _, _, ok := table.MatchText("professional services for discerning clients"); ok {
		t.Fatalf("expected no match for generic text")
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	first, _, _ := table.MatchText("coffee and pastry bakery with a yoga corner")
	for i := 0; i < 5; i++ {
		again, _, _ := table.MatchText("coffee and pastry bakery with a yoga corner")
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("match changed between runs: %s vs %s", first.Key, again.Key)
		}
	}
}

func TestByIndustryMatchesKeyAndDisplay(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	byKey, ok := table.ByIndustry("photography")
	if !ok {
		t.Fatalf("expected key lookup to succeed")
	}
	byDisplay, ok := table.ByIndustry("Photography")
	if !ok {
		t.Fatalf("expected display lookup to succeed")
	}
	if byKey.Key != byDisplay.Key {
		t.Fatalf("key and display lookups disagree: %s vs %s", byKey.Key, byDisplay.Key)
	}
	if _, ok := table.ByIndustry("General"); ok {
		t.Fatalf("expected no entry for General")
	}
}

func TestKnownKeywordsFiltersAndDedups(t *testing.T) {
	table, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	got := table.KnownKeywords([]string{"Wedding", "banana", "wedding", "portrait"})
	want := []string{"wedding", "portrait"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("KnownKeywords = %v, want %v", got, want)
	}
}

func TestParseRejectsIncompleteEntry(t *testing.T) {
	_, err := Parse([]byte("industries:\n  - key: broken\n"))
	if err == nil {
		t.Fatalf("expected error for incomplete entry")
	}
}
