package pricing

import (
	"testing"

	"github.com/auto72auto/wisebricks/internal/catalog"
)

func view(num, title string, theme *string, rrp *float64) catalog.SetView {
	return catalog.SetView{SetNumber: num, Title: title, Theme: theme, RRPGBP: rrp}
}

func searchFixture() []catalog.SetView {
	return []catalog.SetView{
		view("10758", "Airport Chase", sp("City"), fp(30)),
		view("758", "Classic Starter", sp("Creator"), fp(20)),
		view("41758", "Friendship House", sp("Friends"), fp(65)),
		view("60300", "Set 758 Anniversary", sp("City"), fp(45)),
		view("31120", "Medieval Castle", sp("Castle 758"), nil),
	}
}

func TestRankSearchRelevanceTiers(t *testing.T) {
	results, total := RankSearch(searchFixture(), "758", catalog.SortBySetNumber, catalog.SortAsc, 5, 0)
	if total != 5 {
		t.Fatalf("total=%d, want 5", total)
	}
	if results[0].SetNumber != "758" {
		t.Fatalf("exact set number must rank first, got %s", results[0].SetNumber)
	}
	// Substring set-number matches before title matches before theme-only.
	if results[1].SetNumber != "10758" || results[2].SetNumber != "41758" {
		t.Fatalf("set-number substring tier out of order: %s, %s",
			results[1].SetNumber, results[2].SetNumber)
	}
	if results[3].SetNumber != "60300" {
		t.Fatalf("title tier misplaced: %s", results[3].SetNumber)
	}
	if results[4].SetNumber != "31120" {
		t.Fatalf("theme tier should come last: %s", results[4].SetNumber)
	}
}

func TestRelevanceTierCaseInsensitive(t *testing.T) {
	s := view("75192", "Millennium Falcon", sp("Star Wars"), fp(650))
	if tier := RelevanceTier(s, "FALCON"); tier != 2 {
		t.Fatalf("title match tier=%d, want 2", tier)
	}
	if tier := RelevanceTier(s, "star wars"); tier != 3 {
		t.Fatalf("theme match tier=%d, want 3", tier)
	}
	if tier := RelevanceTier(s, "75192"); tier != 0 {
		t.Fatalf("exact tier=%d, want 0", tier)
	}
}

func TestMatchesQuery(t *testing.T) {
	s := view("75192", "Millennium Falcon", sp("Star Wars"), fp(650))
	cases := []struct {
		query string
		want  bool
	}{
		{query: "", want: true},
		{query: "751", want: true},
		{query: "falcon", want: true},
		{query: "wars", want: true},
		{query: "castle", want: false},
	}
	for _, tc := range cases {
		if got := MatchesQuery(s, tc.query); got != tc.want {
			t.Errorf("MatchesQuery(%q)=%v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestRankSearchEmptyQueryPriceSortNullsLast(t *testing.T) {
	sets := []catalog.SetView{
		view("3", "C", nil, nil),
		view("1", "A", nil, fp(50)),
		view("2", "B", nil, fp(20)),
	}

	asc, _ := RankSearch(sets, "", catalog.SortByPrice, catalog.SortAsc, 10, 0)
	if asc[0].SetNumber != "2" || asc[1].SetNumber != "1" || asc[2].SetNumber != "3" {
		t.Fatalf("asc price order wrong: %s %s %s", asc[0].SetNumber, asc[1].SetNumber, asc[2].SetNumber)
	}

	desc, _ := RankSearch(sets, "", catalog.SortByPrice, catalog.SortDesc, 10, 0)
	if desc[0].SetNumber != "1" || desc[1].SetNumber != "2" || desc[2].SetNumber != "3" {
		t.Fatalf("desc price order must still put nulls last: %s %s %s",
			desc[0].SetNumber, desc[1].SetNumber, desc[2].SetNumber)
	}
}

func TestRankSearchTitleSortDesc(t *testing.T) {
	sets := []catalog.SetView{
		view("1", "Alpha", nil, nil),
		view("2", "Zulu", nil, nil),
	}
	results, _ := RankSearch(sets, "", catalog.SortByTitle, catalog.SortDesc, 10, 0)
	if results[0].Title != "Zulu" {
		t.Fatalf("desc title sort wrong: %s first", results[0].Title)
	}
}

func TestRankSearchVariantTieBreak(t *testing.T) {
	sets := []catalog.SetView{
		{SetNumber: "100", Title: "Same", Variant: 2},
		{SetNumber: "100", Title: "Same", Variant: 0},
		{SetNumber: "100", Title: "Same", Variant: 1},
	}
	results, _ := RankSearch(sets, "", catalog.SortBySetNumber, catalog.SortAsc, 10, 0)
	for i, want := range []int{0, 1, 2} {
		if results[i].Variant != want {
			t.Fatalf("variant tie-break broken at %d: got %d", i, results[i].Variant)
		}
	}
}

func TestRankSearchPaginationIdempotence(t *testing.T) {
	sets := searchFixture()

	page1, total1 := RankSearch(sets, "", catalog.SortBySetNumber, catalog.SortAsc, 2, 0)
	page2, total2 := RankSearch(sets, "", catalog.SortBySetNumber, catalog.SortAsc, 2, 2)

	if total1 != total2 || total1 != len(sets) {
		t.Fatalf("totals disagree: %d vs %d", total1, total2)
	}

	seen := map[string]bool{}
	for _, s := range page1 {
		seen[s.SetNumber] = true
	}
	for _, s := range page2 {
		if seen[s.SetNumber] {
			t.Fatalf("set %s appears on both pages", s.SetNumber)
		}
	}
}

func TestRankSearchOffsetPastEnd(t *testing.T) {
	results, total := RankSearch(searchFixture(), "", catalog.SortBySetNumber, catalog.SortAsc, 10, 100)
	if total != 5 {
		t.Fatalf("total should ignore pagination, got %d", total)
	}
	if len(results) != 0 {
		t.Fatalf("offset past end should return empty page, got %d", len(results))
	}
}

func TestRankSearchZeroLimitReturnsAll(t *testing.T) {
	results, _ := RankSearch(searchFixture(), "", catalog.SortBySetNumber, catalog.SortAsc, 0, 0)
	if len(results) != 5 {
		t.Fatalf("zero limit should return everything, got %d", len(results))
	}
}
