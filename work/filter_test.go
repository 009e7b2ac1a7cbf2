package work

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mockItems() []Item {
	return []Item{
		{ID: "ai-project", Category: "AI", Featured: true, Title: "AI Project"},
		{ID: "systems-project", Category: "Systems", Featured: false, Title: "Systems Project"},
		{ID: "mobile-project", Category: "Mobile", Featured: false, Title: "Mobile Project"},
		{ID: "music-project", Category: "MusicTech", Featured: true, Title: "Music Project"},
	}
}

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestFilterAndSort_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		sel  Selector
		want []string
	}{
		{"all", All, []string{"ai-project", "music-project", "systems-project", "mobile-project"}},
		{"AI", Only("AI"), []string{"ai-project"}},
		{"Systems", Only("Systems"), []string{"systems-project"}},
		{"Mobile", Only("Mobile"), []string{"mobile-project"}},
		{"MusicTech", Only("MusicTech"), []string{"music-project"}},
		{"unknown category", Only("NonExistent"), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterAndSort(mockItems(), tt.sel))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FilterAndSort mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterAndSort_SwitchBackToAll(t *testing.T) {
	items := mockItems()

	ai := FilterAndSort(items, Only("AI"))
	if len(ai) != 1 {
		t.Fatalf("expected 1 AI item, got %d", len(ai))
	}

	all := FilterAndSort(items, All)
	want := []string{"ai-project", "music-project", "systems-project", "mobile-project"}
	if diff := cmp.Diff(want, ids(all)); diff != "" {
		t.Errorf("All after AI mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterAndSort_EmptyInput(t *testing.T) {
	for _, sel := range []Selector{All, Only("AI")} {
		got := FilterAndSort(nil, sel)
		if got == nil {
			t.Errorf("FilterAndSort(nil, %v) returned nil, want empty slice", sel)
		}
		if len(got) != 0 {
			t.Errorf("FilterAndSort(nil, %v) returned %d items", sel, len(got))
		}
	}
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	items := mockItems()
	before := mockItems()

	FilterAndSort(items, All)
	FilterAndSort(items, All, ByDisplayOrder())

	if diff := cmp.Diff(before, items); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestFilterAndSort_FreshAllocation(t *testing.T) {
	items := mockItems()

	r1 := FilterAndSort(items, All)
	r2 := FilterAndSort(items, All)

	if diff := cmp.Diff(r1, r2); diff != "" {
		t.Fatalf("results differ (-r1 +r2):\n%s", diff)
	}
	if &r1[0] == &r2[0] {
		t.Error("expected separate backing arrays for repeated calls")
	}
	if &r1[0] == &items[0] {
		t.Error("result shares backing array with input")
	}

	r1[0].Title = "changed"
	if r2[0].Title == "changed" || items[0].Title == "changed" {
		t.Error("writing to one result leaked into another slice")
	}
}

func TestFilterAndSort_AllIsNotACategory(t *testing.T) {
	items := []Item{
		{ID: "literal-all", Category: "All"},
		{ID: "ai", Category: "AI"},
	}

	got := FilterAndSort(items, All)
	if diff := cmp.Diff([]string{"literal-all", "ai"}, ids(got)); diff != "" {
		t.Errorf("All must return every item (-want +got):\n%s", diff)
	}

	got = FilterAndSort(items, ParseSelector("All"))
	if len(got) != 2 {
		t.Errorf("parsed All token returned %d items, want 2", len(got))
	}
}

func TestFilterAndSort_Coverage(t *testing.T) {
	items := []Item{
		{ID: "a1", Category: "AI"},
		{ID: "s1", Category: "Systems", Featured: true},
		{ID: "a2", Category: "AI", Featured: true},
		{ID: "d1", Category: "Data"},
		{ID: "a3", Category: "AI"},
	}

	for _, c := range []Category{"AI", "Systems", "Data", "Mobile"} {
		got := FilterAndSort(items, Only(c))

		seen := make(map[string]int)
		for _, it := range got {
			if it.Category != c {
				t.Errorf("category %s: got item %s with category %s", c, it.ID, it.Category)
			}
			seen[it.ID]++
		}
		for _, it := range items {
			if it.Category != c {
				continue
			}
			if seen[it.ID] != 1 {
				t.Errorf("category %s: item %s appears %d times, want 1", c, it.ID, seen[it.ID])
			}
		}
	}
}

func TestFilterAndSort_AllKeepsEveryItemOnce(t *testing.T) {
	items := []Item{
		{ID: "a", Category: "AI"},
		{ID: "b", Category: "Systems", Featured: true},
		{ID: "c", Category: "Unlisted"},
		{ID: "d", Category: "AI", Featured: true},
	}

	got := FilterAndSort(items, All)
	if len(got) != len(items) {
		t.Fatalf("len = %d, want %d", len(got), len(items))
	}

	seen := make(map[string]int)
	for _, it := range got {
		seen[it.ID]++
	}
	for _, it := range items {
		if seen[it.ID] != 1 {
			t.Errorf("item %s appears %d times, want 1", it.ID, seen[it.ID])
		}
	}
}

func TestFilterAndSort_FeaturedFirst(t *testing.T) {
	items := []Item{
		{ID: "1", Category: "AI"},
		{ID: "2", Category: "AI", Featured: true},
		{ID: "3", Category: "Data"},
		{ID: "4", Category: "AI", Featured: true},
		{ID: "5", Category: "AI"},
	}

	for _, sel := range []Selector{All, Only("AI"), Only("Data")} {
		got := FilterAndSort(items, sel)
		seenPlain := false
		for _, it := range got {
			if !it.Featured {
				seenPlain = true
			} else if seenPlain {
				t.Errorf("%v: featured item %s follows a non-featured item", sel, it.ID)
			}
		}
	}
}

func TestFilterAndSort_Stable(t *testing.T) {
	var items []Item
	for i := 0; i < 50; i++ {
		items = append(items, Item{
			ID:       string(rune('A'+i%26)) + string(rune('a'+i/26)),
			Category: "AI",
			Featured: i%3 == 0,
		})
	}

	got := FilterAndSort(items, All)

	var wantFeatured, wantRest []string
	for _, it := range items {
		if it.Featured {
			wantFeatured = append(wantFeatured, it.ID)
		} else {
			wantRest = append(wantRest, it.ID)
		}
	}
	want := append(wantFeatured, wantRest...)

	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("unstable ordering (-want +got):\n%s", diff)
	}
}

func TestFilterAndSort_Idempotent(t *testing.T) {
	items := mockItems()

	for _, sel := range []Selector{All, Only("AI"), Only("Systems"), Only("NonExistent")} {
		first := FilterAndSort(items, sel)
		second := FilterAndSort(first, sel)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%v: re-filter changed result (-first +second):\n%s", sel, diff)
		}
	}

	first := FilterAndSort(items, All, ByDisplayOrder())
	second := FilterAndSort(first, All, ByDisplayOrder())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("display order re-filter changed result (-first +second):\n%s", diff)
	}
}

func TestFilterAndSort_ByDisplayOrder(t *testing.T) {
	items := []Item{
		{ID: "plain-3", Order: 3},
		{ID: "feat-2", Featured: true, Order: 2},
		{ID: "plain-1", Order: 1},
		{ID: "plain-none"},
		{ID: "feat-1", Featured: true, Order: 1},
		{ID: "plain-1b", Order: 1},
		{ID: "feat-none", Featured: true},
	}

	got := FilterAndSort(items, All, ByDisplayOrder())
	want := []string{"feat-none", "feat-1", "feat-2", "plain-none", "plain-1", "plain-1b", "plain-3"}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("display order mismatch (-want +got):\n%s", diff)
	}

	// Without the option the order field is ignored.
	got = FilterAndSort(items, All)
	want = []string{"feat-2", "feat-1", "feat-none", "plain-3", "plain-1", "plain-none", "plain-1b"}
	if diff := cmp.Diff(want, ids(got)); diff != "" {
		t.Errorf("input order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOrder(t *testing.T) {
	items := []Item{
		{ID: "b", Order: 2},
		{ID: "a", Order: 1},
	}

	opts, err := ParseOrder("")
	if err != nil || len(opts) != 0 {
		t.Fatalf("ParseOrder(\"\") = %v, %v", opts, err)
	}

	opts, err = ParseOrder(OrderDisplay)
	if err != nil {
		t.Fatalf("ParseOrder(display): %v", err)
	}
	if got := FilterAndSort(items, All, opts...); got[0].ID != "a" {
		t.Errorf("display order not applied: %v", got)
	}

	if _, err := ParseOrder("random"); !errors.Is(err, ErrUnknownOrder) {
		t.Errorf("err = %v, want ErrUnknownOrder", err)
	}
}
