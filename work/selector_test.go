package work

import (
	"encoding/json"
	"testing"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		token    string
		wantAll  bool
		wantCat  Category
		wantText string
	}{
		{"All", true, "", "All"},
		{"", false, "", ""},
		{"AI", false, "AI", "AI"},
		{"NonExistent", false, "NonExistent", "NonExistent"},
		{"all", false, "all", "all"},
	}

	for _, tt := range tests {
		s := ParseSelector(tt.token)
		if s.IsAll() != tt.wantAll {
			t.Errorf("ParseSelector(%q).IsAll() = %v, want %v", tt.token, s.IsAll(), tt.wantAll)
		}
		c, ok := s.Category()
		if ok == tt.wantAll {
			t.Errorf("ParseSelector(%q).Category() ok = %v", tt.token, ok)
		}
		if c != tt.wantCat {
			t.Errorf("ParseSelector(%q).Category() = %q, want %q", tt.token, c, tt.wantCat)
		}
		if s.String() != tt.wantText {
			t.Errorf("ParseSelector(%q).String() = %q, want %q", tt.token, s.String(), tt.wantText)
		}
	}
}

func TestSelector_ZeroValueIsAll(t *testing.T) {
	var s Selector
	if !s.IsAll() || s != All {
		t.Error("zero Selector should equal All")
	}
}

func TestSelector_JSON(t *testing.T) {
	var payload struct {
		Category Selector `json:"category"`
	}

	if err := json.Unmarshal([]byte(`{"category":"Systems"}`), &payload); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if payload.Category != Only("Systems") {
		t.Errorf("got %v, want Systems", payload.Category)
	}

	payload.Category = Only("AI")
	if err := json.Unmarshal([]byte(`{}`), &payload); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if payload.Category != Only("AI") {
		t.Errorf("absent field changed selector to %v", payload.Category)
	}

	var fresh struct {
		Category Selector `json:"category"`
	}
	if err := json.Unmarshal([]byte(`{"category":""}`), &fresh); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if fresh.Category != Only("") {
		t.Errorf("empty token = %v, want literal empty category", fresh.Category)
	}

	data, err := json.Marshal(struct {
		Category Selector `json:"category"`
	}{All})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"category":"All"}` {
		t.Errorf("Marshal = %s", data)
	}
}
