package matchid

import "testing"

func TestStandaloneMatch(t *testing.T) {
	for _, id := range []string{"match-001", "ESPORTSTMNT01-2690210", ""} {
		if IsSeriesMatch(id) {
			t.Errorf("IsSeriesMatch(%q) = true, want false", id)
		}
		if got := BaseMatchID(id); got != id {
			t.Errorf("BaseMatchID(%q) = %q, want identity", id, got)
		}
		if got := GameNumber(id); got != 1 {
			t.Errorf("GameNumber(%q) = %d, want 1", id, got)
		}
	}
}

func TestSeriesMatch(t *testing.T) {
	cases := []struct {
		id   string
		base string
		game int
	}{
		{"match-001_1", "match-001", 1},
		{"match-001_3", "match-001", 3},
		{"match-001_7", "match-001", 7},
		{"team_a_vs_team_b_2", "team_a_vs_team_b", 2},
		{"a__5", "a_", 5},
	}
	for _, tc := range cases {
		if !IsSeriesMatch(tc.id) {
			t.Errorf("IsSeriesMatch(%q) = false", tc.id)
		}
		if got := BaseMatchID(tc.id); got != tc.base {
			t.Errorf("BaseMatchID(%q) = %q, want %q", tc.id, got, tc.base)
		}
		if got := GameNumber(tc.id); got != tc.game {
			t.Errorf("GameNumber(%q) = %d, want %d", tc.id, got, tc.game)
		}
	}
}

func TestGameNumberFallback(t *testing.T) {
	cases := []struct {
		id   string
		want int
	}{
		{"match-001_x", 2}, // unparseable suffix
		{"match-001_0", 2}, // below range
		{"match-001_8", 2}, // above range
		{"a_b_c_99", 4},    // four segments
		{"trailing_", 2},   // empty suffix
		{"_", 2},           // separator only
	}
	for _, tc := range cases {
		got := GameNumber(tc.id)
		if got != tc.want {
			t.Errorf("GameNumber(%q) = %d, want %d", tc.id, got, tc.want)
		}
		if got < 1 {
			t.Errorf("GameNumber(%q) = %d, must be >= 1", tc.id, got)
		}
	}
}

func TestComposeRoundTrip(t *testing.T) {
	for n := MinGame; n <= MaxGame; n++ {
		id := Compose("lck_2024_t1_geng", n)
		if BaseMatchID(id) != "lck_2024_t1_geng" {
			t.Errorf("BaseMatchID(%q) = %q", id, BaseMatchID(id))
		}
		if GameNumber(id) != n {
			t.Errorf("GameNumber(%q) = %d, want %d", id, GameNumber(id), n)
		}
	}
}
