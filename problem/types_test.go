package problem

import "testing"

func TestTimePatternOverlaps(t *testing.T) {
	mon := func(start, length int) TimePattern {
		var days [7]bool
		days[0] = true
		return TimePattern{Days: days, Start: start, Length: length}
	}

	tests := []struct {
		name     string
		a, b     TimePattern
		wantOver bool
	}{
		{"identical slot overlaps", mon(96, 12), mon(96, 12), true},
		{"touching ends do not overlap", mon(96, 12), mon(108, 12), false},
		{"partial overlap", mon(96, 12), mon(100, 12), true},
		{"different day never overlaps", mon(96, 12), TimePattern{Days: [7]bool{1: true}, Start: 96, Length: 12}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.wantOver {
				t.Errorf("Overlaps = %v, want %v", got, tt.wantOver)
			}
		})
	}
}

func TestTimePatternSharesDayAdjacent(t *testing.T) {
	mon := func(start, length int) TimePattern {
		var days [7]bool
		days[0] = true
		return TimePattern{Days: days, Start: start, Length: length}
	}

	a := mon(96, 12)  // ends at 108
	b := mon(108, 12) // starts at 108: back-to-back
	if !a.SharesDayAdjacent(b) {
		t.Errorf("want back-to-back patterns to be adjacent")
	}

	c := mon(120, 12)
	if a.SharesDayAdjacent(c) {
		t.Errorf("want non-adjacent patterns to report false")
	}
}

func TestSuitableRooms(t *testing.T) {
	p := &Problem{Rooms: []Room{
		{ID: "a", Capacity: 10},
		{ID: "b", Capacity: 30},
		{ID: "c", Capacity: 50},
	}}

	got := p.SuitableRooms(25)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("SuitableRooms(25) = %v, want [1 2]", got)
	}
}
