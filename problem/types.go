// ABOUTME: Immutable problem-instance data model for the timetable optimizer
// ABOUTME: Classes, rooms, time patterns and group constraints, plus the indexed lookup tables C2-C5 read

package problem

// ConstraintKind is the coupling relationship a GroupConstraint expresses
// between its member classes.
type ConstraintKind int

const (
	BTB ConstraintKind = iota
	SameTime
	DiffTime
)

func (k ConstraintKind) String() string {
	switch k {
	case BTB:
		return "BTB"
	case SameTime:
		return "SAME_TIME"
	case DiffTime:
		return "DIFF_TIME"
	default:
		return "UNKNOWN"
	}
}

// ConstraintStrength ranks how strongly a GroupConstraint is held, from
// forbidding the outcome to requiring it.
type ConstraintStrength int

const (
	Prohibited ConstraintStrength = iota
	StronglyDiscouraged
	Discouraged
	Preferred
	StronglyPreferred
	Required
)

func (s ConstraintStrength) String() string {
	switch s {
	case Prohibited:
		return "PROHIBITED"
	case StronglyDiscouraged:
		return "STRONGLY_DISCOURAGED"
	case Discouraged:
		return "DISCOURAGED"
	case Preferred:
		return "PREFERRED"
	case StronglyPreferred:
		return "STRONGLY_PREFERRED"
	case Required:
		return "REQUIRED"
	default:
		return "UNKNOWN"
	}
}

// Point is a 2D room coordinate, in arbitrary campus-map units.
type Point struct {
	X, Y float64
}

// TimePattern is a weekly recurrence: a day-of-week bitmask plus a start slot
// and a length, both measured in 5-minute slots. Days[0] is Monday.
type TimePattern struct {
	ID            string
	OwnerClassID  string
	Days          [7]bool
	Start, Length int
}

// End returns the exclusive end slot, Start+Length.
func (t TimePattern) End() int { return t.Start + t.Length }

// Overlaps implements the O1 predicate: true when two patterns share a day
// and their [Start, End) ranges intersect.
func (t TimePattern) Overlaps(o TimePattern) bool {
	sharesDay := false
	for i := range t.Days {
		if t.Days[i] && o.Days[i] {
			sharesDay = true
			break
		}
	}
	if !sharesDay {
		return false
	}
	return !(t.End() <= o.Start || o.End() <= t.Start)
}

// SharesDayAdjacent is true when t and o share a day and one ends exactly
// where the other starts (back-to-back, O1's sibling predicate for S2/BTB).
func (t TimePattern) SharesDayAdjacent(o TimePattern) bool {
	sharesDay := false
	for i := range t.Days {
		if t.Days[i] && o.Days[i] {
			sharesDay = true
			break
		}
	}
	if !sharesDay {
		return false
	}
	return t.End() == o.Start || o.End() == t.Start
}

// SharesDay is true when t and o have at least one weekday bit in common.
func (t TimePattern) SharesDay(o TimePattern) bool {
	for i := range t.Days {
		if t.Days[i] && o.Days[i] {
			return true
		}
	}
	return false
}

// RawClass is the external (pre-load) shape of a class: §6's Class input.
type RawClass struct {
	ID             string
	Limit          int
	CandidateTimes []TimePattern
	Instructors    []string
	Students       []string
}

// RawRoom is the external (pre-load) shape of a room: §6's Room input.
type RawRoom struct {
	ID       string
	Capacity int
	Location *Point // nil defaults to origin
}

// RawGroupConstraint is the external (pre-load) shape of a GroupConstraint.
type RawGroupConstraint struct {
	ID       string
	Kind     ConstraintKind
	Strength ConstraintStrength
	Members  []string
}

// RawProblem is the unvalidated, unindexed input to Load: §6's Problem input.
type RawProblem struct {
	Classes          []RawClass
	Rooms            []RawRoom
	GroupConstraints []RawGroupConstraint
}

// Class is a loaded, indexed class: a compact position in Problem.Classes,
// its enrollment limit, the global time-pattern indices it may be assigned
// to, and its instructor/student membership.
type Class struct {
	ID          string
	Limit       int
	TimeIdx     []int // indices into Problem.Times, this class's candidate set
	Instructors []string
	Students    []string
}

// Room is a loaded, indexed room.
type Room struct {
	ID       string
	Capacity int
	Location Point
}

// GroupConstraint is a loaded group constraint with members resolved to
// compact class indices.
type GroupConstraint struct {
	ID         string
	Kind       ConstraintKind
	Strength   ConstraintStrength
	MemberIdx  []int
	MemberIDs  []string
}

// IndexedTime is a TimePattern tagged with the compact index of the class it
// belongs to, so the evaluator can check gene membership (invariant I2)
// without a map lookup.
type IndexedTime struct {
	TimePattern
	ClassIdx int
}

// Problem is the immutable, indexed instance that C2-C5 read. It is built
// once by Load and never copied; chromosomes reference it by pointer.
type Problem struct {
	Classes          []Class
	Rooms            []Room
	Times            []IndexedTime
	GroupConstraints []GroupConstraint

	classIndex map[string]int
	roomIndex  map[string]int
	timeIndex  map[string]int

	InstructorClasses map[string][]int
	StudentClasses    map[string][]int
}

// ClassIndex returns the compact index of class id, or -1 if unknown.
func (p *Problem) ClassIndex(id string) int {
	if i, ok := p.classIndex[id]; ok {
		return i
	}
	return -1
}

// RoomIndex returns the compact index of room id, or -1 if unknown.
func (p *Problem) RoomIndex(id string) int {
	if i, ok := p.roomIndex[id]; ok {
		return i
	}
	return -1
}

// TimeIndex returns the compact global index of time-pattern id, or -1 if unknown.
func (p *Problem) TimeIndex(id string) int {
	if i, ok := p.timeIndex[id]; ok {
		return i
	}
	return -1
}

// NumClasses is the number of classes surviving load.
func (p *Problem) NumClasses() int { return len(p.Classes) }

// NumRooms is the number of rooms surviving load.
func (p *Problem) NumRooms() int { return len(p.Rooms) }

// SuitableRooms returns the indices of rooms whose capacity covers limit,
// in Problem.Rooms order.
func (p *Problem) SuitableRooms(limit int) []int {
	out := make([]int, 0, len(p.Rooms))
	for i, r := range p.Rooms {
		if r.Capacity >= limit {
			out = append(out, i)
		}
	}
	return out
}
