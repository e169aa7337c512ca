// ABOUTME: Problem Loader (C1): filters raw input and builds the indexed Problem instance
// ABOUTME: Grounded on the typed domain+loader split in luccasniccolas177-timetabling-udp/internal/loader

package problem

import (
	"fmt"
	"sort"
)

// LoadReport is the loader's summary of what was filtered.
type LoadReport struct {
	ClassesBefore, ClassesAfter int
	RoomsBefore, RoomsAfter     int
	DroppedClasses              []string
	DroppedRooms                []string
}

// Load materializes an immutable Problem from raw input: drops classes with
// no candidate time patterns, drops rooms whose capacity is strictly less
// than the smallest remaining class limit, and builds the compact index
// tables C2-C5 read. Returns ErrEmptyProblem if the filtered result has zero
// classes or zero rooms.
func Load(raw RawProblem) (*Problem, LoadReport, error) {
	report := LoadReport{
		ClassesBefore: len(raw.Classes),
		RoomsBefore:   len(raw.Rooms),
	}

	classes := make([]RawClass, 0, len(raw.Classes))
	for _, c := range raw.Classes {
		if len(c.CandidateTimes) == 0 {
			report.DroppedClasses = append(report.DroppedClasses, c.ID)
			continue
		}
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	report.ClassesAfter = len(classes)

	minLimit := 0
	for i, c := range classes {
		if i == 0 || c.Limit < minLimit {
			minLimit = c.Limit
		}
	}

	rooms := make([]RawRoom, 0, len(raw.Rooms))
	for _, r := range raw.Rooms {
		if len(classes) > 0 && r.Capacity < minLimit {
			report.DroppedRooms = append(report.DroppedRooms, r.ID)
			continue
		}
		rooms = append(rooms, r)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	report.RoomsAfter = len(rooms)

	if len(classes) == 0 || len(rooms) == 0 {
		return nil, report, fmt.Errorf("load: %d classes, %d rooms after filtering: %w", len(classes), len(rooms), ErrEmptyProblem)
	}

	p := &Problem{
		classIndex:        make(map[string]int, len(classes)),
		roomIndex:         make(map[string]int, len(rooms)),
		timeIndex:         make(map[string]int),
		InstructorClasses: make(map[string][]int),
		StudentClasses:    make(map[string][]int),
	}

	p.Rooms = make([]Room, len(rooms))
	for i, r := range rooms {
		loc := Point{}
		if r.Location != nil {
			loc = *r.Location
		}
		p.Rooms[i] = Room{ID: r.ID, Capacity: r.Capacity, Location: loc}
		p.roomIndex[r.ID] = i
	}

	p.Classes = make([]Class, len(classes))
	for ci, c := range classes {
		p.classIndex[c.ID] = ci
		timeIdx := make([]int, 0, len(c.CandidateTimes))
		for _, t := range c.CandidateTimes {
			gi := len(p.Times)
			p.Times = append(p.Times, IndexedTime{TimePattern: t, ClassIdx: ci})
			p.timeIndex[t.ID] = gi
			timeIdx = append(timeIdx, gi)
		}
		p.Classes[ci] = Class{
			ID:          c.ID,
			Limit:       c.Limit,
			TimeIdx:     timeIdx,
			Instructors: c.Instructors,
			Students:    c.Students,
		}
		for _, instr := range c.Instructors {
			p.InstructorClasses[instr] = append(p.InstructorClasses[instr], ci)
		}
		for _, stu := range c.Students {
			p.StudentClasses[stu] = append(p.StudentClasses[stu], ci)
		}
	}

	for _, g := range raw.GroupConstraints {
		gc := GroupConstraint{ID: g.ID, Kind: g.Kind, Strength: g.Strength}
		for _, mid := range g.Members {
			if idx, ok := p.classIndex[mid]; ok {
				gc.MemberIdx = append(gc.MemberIdx, idx)
				gc.MemberIDs = append(gc.MemberIDs, mid)
			}
			// Members referencing a dropped/unknown class fold into "no
			// contribution" rather than erroring the whole constraint out.
		}
		p.GroupConstraints = append(p.GroupConstraints, gc)
	}

	return p, report, nil
}
