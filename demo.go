// ABOUTME: Demo JSON problem ingestion — this module's own minimal stand-in, since real XML ingestion is out of scope
// ABOUTME: Grounded on the teacher's common.go InitializePlaylist/LoadPlaylistForMode loading shape, adapted to encoding/json

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aperazzo/timetable-ga/problem"
)

type jsonTimePattern struct {
	ID     string `json:"id"`
	Days   string `json:"days"`
	Start  int    `json:"start"`
	Length int    `json:"length"`
}

type jsonClass struct {
	ID          string            `json:"id"`
	Limit       int               `json:"limit"`
	Times       []jsonTimePattern `json:"times"`
	Instructors []string          `json:"instructors"`
	Students    []string          `json:"students"`
}

type jsonRoom struct {
	ID       string   `json:"id"`
	Capacity int      `json:"capacity"`
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
}

type jsonGroupConstraint struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"`
	Strength string   `json:"strength"`
	Members  []string `json:"members"`
}

type jsonProblem struct {
	Classes          []jsonClass           `json:"classes"`
	Rooms            []jsonRoom            `json:"rooms"`
	GroupConstraints []jsonGroupConstraint `json:"group_constraints"`
}

// loadDemoProblem reads a JSON problem file and converts it into the
// engine's RawProblem shape. This format is this repo's own invention: real
// XML ingestion is out of scope, so the CLI needs some way to hand the
// engine a problem instance.
func loadDemoProblem(path string) (problem.RawProblem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return problem.RawProblem{}, fmt.Errorf("demo: read %s: %w", path, err)
	}
	var jp jsonProblem
	if err := json.Unmarshal(data, &jp); err != nil {
		return problem.RawProblem{}, fmt.Errorf("demo: parse %s: %w", path, err)
	}

	raw := problem.RawProblem{
		Classes: make([]problem.RawClass, 0, len(jp.Classes)),
		Rooms:   make([]problem.RawRoom, 0, len(jp.Rooms)),
	}
	for _, jc := range jp.Classes {
		times := make([]problem.TimePattern, 0, len(jc.Times))
		for _, jt := range jc.Times {
			days, err := parseDays(jt.Days)
			if err != nil {
				return problem.RawProblem{}, fmt.Errorf("demo: class %s time %s: %w", jc.ID, jt.ID, err)
			}
			times = append(times, problem.TimePattern{
				ID:           jt.ID,
				OwnerClassID: jc.ID,
				Days:         days,
				Start:        jt.Start,
				Length:       jt.Length,
			})
		}
		raw.Classes = append(raw.Classes, problem.RawClass{
			ID:             jc.ID,
			Limit:          jc.Limit,
			CandidateTimes: times,
			Instructors:    jc.Instructors,
			Students:       jc.Students,
		})
	}
	for _, jr := range jp.Rooms {
		var loc *problem.Point
		if jr.X != nil || jr.Y != nil {
			p := problem.Point{}
			if jr.X != nil {
				p.X = *jr.X
			}
			if jr.Y != nil {
				p.Y = *jr.Y
			}
			loc = &p
		}
		raw.Rooms = append(raw.Rooms, problem.RawRoom{ID: jr.ID, Capacity: jr.Capacity, Location: loc})
	}
	for _, jg := range jp.GroupConstraints {
		kind, err := parseKind(jg.Kind)
		if err != nil {
			return problem.RawProblem{}, fmt.Errorf("demo: group constraint %s: %w", jg.ID, err)
		}
		strength, err := parseStrength(jg.Strength)
		if err != nil {
			return problem.RawProblem{}, fmt.Errorf("demo: group constraint %s: %w", jg.ID, err)
		}
		raw.GroupConstraints = append(raw.GroupConstraints, problem.RawGroupConstraint{
			ID: jg.ID, Kind: kind, Strength: strength, Members: jg.Members,
		})
	}
	return raw, nil
}

func parseDays(s string) ([7]bool, error) {
	var days [7]bool
	if len(s) != 7 {
		return days, fmt.Errorf("days bitstring must be 7 characters, got %q", s)
	}
	for i, ch := range s {
		switch ch {
		case '1':
			days[i] = true
		case '0':
			days[i] = false
		default:
			return days, fmt.Errorf("days bitstring must be 0/1 only, got %q", s)
		}
	}
	return days, nil
}

func parseKind(s string) (problem.ConstraintKind, error) {
	switch s {
	case "BTB":
		return problem.BTB, nil
	case "SAME_TIME":
		return problem.SameTime, nil
	case "DIFF_TIME":
		return problem.DiffTime, nil
	default:
		return 0, fmt.Errorf("unknown group constraint kind %q", s)
	}
}

func parseStrength(s string) (problem.ConstraintStrength, error) {
	switch s {
	case "PROHIBITED":
		return problem.Prohibited, nil
	case "STRONGLY_DISCOURAGED":
		return problem.StronglyDiscouraged, nil
	case "DISCOURAGED":
		return problem.Discouraged, nil
	case "PREFERRED":
		return problem.Preferred, nil
	case "STRONGLY_PREFERRED":
		return problem.StronglyPreferred, nil
	case "REQUIRED":
		return problem.Required, nil
	default:
		return 0, fmt.Errorf("unknown group constraint strength %q", s)
	}
}
