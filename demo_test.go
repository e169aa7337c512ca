package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDemoProblem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problem.json")
	body := `{
		"classes": [
			{"id": "c1", "limit": 10, "times": [{"id": "t1", "days": "1000000", "start": 96, "length": 12}], "instructors": ["i1"]}
		],
		"rooms": [
			{"id": "r1", "capacity": 30, "x": 1.5, "y": 2.5}
		],
		"group_constraints": [
			{"id": "g1", "kind": "BTB", "strength": "DISCOURAGED", "members": ["c1"]}
		]
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	raw, err := loadDemoProblem(path)
	if err != nil {
		t.Fatalf("loadDemoProblem: %v", err)
	}
	if len(raw.Classes) != 1 || raw.Classes[0].ID != "c1" {
		t.Fatalf("unexpected classes: %+v", raw.Classes)
	}
	if len(raw.Classes[0].CandidateTimes) != 1 || !raw.Classes[0].CandidateTimes[0].Days[0] {
		t.Fatalf("unexpected time pattern: %+v", raw.Classes[0].CandidateTimes)
	}
	if raw.Rooms[0].Location == nil || raw.Rooms[0].Location.X != 1.5 {
		t.Fatalf("unexpected room location: %+v", raw.Rooms[0].Location)
	}
	if len(raw.GroupConstraints) != 1 {
		t.Fatalf("unexpected group constraints: %+v", raw.GroupConstraints)
	}
}

func TestParseDays(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"1000000", false},
		{"0000001", false},
		{"10000", true},  // wrong length
		{"100000x", true}, // bad character
	}
	for _, tt := range tests {
		_, err := parseDays(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDays(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestParseKindAndStrength(t *testing.T) {
	if _, err := parseKind("BTB"); err != nil {
		t.Errorf("parseKind(BTB): %v", err)
	}
	if _, err := parseKind("NONSENSE"); err == nil {
		t.Error("want error for unknown kind")
	}
	if _, err := parseStrength("REQUIRED"); err != nil {
		t.Errorf("parseStrength(REQUIRED): %v", err)
	}
	if _, err := parseStrength("NONSENSE"); err == nil {
		t.Error("want error for unknown strength")
	}
}
