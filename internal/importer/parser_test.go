package importer

import (
	"strings"
	"testing"
)

const sampleCSV = `
"Legs · Day 2 · Week 4";"2026-02-19 4:54 h";"1:02 hr"
"1. Hack Squats · Machine · 8 reps";"WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps"
#;KG;REPS;RIR
1;115;8;1
2;115;10;1
3;115;10;1
"2. Hyperextensions on Roman Chair · Bodyweight · 10 reps";"WU1 · +0 kg · 8 reps"
#;KG;REPS;RIR
1;+35;10;0
2;+35;9;1
"3. Standing Calf Raises · Machine · 12 reps"
#;KG;REPS;RIR
1;157,5;11;1
2;157,5;11;0

"Push · Day 1 · Week 4";"2026-02-17 5:04 h";"1:12 hr"
"1. Bench Press · Barbell · 6 reps";"WU1 · 47,5 kg · 8 reps"
#;KG;REPS;RIR
1;102,5;6;0
2;100;6;0
`

// TestParseCompleteSessions is the parser's happy-path test: a multi-session
// export with warmups, European decimals, and bodyweight-plus notation.
func TestParseCompleteSessions(t *testing.T) {
	sessions, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("sessions = %d, want 2", len(sessions))
	}

	s1 := sessions[0]
	if s1.Name != "Legs · Day 2 · Week 4" {
		t.Errorf("s1.Name = %q", s1.Name)
	}
	if s1.Date.Year() != 2026 || s1.Date.Month() != 2 || s1.Date.Day() != 19 {
		t.Errorf("s1.Date = %v, want 2026-02-19", s1.Date)
	}
	if len(s1.Exercises) != 3 {
		t.Fatalf("s1 exercises = %d, want 3", len(s1.Exercises))
	}

	// Hack Squats: 2 warmups + 3 working sets
	ex1 := s1.Exercises[0]
	if ex1.Name != "Hack Squats" || ex1.Equipment != "Machine" {
		t.Errorf("ex1 = %q / %q", ex1.Name, ex1.Equipment)
	}
	if ex1.TargetReps != 8 {
		t.Errorf("ex1.TargetReps = %d, want 8", ex1.TargetReps)
	}
	if len(ex1.Sets) != 5 {
		t.Errorf("ex1 sets = %d, want 5", len(ex1.Sets))
	}
	if got := ex1.WorkingSets(); len(got) != 3 {
		t.Errorf("ex1 working sets = %d, want 3", len(got))
	}

	// Hyperextensions: bodyweight-plus working weight
	ex2 := s1.Exercises[1]
	working := ex2.WorkingSets()
	if len(working) != 2 {
		t.Fatalf("ex2 working sets = %d, want 2", len(working))
	}
	if working[0].Weight != 35 {
		t.Errorf("ex2 set 1 weight = %v, want 35", working[0].Weight)
	}

	// Calf raises: no warmups, European decimal weight
	ex3 := s1.Exercises[2]
	if len(ex3.Sets) != 2 {
		t.Fatalf("ex3 sets = %d, want 2", len(ex3.Sets))
	}
	if ex3.Sets[0].Weight != 157.5 {
		t.Errorf("ex3 set 1 weight = %v, want 157.5", ex3.Sets[0].Weight)
	}

	s2 := sessions[1]
	if s2.Name != "Push · Day 1 · Week 4" {
		t.Errorf("s2.Name = %q", s2.Name)
	}
	if len(s2.Exercises) != 1 {
		t.Fatalf("s2 exercises = %d, want 1", len(s2.Exercises))
	}
}

// TestWarmupParsing verifies warmup extraction from the exercise header's
// second field, including the <br> separator.
func TestWarmupParsing(t *testing.T) {
	sets := parseWarmups("WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps")
	if len(sets) != 2 {
		t.Fatalf("warmup sets = %d, want 2", len(sets))
	}
	if sets[0].Weight != 37.5 || sets[0].Reps != 9 || !sets[0].IsWarmup {
		t.Errorf("wu1 = %+v", sets[0])
	}
	if sets[1].Weight != 72.5 {
		t.Errorf("wu2 weight = %v, want 72.5", sets[1].Weight)
	}
}

// TestParseWeight verifies European decimals and bodyweight-plus notation.
func TestParseWeight(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"102,5", 102.5},
		{"115", 115},
		{"+35", 35},
		{"+0", 0},
	}
	for _, tc := range cases {
		if got := parseWeight(tc.in); got != tc.want {
			t.Errorf("parseWeight(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

// TestFullName verifies the equipment variant is folded into the exercise
// name so different machines count as different movements.
func TestFullName(t *testing.T) {
	ex := SessionExercise{Name: "Squat", Equipment: "Smith machine"}
	if got := ex.FullName(); got != "Squat (Smith machine)" {
		t.Errorf("FullName = %q", got)
	}
	bare := SessionExercise{Name: "Pull-ups"}
	if got := bare.FullName(); got != "Pull-ups" {
		t.Errorf("FullName = %q, want bare name", got)
	}
}

// TestEmptyInput verifies that empty input returns no sessions without error.
func TestEmptyInput(t *testing.T) {
	sessions, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("sessions = %d, want 0", len(sessions))
	}
}

// TestSetDataWithoutExercise verifies orphan set rows are rejected.
func TestSetDataWithoutExercise(t *testing.T) {
	_, err := Parse(strings.NewReader("1;115;8;1\n"))
	if err == nil {
		t.Fatal("expected error for set data before any exercise header")
	}
}
