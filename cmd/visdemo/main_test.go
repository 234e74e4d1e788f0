package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/Cover-Engine/internal/config"
	"github.com/Garsondee/Cover-Engine/internal/placeable"
)

func TestParseAlgorithm_AcceptsAllFourNames(t *testing.T) {
	for _, name := range []string{"points", "geometric", "webgl2", "per-pixel"} {
		got, err := parseAlgorithm(name)
		if err != nil {
			t.Fatalf("parseAlgorithm(%q) returned error: %v", name, err)
		}
		if string(got) != name {
			t.Fatalf("parseAlgorithm(%q) = %q, want %q", name, got, name)
		}
	}
}

func TestParseAlgorithm_RejectsUnknownName(t *testing.T) {
	if _, err := parseAlgorithm("raytraced"); err == nil {
		t.Fatal("expected an error for an unsupported algorithm name")
	}
}

func TestRunScenario_OpenField_AllTargetsFullyVisible(t *testing.T) {
	var open scenario
	for _, s := range scenarios() {
		if s.name == "open-field" {
			open = s
		}
	}
	rows := runScenario(open, config.AlgorithmGeometric)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	for _, r := range rows {
		if r.percent != 1 {
			t.Errorf("target %s percent_visible = %v, want 1 in the open-field scenario", r.target, r.percent)
		}
		if len(r.cover) != 0 {
			t.Errorf("target %s cover = %v, want none in the open-field scenario", r.target, r.cover)
		}
	}
}

func TestRunScenario_LowWallCorridor_OneBlockedOneClear(t *testing.T) {
	var s scenario
	for _, sc := range scenarios() {
		if sc.name == "low-wall-corridor" {
			s = sc
		}
	}
	rows := runScenario(s, config.AlgorithmGeometric)
	byTarget := map[placeable.TokenID]reportRow{}
	for _, r := range rows {
		byTarget[r.target] = r
	}
	if byTarget["behind-wall"].percent != 0 {
		t.Errorf("behind-wall percent_visible = %v, want 0", byTarget["behind-wall"].percent)
	}
	if byTarget["clear"].percent != 1 {
		t.Errorf("clear percent_visible = %v, want 1", byTarget["clear"].percent)
	}
}

func TestFormatReport_IncludesEveryRowAndSortsCoverIDs(t *testing.T) {
	rows := []reportRow{
		{scenario: "s", description: "d", target: "t1", percent: 0, cover: []placeable.EffectID{"three-quarters", "full"}},
	}
	out := formatReport(rows)
	if !strings.Contains(out, "target=t1") {
		t.Fatalf("report missing target row: %s", out)
	}
	if !strings.Contains(out, "cover=full,three-quarters") {
		t.Fatalf("report did not sort cover ids: %s", out)
	}
}
