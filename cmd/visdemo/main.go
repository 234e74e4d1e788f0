// Command visdemo runs a handful of built-in percent_visible/cover_for_token
// scenarios against the engine package and prints a report table, grounded
// on cmd/headless-report's flag-driven scenario-run-and-print pattern.
package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Cover-Engine/internal/config"
	"github.com/Garsondee/Cover-Engine/internal/cover"
	"github.com/Garsondee/Cover-Engine/internal/engine"
	"github.com/Garsondee/Cover-Engine/internal/geom"
	"github.com/Garsondee/Cover-Engine/internal/placeable"
)

// scenario builds a populated Context and the attacker/target pairs to
// report on.
type scenario struct {
	name        string
	description string
	build       func() (*engine.Context, placeable.TokenID, []placeable.TokenID)
}

func boxToken(id placeable.TokenID, cx, cy, half float64) *placeable.Token {
	return &placeable.Token{
		ID:            id,
		Footprint:     placeable.Shape{Platonic: geom.NewRectPolygon(geom.Rect{MinX: -half, MinY: -half, MaxX: half, MaxY: half}), Center: geom.Point{X: cx, Y: cy}},
		Elevation:     placeable.ElevationBand{ZBottom: 0, ZTop: 2},
		Disposition:   placeable.DispositionAlive,
		MaxCoverGrant: 1,
	}
}

func opaqueWall(id placeable.WallID, a, b geom.Point) *placeable.Wall {
	return &placeable.Wall{
		ID: id, A: a, B: b,
		Restriction: [4]placeable.RestrictionType{placeable.SenseSight: placeable.RestrictionOpaque},
		Elevation:   placeable.ElevationBand{ZBottom: 0, ZTop: 10},
	}
}

func scenarios() []scenario {
	return []scenario{
		{
			name:        "open-field",
			description: "no blockers between attacker and any target",
			build: func() (*engine.Context, placeable.TokenID, []placeable.TokenID) {
				c := engine.New(geom.Rect{MinX: -1000, MinY: -1000, MaxX: 1000, MaxY: 1000})
				c.RegisterToken(boxToken("attacker", 0, 0, 1))
				c.RegisterToken(boxToken("t1", 20, 0, 1))
				c.RegisterToken(boxToken("t2", 0, 20, 1))
				return c, "attacker", []placeable.TokenID{"t1", "t2"}
			},
		},
		{
			name:        "low-wall-corridor",
			description: "a single wall spans the full angular width to one target, missing the other",
			build: func() (*engine.Context, placeable.TokenID, []placeable.TokenID) {
				c := engine.New(geom.Rect{MinX: -1000, MinY: -1000, MaxX: 1000, MaxY: 1000})
				c.RegisterToken(boxToken("attacker", 0, 0, 1))
				c.RegisterToken(boxToken("behind-wall", 20, 0, 1))
				c.RegisterToken(boxToken("clear", 0, -30, 1))
				c.RegisterWall(opaqueWall("w1", geom.Point{X: 10, Y: -10}, geom.Point{X: 10, Y: 10}))
				return c, "attacker", []placeable.TokenID{"behind-wall", "clear"}
			},
		},
		{
			name:        "pillar",
			description: "a live token sitting directly between attacker and target",
			build: func() (*engine.Context, placeable.TokenID, []placeable.TokenID) {
				c := engine.New(geom.Rect{MinX: -1000, MinY: -1000, MaxX: 1000, MaxY: 1000})
				c.RegisterToken(boxToken("attacker", 0, 0, 1))
				c.RegisterToken(boxToken("target", 20, 0, 1))
				pillar := &placeable.Token{
					ID:            "pillar",
					Footprint:     placeable.Shape{Platonic: geom.NewRectPolygon(geom.Rect{MinX: -3, MinY: -3, MaxX: 3, MaxY: 3}), Center: geom.Point{X: 10, Y: 0}},
					Elevation:     placeable.ElevationBand{ZBottom: 0, ZTop: 2},
					Disposition:   placeable.DispositionAlive,
					MaxCoverGrant: 1,
				}
				c.RegisterToken(pillar)
				return c, "attacker", []placeable.TokenID{"target"}
			},
		},
		{
			name:        "directional-door",
			description: "a one-way wall blocks from one side only",
			build: func() (*engine.Context, placeable.TokenID, []placeable.TokenID) {
				c := engine.New(geom.Rect{MinX: -1000, MinY: -1000, MaxX: 1000, MaxY: 1000})
				c.RegisterToken(boxToken("attacker", 0, 0, 1))
				c.RegisterToken(boxToken("target", 20, 0, 1))
				c.RegisterWall(&placeable.Wall{
					ID: "door", A: geom.Point{X: 10, Y: -10}, B: geom.Point{X: 10, Y: 10},
					Restriction: [4]placeable.RestrictionType{placeable.SenseSight: placeable.RestrictionDirectional},
					Elevation:   placeable.ElevationBand{ZBottom: 0, ZTop: 10},
					Directional: true,
					Normal:      geom.Vector{X: 1, Y: 0}, // blocks rays travelling in -X only
				})
				return c, "attacker", []placeable.TokenID{"target"}
			},
		},
	}
}

type reportRow struct {
	scenario    string
	description string
	target      placeable.TokenID
	percent     float32
	cover       []placeable.EffectID
}

func runScenario(s scenario, algo config.LOSAlgorithm) []reportRow {
	c, attacker, targets := s.build()
	c.Settings.LOSAlgorithm = algo
	rows := make([]reportRow, 0, len(targets))
	for _, target := range targets {
		pct := c.PercentVisible(attacker, target, engine.PercentVisibleOpts{SenseKind: placeable.SenseSight})
		effects := c.CoverForToken(attacker, target, engine.CoverForTokenOpts{SenseKind: placeable.SenseSight, ActionKind: cover.ActionAll})
		rows = append(rows, reportRow{scenario: s.name, description: s.description, target: target, percent: pct, cover: effects})
	}
	return rows
}

func formatReport(rows []reportRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== visdemo report ===\n")
	for _, r := range rows {
		cover := "none"
		if len(r.cover) > 0 {
			ids := make([]string, len(r.cover))
			for i, e := range r.cover {
				ids[i] = string(e)
			}
			sort.Strings(ids)
			cover = strings.Join(ids, ",")
		}
		fmt.Fprintf(&b, "%-20s target=%-14s percent_visible=%.3f cover=%s  (%s)\n",
			r.scenario, r.target, r.percent, cover, r.description)
	}
	return b.String()
}

func parseAlgorithm(name string) (config.LOSAlgorithm, error) {
	switch config.LOSAlgorithm(name) {
	case config.AlgorithmPoints, config.AlgorithmGeometric, config.AlgorithmWebGL2, config.AlgorithmPerPixel:
		return config.LOSAlgorithm(name), nil
	default:
		return "", fmt.Errorf("unsupported algorithm %q (want one of points, geometric, webgl2, per-pixel)", name)
	}
}

func main() {
	var algoName string
	var copyToClipboard bool
	var only string
	flag.StringVar(&algoName, "algorithm", string(config.AlgorithmGeometric), "los algorithm: points, geometric, webgl2, per-pixel")
	flag.BoolVar(&copyToClipboard, "copy", false, "copy the report to the system clipboard instead of only printing it")
	flag.StringVar(&only, "scenario", "", "run only the named scenario (default: all)")
	flag.Parse()

	algo, err := parseAlgorithm(algoName)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	var rows []reportRow
	for _, s := range scenarios() {
		if only != "" && s.name != only {
			continue
		}
		rows = append(rows, runScenario(s, algo)...)
	}
	if len(rows) == 0 {
		fmt.Printf("error: no scenario named %q\n", only)
		return
	}

	report := formatReport(rows)
	fmt.Print(report)

	if copyToClipboard {
		if err := clipboard.WriteAll(report); err != nil {
			fmt.Println("warning: could not copy report to clipboard:", err)
			return
		}
		fmt.Println("(report copied to clipboard)")
	}
}
