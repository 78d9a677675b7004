package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/seolfor/cryptward/internal/tactics"
)

type runStats struct {
	runIndex int
	seed     int64

	turnsRun        int
	playerSurvived  bool
	playerHealth    int
	firstHitTurn    int
	firstDefeatTurn int
	frozenTurns     int

	steps     int
	attacks   int
	charges   int
	passes    int
	defeats   int
	knockback int

	pathNotFound int
	noLegalMove  int
	corruptData  int

	defeatCauses map[string]int
}

func main() {
	var runs int
	var turns int
	var seedBase int64
	var seedStep int64
	var scenario string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&turns, "turns", 60, "turns per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "skirmish", "scenario name")
	flag.BoolVar(&verbose, "verbose", false, "verbose decision logging")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if turns <= 0 {
		fmt.Println("error: -turns must be > 0")
		return
	}
	if scenario != "skirmish" {
		fmt.Printf("error: unsupported scenario %q (supported: skirmish)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Tactics Report ===\n")
	fmt.Printf("scenario=%s runs=%d turns=%d seed_base=%d seed_step=%d\n\n", scenario, runs, turns, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenarioSkirmish(i+1, seed, turns, verbose)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func runScenarioSkirmish(runIndex int, seed int64, turns int, verbose bool) runStats {
	ts := tactics.NewTestSim(
		tactics.WithGridSize(16, 16),
		tactics.WithSeed(seed),
		tactics.WithVerbose(verbose),
		tactics.WithRandomWalls(28),
		tactics.WithExit(14, 14),
		tactics.WithSpikes(4, 10),
		tactics.WithSpikes(11, 5),
		tactics.WithPlayer(8, 8),
		tactics.WithScatteredEnemies(8),
	)

	ts.RunUntil(func(ts *tactics.TestSim) bool {
		return ts.Player.Health <= 0 || len(ts.Coord.Roster().Alive()) == 0
	}, turns)

	stats := runStats{
		runIndex:       runIndex,
		seed:           seed,
		turnsRun:       ts.Coord.Session().Turn,
		playerSurvived: ts.Player.Health > 0,
		playerHealth:   ts.Player.Health,
		defeatCauses:   map[string]int{},
	}

	firstHit := -1
	firstDefeat := -1
	for _, report := range ts.Reports {
		if report.Frozen {
			stats.frozenTurns++
		}
		collect := func(o tactics.Outcome) {
			switch o.Kind {
			case tactics.OutcomePlayerDamaged:
				if firstHit < 0 {
					firstHit = report.Turn
				}
			case tactics.OutcomeKnockback:
				stats.knockback++
			case tactics.OutcomeEnemyDefeated:
				if firstDefeat < 0 {
					firstDefeat = report.Turn
				}
				stats.defeats++
				stats.defeatCauses[o.Cause]++
			}
		}
		for _, o := range report.Hazards {
			collect(o)
		}
		for _, en := range report.Entries {
			switch en.Move.Kind {
			case tactics.MoveStep:
				stats.steps++
			case tactics.MoveAttack:
				stats.attacks++
			case tactics.MoveCharge:
				stats.charges++
			case tactics.MovePass:
				stats.passes++
			}
			for _, o := range en.Outcomes {
				collect(o)
			}
		}
	}
	stats.firstHitTurn = firstHit
	stats.firstDefeatTurn = firstDefeat

	stats.pathNotFound = ts.SimLog.CountCategory("plan", "path_not_found")
	stats.noLegalMove = ts.SimLog.CountCategory("plan", "no_legal_move")
	stats.corruptData = ts.SimLog.CountCategory("plan", "data_integrity")

	return stats
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result: turns=%d player_survived=%v player_health=%d first_hit=%d first_defeat=%d frozen_turns=%d\n",
		rs.turnsRun, rs.playerSurvived, rs.playerHealth, rs.firstHitTurn, rs.firstDefeatTurn, rs.frozenTurns)
	fmt.Printf("moves: step=%d attack=%d charge=%d pass=%d\n",
		rs.steps, rs.attacks, rs.charges, rs.passes)
	fmt.Printf("combat: defeats=%d knockbacks=%d causes=%s\n",
		rs.defeats, rs.knockback, formatCauses(rs.defeatCauses))
	fmt.Printf("planner: path_not_found=%d no_legal_move=%d data_integrity=%d\n\n",
		rs.pathNotFound, rs.noLegalMove, rs.corruptData)
}

func printAggregate(all []runStats) {
	totalDefeats := 0
	totalKnockbacks := 0
	totalAttacks := 0
	totalCharges := 0
	totalPasses := 0
	totalPathMiss := 0
	survived := 0
	causes := map[string]int{}
	hitTurns := make([]int, 0, len(all))

	for _, rs := range all {
		totalDefeats += rs.defeats
		totalKnockbacks += rs.knockback
		totalAttacks += rs.attacks
		totalCharges += rs.charges
		totalPasses += rs.passes
		totalPathMiss += rs.pathNotFound
		if rs.playerSurvived {
			survived++
		}
		if rs.firstHitTurn >= 0 {
			hitTurns = append(hitTurns, rs.firstHitTurn)
		}
		for cause, n := range rs.defeatCauses {
			causes[cause] += n
		}
	}

	n := len(all)
	fmt.Printf("=== Aggregate (%d runs) ===\n", n)
	fmt.Printf("player_survival: %d/%d\n", survived, n)
	fmt.Printf("first_hit_turn: median=%d\n", median(hitTurns))
	fmt.Printf("avg_per_run: attacks=%.1f charges=%.1f passes=%.1f defeats=%.1f knockbacks=%.1f path_not_found=%.1f\n",
		avg(totalAttacks, n), avg(totalCharges, n), avg(totalPasses, n),
		avg(totalDefeats, n), avg(totalKnockbacks, n), avg(totalPathMiss, n))
	fmt.Printf("defeat_causes: %s\n", formatCauses(causes))
}

func avg(total, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n)
}

// median returns the middle value, or -1 for an empty slice.
func median(vals []int) int {
	if len(vals) == 0 {
		return -1
	}
	sorted := append([]int(nil), vals...)
	sort.Ints(sorted)
	return sorted[len(sorted)/2]
}

// formatCauses renders a cause→count map deterministically.
func formatCauses(causes map[string]int) string {
	if len(causes) == 0 {
		return "(none)"
	}
	keys := make([]string, 0, len(causes))
	for k := range causes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, causes[k]))
	}
	return strings.Join(parts, " ")
}
