package main

import (
	"testing"
)

func TestMedian(t *testing.T) {
	if got := median(nil); got != -1 {
		t.Errorf("median of empty slice should be -1, got %d", got)
	}
	if got := median([]int{7}); got != 7 {
		t.Errorf("median of one value should be that value, got %d", got)
	}
	if got := median([]int{9, 1, 5}); got != 5 {
		t.Errorf("median of {9,1,5} should be 5, got %d", got)
	}
	// Even count takes the upper-middle value.
	if got := median([]int{4, 1, 3, 2}); got != 3 {
		t.Errorf("median of {4,1,3,2} should be 3, got %d", got)
	}
}

func TestFormatCauses(t *testing.T) {
	if got := formatCauses(nil); got != "(none)" {
		t.Errorf("empty causes should render (none), got %q", got)
	}
	got := formatCauses(map[string]int{"spikes": 2, "bomb": 1, "attack": 3})
	want := "attack=3 bomb=1 spikes=2"
	if got != want {
		t.Errorf("causes should render sorted: got %q want %q", got, want)
	}
}

func TestRunScenarioSkirmish_Deterministic(t *testing.T) {
	a := runScenarioSkirmish(1, 42, 20, false)
	b := runScenarioSkirmish(1, 42, 20, false)

	if a.turnsRun != b.turnsRun || a.playerHealth != b.playerHealth ||
		a.defeats != b.defeats || a.attacks != b.attacks || a.steps != b.steps {
		t.Errorf("identical seeds diverged: %+v vs %+v", a, b)
	}
	if a.turnsRun > 20 {
		t.Errorf("run exceeded the turn budget: %d", a.turnsRun)
	}
	if a.corruptData != 0 {
		t.Errorf("generated roster should never trip data integrity, got %d", a.corruptData)
	}
}
