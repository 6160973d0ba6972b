package main

import (
	"testing"
	"time"
)

func TestDebounceTriggersCollapsesBurst(t *testing.T) {
	base := time.Unix(0, 0)
	events := []time.Time{
		base,
		base.Add(10 * time.Millisecond),
		base.Add(20 * time.Millisecond),
	}
	got := debounceTriggers(events, 100*time.Millisecond)
	if len(got) != 1 {
		t.Fatalf("expected one collapsed trigger, got %d: %v", len(got), got)
	}
	if !got[0].Equal(events[2]) {
		t.Fatalf("expected trigger at last event in burst %v, got %v", events[2], got[0])
	}
}

func TestDebounceTriggersSeparatesDistantEvents(t *testing.T) {
	base := time.Unix(0, 0)
	events := []time.Time{
		base,
		base.Add(200 * time.Millisecond),
	}
	got := debounceTriggers(events, 100*time.Millisecond)
	if len(got) != 2 {
		t.Fatalf("expected two separate triggers, got %d: %v", len(got), got)
	}
}

func TestDebounceTriggersEmptyInput(t *testing.T) {
	if got := debounceTriggers(nil, time.Second); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestDebounceTriggersUnsortedInput(t *testing.T) {
	base := time.Unix(0, 0)
	events := []time.Time{
		base.Add(20 * time.Millisecond),
		base,
		base.Add(10 * time.Millisecond),
	}
	got := debounceTriggers(events, 100*time.Millisecond)
	if len(got) != 1 {
		t.Fatalf("expected one collapsed trigger regardless of input order, got %d", len(got))
	}
}
