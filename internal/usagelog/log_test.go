package usagelog

import (
	"testing"
	"time"
)

func entry(action string, n int) Entry {
	return Entry{
		Action:       action,
		Timestamp:    time.Now().UTC(),
		InputLength:  n,
		OutputLength: n,
	}
}

func TestAppendAndRecent(t *testing.T) {
	l := NewLog(10)
	l.Append(entry("analyze", 1))
	l.Append(entry("summarize", 2))
	l.Append(entry("autocorrect", 3))

	got := l.Recent(2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Action != "summarize" || got[1].Action != "autocorrect" {
		t.Errorf("order = [%s, %s], want [summarize, autocorrect]", got[0].Action, got[1].Action)
	}
}

func TestRingEvictsOldest(t *testing.T) {
	l := NewLog(3)
	for i := 1; i <= 5; i++ {
		l.Append(entry("analyze", i))
	}

	if l.Len() != 3 {
		t.Fatalf("len = %d, want 3", l.Len())
	}
	got := l.Recent(10)
	if len(got) != 3 {
		t.Fatalf("recent len = %d, want 3", len(got))
	}
	for i, e := range got {
		if want := i + 3; e.InputLength != want {
			t.Errorf("entry %d input length = %d, want %d", i, e.InputLength, want)
		}
	}
}

func TestRecentDefaultLimit(t *testing.T) {
	l := NewLog(200)
	for i := 0; i < 120; i++ {
		l.Append(entry("analyze", i))
	}

	got := l.Recent(0)
	if len(got) != DefaultQueryLimit {
		t.Fatalf("default limit = %d entries, want %d", len(got), DefaultQueryLimit)
	}
	if got[len(got)-1].InputLength != 119 {
		t.Errorf("last entry input length = %d, want 119", got[len(got)-1].InputLength)
	}
}

func TestRecentLimitBeyondLen(t *testing.T) {
	l := NewLog(10)
	l.Append(entry("analyze", 1))

	if got := l.Recent(100); len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
}

func TestZeroCapacityClamped(t *testing.T) {
	l := NewLog(0)
	l.Append(entry("analyze", 1))
	l.Append(entry("analyze", 2))

	got := l.Recent(10)
	if len(got) != 1 || got[0].InputLength != 2 {
		t.Fatalf("clamped ring should keep only the newest entry, got %v", got)
	}
}
