package diag

import (
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nexbase-io/nexbase-go/clock"
)

func testClock() *clock.Manual {
	return clock.NewManual(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

func TestMarkAppendsInOrder(t *testing.T) {
	clk := testClock()
	tl := NewPerformanceTimeline(clk)

	tl.Mark("first")
	clk.Advance(5 * time.Millisecond)
	tl.Mark("second")
	tl.Mark("first") // duplicates are legal and independently tracked

	entries := tl.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, name := range []string{"first", "second", "first"} {
		if entries[i].Name != name {
			t.Errorf("entry %d: expected %q, got %q", i, name, entries[i].Name)
		}
		if entries[i].Type != EntryMark {
			t.Errorf("entry %d: expected mark, got %s", i, entries[i].Type)
		}
		if entries[i].Duration != 0 {
			t.Errorf("entry %d: mark duration must be zero, got %s", i, entries[i].Duration)
		}
	}
}

func TestMarkEmptyNameAndDetail(t *testing.T) {
	tl := NewPerformanceTimeline(testClock())

	detail := ObjectValue(map[string]Value{
		"attempt": NumberValue(3),
		"tags":    ArrayValue(StringValue("slow"), StringValue("retry")),
	})
	e := tl.Mark("", detail)

	if e.Name != "" {
		t.Errorf("empty name must be preserved, got %q", e.Name)
	}
	got := tl.EntriesByName("")
	if len(got) != 1 {
		t.Fatalf("expected 1 entry with empty name, got %d", len(got))
	}
	if !got[0].Detail.Equal(detail) {
		t.Errorf("detail not returned verbatim: %s", got[0].Detail)
	}
}

func TestMeasureBetweenMarks(t *testing.T) {
	clk := testClock()
	tl := NewPerformanceTimeline(clk)

	tl.Mark("start")
	clk.Advance(40 * time.Millisecond)
	tl.Mark("end")

	m := tl.Measure("op", "start", "end")
	if m.Type != EntryMeasure {
		t.Fatalf("expected measure, got %s", m.Type)
	}
	if m.Duration != 40*time.Millisecond {
		t.Errorf("expected 40ms, got %s", m.Duration)
	}
	if len(tl.Entries()) != 3 {
		t.Errorf("measure must be appended like a mark")
	}
}

func TestMeasureUsesMostRecentMark(t *testing.T) {
	clk := testClock()
	tl := NewPerformanceTimeline(clk)

	tl.Mark("step")
	clk.Advance(100 * time.Millisecond)
	tl.Mark("step")
	clk.Advance(10 * time.Millisecond)

	m := tl.Measure("since-step", "step", "")
	if m.Duration != 10*time.Millisecond {
		t.Errorf("expected most recent %q mark to win, got %s", "step", m.Duration)
	}
}

func TestMeasureMissingNamesNeverFails(t *testing.T) {
	clk := testClock()
	tl := NewPerformanceTimeline(clk)
	clk.Advance(time.Second)

	m := tl.Measure("m", "missing-a", "missing-b")
	if m.Duration < 0 {
		t.Errorf("duration must be non-negative, got %s", m.Duration)
	}
	if m.Duration != 0 {
		t.Errorf("both boundaries fall back to now, expected 0, got %s", m.Duration)
	}
}

func TestMeasureDefaultsToOriginAndNow(t *testing.T) {
	clk := testClock()
	tl := NewPerformanceTimeline(clk)
	clk.Advance(250 * time.Millisecond)

	m := tl.Measure("startup", "", "")
	if m.Duration != 250*time.Millisecond {
		t.Errorf("expected origin-to-now span of 250ms, got %s", m.Duration)
	}
}

func TestMeasureClampsNegativeDuration(t *testing.T) {
	clk := testClock()
	tl := NewPerformanceTimeline(clk)

	clk.Advance(time.Second)
	tl.Mark("late")
	// End boundary resolves to an entry recorded before "late" was marked.
	clk.Advance(time.Second)
	tl.Mark("early")
	m := tl.Measure("backwards", "early", "late")
	if m.Duration != 0 {
		t.Errorf("degenerate spans must clamp to zero, got %s", m.Duration)
	}
}

func TestEntriesByType(t *testing.T) {
	tl := NewPerformanceTimeline(testClock())

	tl.Mark("a")
	tl.Measure("m", "", "")
	tl.Mark("b")

	marks := tl.EntriesByType(EntryMark)
	if len(marks) != 2 || marks[0].Name != "a" || marks[1].Name != "b" {
		t.Errorf("unexpected marks: %+v", marks)
	}
	measures := tl.EntriesByType(EntryMeasure)
	if len(measures) != 1 || measures[0].Name != "m" {
		t.Errorf("unexpected measures: %+v", measures)
	}
}

func TestClearMarksLeavesMeasures(t *testing.T) {
	tl := NewPerformanceTimeline(testClock())
	tl.Mark("a")
	tl.Measure("m", "", "")

	tl.ClearMarks()

	if got := tl.EntriesByType(EntryMark); len(got) != 0 {
		t.Errorf("expected no marks, got %d", len(got))
	}
	if got := tl.EntriesByType(EntryMeasure); len(got) != 1 {
		t.Errorf("expected 1 measure, got %d", len(got))
	}
}

func TestClearMeasuresLeavesMarks(t *testing.T) {
	tl := NewPerformanceTimeline(testClock())
	tl.Mark("a")
	tl.Measure("m", "", "")

	tl.ClearMeasures()

	if got := tl.EntriesByType(EntryMeasure); len(got) != 0 {
		t.Errorf("expected no measures, got %d", len(got))
	}
	if got := tl.EntriesByType(EntryMark); len(got) != 1 {
		t.Errorf("expected 1 mark, got %d", len(got))
	}
}

func TestClearRemovesEverything(t *testing.T) {
	tl := NewPerformanceTimeline(testClock())
	tl.Mark("a")
	tl.Measure("m", "", "")

	tl.Clear()

	if got := tl.Entries(); len(got) != 0 {
		t.Errorf("expected empty timeline, got %d entries", len(got))
	}
}

func TestSnapshotIsolation(t *testing.T) {
	tl := NewPerformanceTimeline(testClock())
	tl.Mark("a")

	snap := tl.Entries()
	tl.Mark("b")
	tl.Clear()

	if len(snap) != 1 || snap[0].Name != "a" {
		t.Errorf("later mutation leaked into snapshot: %+v", snap)
	}
}

func TestTimelineConcurrentAccess(t *testing.T) {
	tl := NewPerformanceTimeline(clock.System())

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				tl.Mark("worker")
				tl.Measure("span", "worker", "")
				_ = tl.Entries()
				_ = tl.EntriesByName("worker")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if got := len(tl.Entries()); got != 8*200*2 {
		t.Errorf("expected %d entries, got %d", 8*200*2, got)
	}
}
