package flexvec

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type exitCall struct{ code int }

// interceptFatal runs f with the fatal diagnostic path redirected into a
// buffer and the process-exit hook replaced by a panic, so that the
// diagnostic can be inspected. It fails the test if f returns without
// triggering the fatal path.
func interceptFatal(t *testing.T, f func()) (report string, code int) {
	t.Helper()
	var buf bytes.Buffer
	oldWriter, oldExit := checkedDiagWriter, checkedExit
	checkedDiagWriter = &buf
	checkedExit = func(c int) { panic(exitCall{c}) }
	defer func() {
		checkedDiagWriter, checkedExit = oldWriter, oldExit
	}()
	triggered := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				call, ok := r.(exitCall)
				if !ok {
					panic(r)
				}
				triggered = true
				code = call.code
			}
		}()
		f()
	}()
	if !triggered {
		t.Fatal("expected the fatal diagnostic path to trigger")
	}
	return buf.String(), code
}

func TestCheckedDiagnosticScenario(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	v := CheckedOf(1, 2, 3) // construction site X
	v.Resize(4)             // size change site Y, 3 → 4

	siteX := v.LastConstructedAt()
	from, to, siteY, ok := v.LastSizeChange()
	if !ok || from != 3 || to != 4 {
		t.Fatalf("expected recorded size change 3 → 4, got %d → %d (ok=%v)", from, to, ok)
	}

	report, exitCode := interceptFatal(t, func() {
		v.Get(5) // offending access, site Z
	})
	if exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", exitCode)
	}
	if !strings.Contains(report, "index out of bounds; 5 for a vector of size 4") {
		t.Errorf("diagnostic misses index/size line:\n%s", report)
	}
	if !strings.Contains(report, siteX.String()) {
		t.Errorf("diagnostic misses construction site %s:\n%s", siteX, report)
	}
	if !strings.Contains(report, fmt.Sprintf("from 3 to 4 at %s", siteY)) {
		t.Errorf("diagnostic misses size-change provenance:\n%s", report)
	}
	if !strings.Contains(report, "checked_test.go") {
		t.Errorf("diagnostic misses the offending call site:\n%s", report)
	}
}

func TestCheckedNegativeIndexReported(t *testing.T) {
	v := CheckedOf(1)
	report, _ := interceptFatal(t, func() {
		v.Get(-7)
	})
	// The original negative index must appear, not a wrapped-around value.
	if !strings.Contains(report, "-7 for a vector of size 1") {
		t.Errorf("negative index not reported verbatim:\n%s", report)
	}
}

func TestCheckedNoSizeChangeNote(t *testing.T) {
	v := CheckedOf(1, 2)
	report, _ := interceptFatal(t, func() {
		v.Get(9)
	})
	if !strings.Contains(report, "no size changes recorded") {
		t.Errorf("expected the no-size-change note:\n%s", report)
	}
}

func TestCheckedFrontBackOnEmpty(t *testing.T) {
	v := NewChecked[int]()
	report, _ := interceptFatal(t, func() {
		v.Front()
	})
	if !strings.Contains(report, "0 for a vector of size 0") {
		t.Errorf("front on empty:\n%s", report)
	}
	report, _ = interceptFatal(t, func() {
		v.Back()
	})
	if !strings.Contains(report, "-1 for a vector of size 0") {
		t.Errorf("back on empty:\n%s", report)
	}
}

func TestCheckedAtIsCatchable(t *testing.T) {
	v := CheckedOf(1, 2)
	_, err := v.At(5)
	if !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("At must return a catchable error, got %v", err)
	}
	if x, err := v.At(1); err != nil || x != 2 {
		t.Errorf("in-range At: %v, %v", x, err)
	}
}

func TestCheckedProvenanceRecording(t *testing.T) {
	v := NewChecked[int]()
	if _, _, _, ok := v.LastSizeChange(); ok {
		t.Error("fresh container must have no recorded size change")
	}
	v.PushBack(1)
	if from, to, site, ok := v.LastSizeChange(); !ok || from != 0 || to != 1 || site.IsZero() {
		t.Errorf("push provenance: %d → %d (ok=%v)", from, to, ok)
	}
	v.Insert(0, 2, 3)
	if from, to, _, _ := v.LastSizeChange(); from != 1 || to != 3 {
		t.Errorf("insert provenance: %d → %d", from, to)
	}
	v.Erase(0)
	if from, to, _, _ := v.LastSizeChange(); from != 3 || to != 2 {
		t.Errorf("erase provenance: %d → %d", from, to)
	}
	if err := v.Check(); err != nil {
		t.Error(err)
	}
}

func TestCheckedAssignCountsAsInitialization(t *testing.T) {
	v := CheckedOf(1, 2, 3)
	before := v.LastConstructedAt()
	v.Assign(9, 9)
	after := v.LastConstructedAt()
	if before == after {
		t.Error("assign must update the construction site")
	}
	if v.Len() != 2 || v.Get(0) != 9 {
		t.Errorf("after assign: %s", v)
	}
	if from, to, _, _ := v.LastSizeChange(); from != 3 || to != 2 {
		t.Errorf("assign provenance: %d → %d", from, to)
	}
}

func TestCheckedSwapRecordsBothSides(t *testing.T) {
	a := CheckedOf(1, 2, 3, 4)
	b := CheckedOf(5)
	a.Swap(b)
	if a.Len() != 1 || b.Len() != 4 {
		t.Fatalf("swap lengths: %d, %d", a.Len(), b.Len())
	}
	if from, to, _, ok := a.LastSizeChange(); !ok || from != 4 || to != 1 {
		t.Errorf("swap provenance on a: %d → %d", from, to)
	}
	if from, to, _, ok := b.LastSizeChange(); !ok || from != 1 || to != 4 {
		t.Errorf("swap provenance on b: %d → %d", from, to)
	}
}

func TestCheckedTake(t *testing.T) {
	v := CheckedOf(1, 2, 3)
	w := v.Take()
	if v.Len() != 0 || w.Len() != 3 {
		t.Errorf("take: src %d, dst %d", v.Len(), w.Len())
	}
	if w.String() != "{1, 2, 3}" {
		t.Errorf("after take: %s", w)
	}
}

func TestCheckedRawSliceChangesNotTracked(t *testing.T) {
	// Removal through free functions on the raw data view bypasses
	// provenance tracking. This is the documented gap, not a bug.
	v := CheckedOf(1, 2, 3)
	v.PushBack(4)
	_, to, _, _ := v.LastSizeChange()
	_ = slices.Delete(v.Data(), 0, 1)
	if _, after, _, _ := v.LastSizeChange(); after != to {
		t.Error("free-function removal must not update provenance")
	}
}

func TestCheckedInsertEraseSemantics(t *testing.T) {
	v := NewChecked[string]()
	v.PushBack("b")
	pos := v.Insert(0, "a")
	if pos != 0 {
		t.Errorf("insert position %d", pos)
	}
	v.Insert(2, "c", "d")
	if v.String() != "{a, b, c, d}" {
		t.Errorf("after inserts: %s", v)
	}
	pos = v.EraseRange(1, 3)
	if pos != 1 || v.String() != "{a, d}" {
		t.Errorf("after range erase: %s (pos %d)", v, pos)
	}
	v.InsertRepeat(1, 3, "x")
	if v.String() != "{a, x, x, x, d}" {
		t.Errorf("after repeat insert: %s", v)
	}
}

func TestCheckedResizeAndClear(t *testing.T) {
	v := NewCheckedSize[int](3)
	if v.Len() != 3 {
		t.Fatalf("size constructor: len %d", v.Len())
	}
	v.ResizeFill(5, 7)
	if v.Len() != 5 || v.Get(4) != 7 {
		t.Errorf("after resize: %s", v)
	}
	v.Clear()
	if !v.IsEmpty() {
		t.Error("clear must empty the container")
	}
	if from, to, _, _ := v.LastSizeChange(); from != 5 || to != 0 {
		t.Errorf("clear provenance: %d → %d", from, to)
	}
}
