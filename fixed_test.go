package flexvec

import (
	"errors"
	"slices"
	"testing"

	"github.com/npillmayer/flexvec/alloc"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestFixedPushAndSum(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	v, err := NewFixed[int](100)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		v.PushBack(i)
		if v.Cap() != 100 {
			t.Fatalf("capacity changed to %d after push %d", v.Cap(), i)
		}
	}
	sum := 0
	for _, x := range v.All() {
		sum += x
	}
	if sum != 4950 {
		t.Errorf("expected sum 4950, got %d", sum)
	}
	if err := v.Check(); err != nil {
		t.Error(err)
	}
}

func TestFixedConstructors(t *testing.T) {
	v, err := NewFixedFill(10, 3, "x")
	if err != nil {
		t.Fatal(err)
	}
	if v.Len() != 3 || v.Get(2) != "x" {
		t.Errorf("fill constructor: %s", v)
	}
	w, err := FixedOf(5, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if w.String() != "{1, 2, 3}" {
		t.Errorf("literal constructor: %s", w)
	}
	u, err := NewFixedFromSeq(5, slices.Values([]int{4, 5}))
	if err != nil {
		t.Fatal(err)
	}
	if u.Len() != 2 || u.Front() != 4 || u.Back() != 5 {
		t.Errorf("sequence constructor: %s", u)
	}
}

func TestFixedInsertErase(t *testing.T) {
	v, _ := FixedOf(10, 1, 2, 5, 6)
	pos := v.Insert(2, 3, 4)
	if pos != 2 {
		t.Errorf("insert returned position %d, want 2", pos)
	}
	if v.String() != "{1, 2, 3, 4, 5, 6}" {
		t.Errorf("after insert: %s", v)
	}
	pos = v.Erase(0)
	if pos != 0 || v.Front() != 2 {
		t.Errorf("after erase: %s (pos %d)", v, pos)
	}
	pos = v.EraseRange(1, 3)
	if pos != 1 || v.String() != "{2, 5, 6}" {
		t.Errorf("after range erase: %s (pos %d)", v, pos)
	}
	if err := v.Check(); err != nil {
		t.Error(err)
	}
}

func TestFixedInsertRepeat(t *testing.T) {
	v, _ := FixedOf(8, 1, 4)
	v.InsertRepeat(1, 2, 7)
	if v.String() != "{1, 7, 7, 4}" {
		t.Errorf("after repeat insert: %s", v)
	}
}

func TestFixedResize(t *testing.T) {
	v, _ := NewFixed[int](6)
	v.ResizeFill(4, 9)
	if v.Len() != 4 || v.Get(3) != 9 {
		t.Errorf("grow: %s", v)
	}
	v.Resize(2)
	if v.Len() != 2 || v.Cap() != 6 {
		t.Errorf("shrink must not change capacity: len %d cap %d", v.Len(), v.Cap())
	}
}

func TestFixedAtOutOfRange(t *testing.T) {
	v, _ := FixedOf(4, 10, 20)
	if x, err := v.At(1); err != nil || x != 20 {
		t.Errorf("in-range At failed: %v, %v", x, err)
	}
	_, err := v.At(2)
	if !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
	if _, err := v.At(-1); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("negative index must be out of bounds, got %v", err)
	}
}

func TestFixedOverflowPanics(t *testing.T) {
	v, _ := NewFixed[int](1)
	v.PushBack(1)
	defer func() {
		if recover() == nil {
			t.Error("push past the fixed capacity must panic")
		}
	}()
	v.PushBack(2)
}

func TestFixedSwapUnimplemented(t *testing.T) {
	a, _ := NewFixed[int](2)
	b, _ := NewFixed[int](2)
	defer func() {
		if r := recover(); r != ErrUnimplemented {
			t.Errorf("expected ErrUnimplemented panic, got %v", r)
		}
	}()
	a.Swap(b)
}

func TestFixedLifecycleBalance(t *testing.T) {
	c := alloc.NewCounting[int](nil)
	v, err := NewFixed(8, WithAllocator[int](c))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		v.PushBack(i)
	}
	v.Insert(2, 100)
	v.Erase(0)
	v.Resize(2)
	w, err := v.Take()
	if err != nil {
		t.Fatal(err)
	}
	if v.Len() != 0 || w.Len() != 2 {
		t.Errorf("take left source len %d, destination len %d", v.Len(), w.Len())
	}
	v.Release()
	w.Release()
	if !c.Balanced() {
		t.Errorf("lifecycle out of balance: constructs %d destroys %d allocs %d deallocs %d",
			c.Constructs, c.Destroys, c.Allocs, c.Deallocs)
	}
}

func TestFixedBackwardIteration(t *testing.T) {
	v, _ := FixedOf(4, 1, 2, 3)
	var got []int
	for _, x := range v.Backward() {
		got = append(got, x)
	}
	if !slices.Equal(got, []int{3, 2, 1}) {
		t.Errorf("backward iteration yielded %v", got)
	}
	// Iteration is restartable.
	n := 0
	for range v.Backward() {
		n++
	}
	if n != 3 {
		t.Errorf("second traversal yielded %d elements", n)
	}
}

func TestFixedDataView(t *testing.T) {
	v, _ := NewFixed[int](4)
	if v.Data() != nil {
		t.Error("empty container must have a nil data view")
	}
	v.PushBack(7)
	if d := v.Data(); len(d) != 1 || d[0] != 7 {
		t.Errorf("data view %v", d)
	}
}
