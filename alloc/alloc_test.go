package alloc

import (
	"errors"
	"testing"
)

func TestHeapAllocate(t *testing.T) {
	var p Heap[int]
	buf, err := p.Allocate(8)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 8 {
		t.Errorf("expected buffer of 8 slots, got %d", len(buf))
	}
	for i, x := range buf {
		if x != 0 {
			t.Errorf("slot %d not raw (zero), got %d", i, x)
		}
	}
}

func TestHeapAllocateNegative(t *testing.T) {
	var p Heap[int]
	if _, err := p.Allocate(-1); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
}

func TestHeapConstructDestroy(t *testing.T) {
	var p Heap[*int]
	buf, _ := p.Allocate(1)
	x := 42
	p.Construct(&buf[0], &x)
	if buf[0] == nil || *buf[0] != 42 {
		t.Error("construct did not make the slot live")
	}
	p.Destroy(&buf[0])
	if buf[0] != nil {
		t.Error("destroy did not zero the slot")
	}
}

func TestCountingBalance(t *testing.T) {
	c := NewCounting[string](nil)
	buf, err := c.Allocate(4)
	if err != nil {
		t.Fatal(err)
	}
	c.Construct(&buf[0], "a")
	c.Construct(&buf[1], "b")
	if c.Live() != 2 {
		t.Errorf("expected 2 live elements, got %d", c.Live())
	}
	if c.Balanced() {
		t.Error("tally should not balance with live elements and a held buffer")
	}
	c.Destroy(&buf[0])
	c.Destroy(&buf[1])
	c.Deallocate(buf)
	if !c.Balanced() {
		t.Errorf("tally should balance: %+v", c)
	}
}

func TestBudgetExhaustion(t *testing.T) {
	b := NewBudget[int](nil, 10)
	if _, err := b.Allocate(8); err != nil {
		t.Fatal(err)
	}
	if b.Remaining() != 2 {
		t.Errorf("expected 2 slots remaining, got %d", b.Remaining())
	}
	_, err := b.Allocate(3)
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Errorf("expected ErrBudgetExceeded, got %v", err)
	}
	// The failed request must not consume budget.
	if _, err := b.Allocate(2); err != nil {
		t.Errorf("remaining budget should still be allocatable: %v", err)
	}
}
