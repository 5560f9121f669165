package flexvec

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Colorized storage-state dumps, for interactive debugging sessions. The
// output format is not stable and carries no API guarantee.

var (
	dumpHeader = color.New(color.FgCyan, color.Bold)
	dumpState  = color.New(color.FgYellow)
	dumpInline = color.New(color.FgGreen)
	dumpSite   = color.New(color.FgMagenta)
)

// Dump writes a human-readable report of the container's storage state.
func (v *FixedVector[T]) Dump(w io.Writer) {
	dumpHeader.Fprintf(w, "FixedVector len=%d cap=%d\n", v.n, len(v.buf))
	dumpInline.Fprint(w, "storage: fixed buffer (single allocation)\n")
	dumpSlots(w, v.buf[:v.n])
}

// Dump writes a human-readable report of the container's storage state,
// including which of the two buffers is active.
func (v *SmallVector[T]) Dump(w io.Writer) {
	dumpHeader.Fprintf(w, "SmallVector len=%d cap=%d inline-cap=%d\n", v.n, v.Cap(), len(v.inline))
	if v.heap != nil {
		dumpState.Fprintf(w, "storage: HEAP buffer of %d slots\n", len(v.heap))
	} else {
		dumpInline.Fprint(w, "storage: INLINE buffer\n")
	}
	dumpSlots(w, v.slots()[:v.n])
}

// Dump writes a human-readable report of the container's contents and its
// recorded provenance.
func (v *CheckedVector[T]) Dump(w io.Writer) {
	dumpHeader.Fprintf(w, "CheckedVector len=%d cap=%d\n", len(v.elems), cap(v.elems))
	dumpSite.Fprintf(w, "constructed at %s\n", v.init)
	if v.lastChange != nil {
		dumpSite.Fprintf(w, "last size change %d → %d at %s\n",
			v.lastChange.from, v.lastChange.to, v.lastChange.site)
	} else {
		dumpSite.Fprint(w, "no size changes recorded\n")
	}
	dumpSlots(w, v.elems)
}

const dumpPreview = 8

func dumpSlots[T any](w io.Writer, elems []T) {
	for i, x := range elems {
		if i == dumpPreview {
			fmt.Fprintf(w, "  … %d more\n", len(elems)-dumpPreview)
			return
		}
		fmt.Fprintf(w, "  [%d] %v\n", i, x)
	}
}
