// Command example demonstrates the flexvec containers, ending with the
// deliberately fatal out-of-bounds diagnostic of CheckedVector.
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/flexvec"
)

func main() {
	fixed, err := flexvec.NewFixed[int](100)
	if err != nil {
		panic(err)
	}
	for i := 0; i < 100; i++ {
		fixed.PushBack(i)
	}
	sum := 0
	for _, x := range fixed.All() {
		sum += x
	}
	fmt.Printf("fixed: len=%d cap=%d sum=%d\n", fixed.Len(), fixed.Cap(), sum)

	small, err := flexvec.SmallOf(4, 1, 2, 3)
	if err != nil {
		panic(err)
	}
	for i := 4; i <= 10; i++ {
		if err := small.PushBack(i); err != nil {
			panic(err)
		}
	}
	small.Dump(os.Stdout)
	if err := small.ShrinkToFit(); err != nil {
		panic(err)
	}
	fmt.Printf("small after shrink: %s (cap=%d, inline=%v)\n",
		small, small.Cap(), small.IsInline())

	v := flexvec.CheckedOf(1, 2, 3)
	w := v.Clone() // most recent construction/initialization of w

	fmt.Printf("v: %s\nw: %s\n", v, w)

	w.PushBack(4) // now w = {1, 2, 3, 4}
	_ = w.Get(3)  // in-bounds access; all good
	w.Swap(v)     // now w = {1, 2, 3}; this is the most recent size change to w
	_ = w.Get(3)  // out-of-bounds: prints the full diagnostic and terminates
}
