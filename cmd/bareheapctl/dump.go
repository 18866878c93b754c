package main

import (
	"fmt"

	"github.com/minihive/bareheap"
)

// printDump renders a Heap's record layout as a single line, e.g.
// "[Used(8) Used(4) Free(16)]", the human-readable form of Heap.Dump.
func printDump(label string, h *bareheap.Heap) {
	fmt.Printf("%-28s [", label)
	for i, r := range h.Dump() {
		if i > 0 {
			fmt.Print(" ")
		}
		state := "Free"
		if r.Used {
			state = "Used"
		}
		fmt.Printf("%s(%d)", state, r.Size)
	}
	fmt.Println("]")
}
