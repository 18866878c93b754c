package main

import (
	"github.com/minihive/bareheap"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(demoCmd)
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Replay the reference twelve-step allocation walkthrough",
	Long: `demo runs a fixed, 32-byte heap through the same sequence of
allocations and frees used to illustrate the allocator's split and
right-coalesce behavior, printing the record layout after every step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h := bareheap.NewCapacity(32)
		printDump("initial", h)

		a := h.Alloc(8, 4)
		printDump("alloc 8 -> a", h)

		b := h.Alloc(4, 4)
		printDump("alloc 4 -> b", h)

		if h.Alloc(16, 4) == nil {
			printDump("alloc 16 -> fails (no fit)", h)
		}

		c := h.Alloc(5, 4)
		printDump("alloc 5 -> c (rounds to 8)", h)

		if h.Alloc(1, 4) == nil {
			printDump("alloc 1 -> fails (heap full)", h)
		}

		h.Dealloc(c, 5, 4)
		printDump("free c", h)

		h.Dealloc(a, 8, 4)
		printDump("free a", h)

		d := h.Alloc(8, 4)
		printDump("alloc 8 -> d", h)

		h.Dealloc(b, 4, 4)
		printDump("free b (merges right)", h)

		e := h.Alloc(8, 4)
		printDump("alloc 8 -> e", h)

		h.Dealloc(d, 8, 4)
		printDump("free d (no merge, e is used)", h)

		h.Dealloc(e, 8, 4)
		printDump("free e (merges right, leaves two free records)", h)

		return nil
	},
}
