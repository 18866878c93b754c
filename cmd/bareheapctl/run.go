package main

import (
	"fmt"
	"strconv"
	"strings"
	"unsafe"

	"github.com/minihive/bareheap"
	"github.com/minihive/bareheap/internal/trace"
	"github.com/spf13/cobra"
)

var runCapacity int

func init() {
	runCmd.Flags().IntVar(&runCapacity, "capacity", 256, "heap capacity in bytes")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run OP [OP...]",
	Short: "Run a scripted sequence of alloc/free/dump operations",
	Long: `run builds a fresh heap of --capacity bytes and executes each OP in
order, printing the record layout after every step that changes it.

Supported operations:
  alloc SIZE[,ALIGN]   allocate SIZE bytes (ALIGN defaults to 4);
                       a successful allocation is remembered as the next
                       numbered slot for a later free; a failed one takes
                       no slot
  free INDEX           free the allocation in slot INDEX (0-based, counting
                       successful allocs in the order they were issued)
  dump                 print the current record layout without allocating`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := trace.Init(trace.Options{Enabled: verbose})
		if err != nil {
			return err
		}

		h := bareheap.NewCapacity(runCapacity)
		h.SetLogger(logger)
		printDump("initial", h)

		var ptrs []unsafe.Pointer
		var sizes []uintptr

		for i, op := range args {
			field := strings.SplitN(op, " ", 2)
			switch field[0] {
			case "alloc":
				size, align, perr := parseAllocArgs(field)
				if perr != nil {
					return perr
				}
				p := h.Alloc(size, align)
				if p == nil {
					fmt.Printf("op %d: alloc %d failed: no fit\n", i, size)
					continue
				}
				ptrs = append(ptrs, p)
				sizes = append(sizes, size)
				printDump(fmt.Sprintf("alloc %d -> slot %d", size, len(ptrs)-1), h)
			case "free":
				if len(field) != 2 {
					return fmt.Errorf("op %d: free requires an index argument", i)
				}
				idx, perr := strconv.Atoi(strings.TrimSpace(field[1]))
				if perr != nil || idx < 0 || idx >= len(ptrs) {
					return fmt.Errorf("op %d: invalid free index %q", i, field[1])
				}
				h.Dealloc(ptrs[idx], sizes[idx], 4)
				printDump(fmt.Sprintf("free slot %d", idx), h)
			case "dump":
				printDump("dump", h)
			default:
				return fmt.Errorf("op %d: unknown operation %q", i, field[0])
			}
		}
		return nil
	},
}

func parseAllocArgs(field []string) (uintptr, uintptr, error) {
	if len(field) != 2 {
		return 0, 0, fmt.Errorf("alloc requires a size argument")
	}
	parts := strings.SplitN(field[1], ",", 2)
	size, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid alloc size %q: %w", parts[0], err)
	}
	align := 4
	if len(parts) == 2 {
		align, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("invalid alloc alignment %q: %w", parts[1], err)
		}
	}
	return uintptr(size), uintptr(align), nil
}
