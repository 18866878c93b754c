package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "bareheapctl",
	Short: "Drive a bareheap.Heap from the command line",
	Long: `bareheapctl is a small interactive/scripted tool for exercising a
fixed-capacity bareheap.Heap: allocate, free, and inspect its record
layout without writing a Go program to do it.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug tracing")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	execute()
}
