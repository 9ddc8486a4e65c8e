package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kocubinski/rbmerkle/bench"
)

func main() {
	root := &cobra.Command{
		Use:   "rbmerkle-bench",
		Short: "Benchmark harness for the Merkle red-black tree.",
	}
	root.AddCommand(bench.RunCommand())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
