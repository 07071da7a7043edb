package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"fiofaker/pkg/fixtures"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "fio-faker",
		Short:         "Mock CI and fleet API backed by random fixtures",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newGenerateCommand())
	cmd.AddCommand(newSnapshotCommand())
	cmd.AddCommand(newEventsCommand())
	return cmd
}

// seedFlag registers --seed on cmd. The returned func yields the generator
// options and the seed, which is nil unless the flag was set.
func seedFlag(cmd *cobra.Command) func(extra ...fixtures.Option) (*fixtures.Generator, *uint64) {
	var seed uint64
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed the generator for reproducible output")

	return func(extra ...fixtures.Option) (*fixtures.Generator, *uint64) {
		opts := []fixtures.Option{fixtures.WithClock(time.Now)}
		var used *uint64
		if cmd.Flags().Changed("seed") {
			s := seed
			used = &s
			opts = append(opts, fixtures.WithSource(fixtures.SeededSource(s)))
		}
		return fixtures.New(append(opts, extra...)...), used
	}
}
