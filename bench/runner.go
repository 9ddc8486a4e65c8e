package bench

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kocubinski/rbmerkle"
)

// RunCommand returns a command that builds a tree from a generated key
// stream and reports throughput, memory use and the final root digest.
func RunCommand() *cobra.Command {
	var (
		keyCount   int64
		seed       int64
		keyMean    int
		keyStdDev  int
		checkEvery int64
		dotFile    string
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build a Merkle red-black tree from a generated key stream.",
	}
	cmd.Flags().Int64Var(&keyCount, "keys", 1_000_000, "Number of keys to insert.")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the key generator.")
	cmd.Flags().IntVar(&keyMean, "key-mean", 16, "Mean key length in bytes.")
	cmd.Flags().IntVar(&keyStdDev, "key-stddev", 4, "Standard deviation of key length.")
	cmd.Flags().Int64Var(&checkEvery, "check-every", 0, "Validate tree invariants every N inserts. 0 disables checking.")
	cmd.Flags().StringVar(&dotFile, "dot-file", "", "Write a Graphviz rendering of the final tree to this file.")

	cmd.RunE = func(_ *cobra.Command, _ []string) error {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Str("module", "rbmerkle").Logger()
		metrics := NewMetrics(prometheus.DefaultRegisterer)

		tree := rbmerkle.New[[]byte](rbmerkle.BytesKey{})
		stream, err := KeyGenerator{Seed: seed, KeyMean: keyMean, KeyStdDev: keyStdDev}.Stream()
		if err != nil {
			return fmt.Errorf("creating key stream: %w", err)
		}

		start := time.Now()
		since := start
		for i := int64(1); i <= keyCount; i++ {
			if err := tree.Insert(stream.Next()); err != nil {
				return fmt.Errorf("inserting key %d: %w", i, err)
			}
			metrics.InsertCount.Inc()

			if i%100_000 == 0 {
				var m runtime.MemStats
				runtime.ReadMemStats(&m)
				log.Info().Msgf("inserted %s keys in %s; %s keys/s; alloc=%s gc=%s",
					humanize.Comma(i),
					time.Since(since),
					humanize.Comma(int64(100_000/time.Since(since).Seconds())),
					humanize.Bytes(m.Alloc),
					humanize.Comma(int64(m.NumGC)),
				)
				since = time.Now()
			}
			if checkEvery > 0 && i%checkEvery == 0 {
				if err := tree.Validate(); err != nil {
					return fmt.Errorf("invariant violation after %d inserts: %w", i, err)
				}
			}
		}

		metrics.TreeSize.Set(float64(tree.Size()))
		metrics.BlackHeight.Set(float64(tree.BlackHeight()))
		log.Info().Msgf("done in %s; size=%s black-height=%d root=%s",
			time.Since(start),
			humanize.Comma(tree.Size()),
			tree.BlackHeight(),
			tree.RootDigest(),
		)

		if dotFile != "" {
			if err := os.WriteFile(dotFile, []byte(rbmerkle.RenderDotGraph(tree)), 0o644); err != nil {
				return fmt.Errorf("writing dot file: %w", err)
			}
		}
		return nil
	}
	return cmd
}
