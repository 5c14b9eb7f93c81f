package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/stairbeat/internal/games/stairs/engine"
)

var flagCount int

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the generated staircase for a seed",
	Long: `Print the first segments of the staircase as YAML. The same seed always
produces the same staircase, in this command and in play.

Examples:
  stairbeat path --seed 42
  stairbeat path --seed 42 --count 60`,
	Run: runPath,
}

func init() {
	pathCmd.Flags().IntVar(&flagCount, "count", 30, "Number of segments to print")
}

// pathDoc is the YAML shape of a printed staircase.
type pathDoc struct {
	Seed     int64        `yaml:"seed"`
	Segments []segmentDoc `yaml:"segments"`
}

type segmentDoc struct {
	ID       int        `yaml:"id"`
	Landing  bool       `yaml:"landing,omitempty"`
	Position [3]float64 `yaml:"position,flow"`
	Rotation float64    `yaml:"rotation"`
}

// buildPath generates n segments for seed.
func buildPath(seed int64, n int) pathDoc {
	turns := engine.RandomTurns(rand.New(rand.NewSource(seed))) //#nosec G404 -- gameplay randomness
	segs := engine.Path(n, turns)

	doc := pathDoc{Seed: seed, Segments: make([]segmentDoc, len(segs))}
	for i, s := range segs {
		doc.Segments[i] = segmentDoc{
			ID:       s.ID,
			Landing:  s.IsLanding,
			Position: [3]float64{s.Position.X, s.Position.Y, s.Position.Z},
			Rotation: round3(s.Rotation),
		}
	}
	return doc
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func runPath(_ *cobra.Command, _ []string) {
	if flagCount <= 0 {
		fmt.Fprintf(os.Stderr, "Error: --count must be positive, got %d\n", flagCount)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(buildPath(seed, flagCount)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	enc.Close()
}
