package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/livability-cli/internal/model"
	"github.com/sells-group/livability-cli/internal/pipeline"
)

var (
	analyzeLat    float64
	analyzeLng    float64
	analyzeIntent string
	analyzeJSON   bool
	weightSafety  float64
	weightWalk    float64
	weightTransit float64
	weightAmenity float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze livability for a coordinate",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := buildEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		req := pipeline.Request{
			Coord:  model.Coordinate{Lat: analyzeLat, Lng: analyzeLng},
			Intent: model.Intent(analyzeIntent),
		}
		if weightSafety > 0 || weightWalk > 0 || weightTransit > 0 || weightAmenity > 0 {
			req.Overrides = &model.Weights{
				Safety:      weightSafety,
				Walkability: weightWalk,
				Transit:     weightTransit,
				Amenities:   weightAmenity,
			}
		}

		result, err := env.Orchestrator.Analyze(cmd.Context(), req)
		if err != nil {
			return err
		}

		if analyzeJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		printResult(result)
		return nil
	},
}

func printResult(r *model.AnalysisResult) {
	fmt.Printf("%s, %s (ZIP %s)\n", r.Place.Jurisdiction, r.Place.State, r.Place.ZIP)
	fmt.Printf("Vibe: %d/100 %s (%s confidence)\n", r.Vibe.Score, r.Vibe.Label, r.Vibe.Confidence)
	fmt.Printf("  Safety    %5.1f  grade %s\n", r.Safety.Score, r.Safety.Grade)
	fmt.Printf("  Walk      %5.1f  %s\n", r.Mobility.WalkScore, r.Mobility.WalkLabel)
	fmt.Printf("  Transit   %5.1f  %s\n", r.Mobility.TransitScore, r.Mobility.TransitLabel)
	fmt.Printf("  Bike      %5.1f  %s\n", r.Mobility.BikeScore, r.Mobility.BikeLabel)
	fmt.Printf("  Amenities %5.1f  (%d places)\n", r.Amenities.Score, r.POICount)
	fmt.Printf("\n%s\n", r.Vibe.Summary)
	fmt.Printf("\nPros:\n  - %s\n", strings.Join(r.Vibe.Pros, "\n  - "))
	fmt.Printf("Cons:\n  - %s\n", strings.Join(r.Vibe.Cons, "\n  - "))
	if r.Cached {
		fmt.Println("\n(served from cache)")
	}
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeLat, "lat", 0, "latitude (required)")
	analyzeCmd.Flags().Float64Var(&analyzeLng, "lng", 0, "longitude (required)")
	analyzeCmd.Flags().StringVar(&analyzeIntent, "intent", "", "personalization intent: family, nightlife, quiet, commuter")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit JSON instead of text")
	analyzeCmd.Flags().Float64Var(&weightSafety, "weight-safety", 0, "override safety weight")
	analyzeCmd.Flags().Float64Var(&weightWalk, "weight-walk", 0, "override walkability weight")
	analyzeCmd.Flags().Float64Var(&weightTransit, "weight-transit", 0, "override transit weight")
	analyzeCmd.Flags().Float64Var(&weightAmenity, "weight-amenity", 0, "override amenity weight")
	analyzeCmd.MarkFlagRequired("lat") //nolint:errcheck
	analyzeCmd.MarkFlagRequired("lng") //nolint:errcheck
	rootCmd.AddCommand(analyzeCmd)
}
