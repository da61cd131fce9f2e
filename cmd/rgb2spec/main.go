// Command rgb2spec precomputes the RGB-to-spectrum coefficient table and
// writes it to a binary file for the renderer to load.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spectralpt/go-spectral-raytracer/pkg/core"
	"github.com/spectralpt/go-spectral-raytracer/pkg/rgb2spec"
)

func main() {
	var (
		resolution int
		output     string
	)

	cmd := &cobra.Command{
		Use:   "rgb2spec",
		Short: "Precompute the RGB-to-spectrum upsampling table",
		Long: "rgb2spec fits a sigmoid-polynomial reflectance spectrum to every cell " +
			"of an RGB lattice and writes the coefficient table to a binary file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := core.StdLogger{}

			start := time.Now()
			table, err := rgb2spec.Fit(resolution, rgb2spec.DefaultFitOptions(), logger)
			if err != nil {
				return err
			}
			logger.Printf("fit resolution %d in %v", resolution, time.Since(start).Round(time.Millisecond))

			if err := table.SaveFile(output); err != nil {
				return err
			}
			logger.Printf("wrote %s", output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&resolution, "resolution", "r", rgb2spec.DefaultResolution, "table resolution per axis")
	cmd.Flags().StringVarP(&output, "output", "o", "rgb2spec.bin", "output table path")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
