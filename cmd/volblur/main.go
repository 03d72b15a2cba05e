package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"volblur/pkg/config"
	"volblur/pkg/pipeline"
	"volblur/pkg/visualization"
)

func main() {
	// Parse command line arguments
	inputVolume := flag.String("inputVolume", "", "Source image file (.npy volume or 2-D raster image)")
	outputVolume := flag.String("outputVolume", "", "Destination image file")
	gaussianBlurStdDev := flag.Float64("gaussianBlurStdDev", 0, "Gaussian smoothing strength in samples (<=0 disables blurring)")
	pixelType := flag.String("pixelType", "", "Output pixel type (uint8, int16, uint16, int32, float32, float64; default: input's own type)")
	configPath := flag.String("config", "", "Optional YAML configuration file")
	verbose := flag.Bool("verbose", true, "Print per-stage narration")
	showTimings := flag.Bool("timing", false, "Print the per-stage timing table after the run")
	extractSlices := flag.Bool("extractSlices", false, "Extract and save preview slices along all axes after the run")
	slicesDir := flag.String("slicesDir", "extracted_slices", "Directory to save extracted preview slices")
	flag.Parse()

	// Load configuration defaults and let explicitly set flags win
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["gaussianBlurStdDev"] {
		*gaussianBlurStdDev = cfg.Processing.GaussianBlurStdDev
	}
	if !set["pixelType"] {
		*pixelType = cfg.Output.PixelType
	}
	if !set["verbose"] {
		*verbose = cfg.Output.Verbose
	}
	if !set["timing"] {
		*showTimings = cfg.Output.ShowTimings
	}
	if !set["extractSlices"] {
		*extractSlices = cfg.Output.ExtractSlices
	}
	if !set["slicesDir"] {
		*slicesDir = cfg.Output.SlicesDir
	}

	// Validate inputs
	if *inputVolume == "" || *outputVolume == "" {
		flag.Usage()
		os.Exit(1)
	}

	if *verbose {
		fmt.Println("================================")
		fmt.Println("VOLBLUR - RECURSIVE GAUSSIAN SMOOTHING FOR 2D IMAGES AND 3D VOLUMES")
		fmt.Println("================================")
	}

	// Initialize pipeline parameters
	params := &pipeline.Params{
		InputPath:          *inputVolume,
		OutputPath:         *outputVolume,
		GaussianBlurStdDev: *gaussianBlurStdDev,
		OutputPixelType:    *pixelType,
		Verbose:            *verbose,
	}
	if *verbose {
		params.Progress = func(fraction float64) {
			fmt.Printf("  progress: %3.0f%%\n", fraction*100)
		}
	}

	// Run the pipeline
	runner := pipeline.NewRunner(params)
	if err := runner.Process(); err != nil {
		log.Fatalf("Run failed: %v", err)
	}

	if *verbose {
		stats := runner.Stats()
		fmt.Printf("\nRun completed successfully!\n")
		fmt.Printf("Output volume saved to: %s\n\n", *outputVolume)

		fmt.Printf("Output volume statistics:\n")
		fmt.Printf("=========================\n")
		fmt.Printf("Min:     %.4f\n", stats.Min)
		fmt.Printf("Max:     %.4f\n", stats.Max)
		fmt.Printf("Mean:    %.4f\n", stats.Mean)
		fmt.Printf("Std dev: %.4f\n", stats.StdDev)
	}

	if *showTimings {
		fmt.Println()
		runner.ReportTimings(os.Stdout)
	}

	// Extract and save preview slices if requested
	if *extractSlices {
		if *verbose {
			fmt.Println("\nExtracting preview slices along all axes...")
		}

		viewer := visualization.NewViewer(runner.Volume())

		axes := []string{"z"}
		if runner.Volume().Dimensionality() == 3 {
			axes = []string{"x", "y", "z"}
		}

		for _, axis := range axes {
			axisDir := filepath.Join(*slicesDir, axis)
			if *verbose {
				fmt.Printf("Saving %s-axis slices to: %s\n", axis, axisDir)
			}

			if err := viewer.SaveSliceSequence(axis, axisDir); err != nil {
				log.Printf("Warning: Failed to save %s-axis slices: %v", axis, err)
			}
		}

		if *verbose {
			fmt.Println("Slice extraction completed!")
		}
	}
}
