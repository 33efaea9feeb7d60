// Package cmd provides the Cobra CLI command structure for imgresize.
//
// This package defines the root command and all CLI flags for the
// imgresize tool. It handles flag parsing and validation, target
// resolution, the sequential resize loop, and report formatting.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	imgresize "github.com/ysko909/img-resizer"
	"github.com/ysko909/img-resizer/pkg/output"
	"github.com/ysko909/img-resizer/pkg/scan"
)

var (
	// Resize options
	percent     float64
	prefix      string
	recursive   bool
	jpegQuality int

	// Filter options
	filterNameRegex string

	// Output options
	outputFormat string
	reportFile   string
	noHeader     bool
	verbose      bool
)

// ErrPartialFailure is returned when the run completed but at least one
// file could not be resized. The caller maps it to exit code 2.
var ErrPartialFailure = errors.New("some files failed to resize")

// rootCmd represents the base command when called without any subcommands.
// It resolves path arguments into resize targets, processes them one at a
// time, and prints a per-file report.
var rootCmd = &cobra.Command{
	Use:   "imgresize [paths...]",
	Short: "Resize images by a percentage factor",
	Long: `imgresize shrinks or enlarges image files by a percentage, writing each
output next to its source with a filename prefix. Directories are scanned
for known image formats (JPEG, PNG, GIF, BMP, TIFF, WebP); explicitly
named files are processed regardless of extension.

Examples:
  imgresize photo.jpg
  imgresize -p 30 photo.jpg
  imgresize -p 25 -o thumb_ --recursive ./images
  imgresize --name '\.png$' --output-format json ./images`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResize,
}

// init sets up all CLI flags for the root command.
// Flags are organized into three groups: resize options, filter options,
// and output options.
func init() {
	// Resize flags
	rootCmd.Flags().Float64VarP(&percent, "percent", "p", 50,
		"Resize percentage (e.g. 30 shrinks to 30% of the original)")
	rootCmd.Flags().StringVarP(&prefix, "prefix", "o", "resized_",
		"Output filename prefix")
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false,
		"Descend into subdirectories of directory arguments")
	rootCmd.Flags().IntVar(&jpegQuality, "jpeg-quality", 95,
		"JPEG encode quality (1-100)")

	// Filter flags
	rootCmd.Flags().StringVar(&filterNameRegex, "name", "",
		"Only process directory entries whose filename matches this regex")

	// Output flags
	rootCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "table",
		"Report format: table, json, csv")
	rootCmd.Flags().StringVar(&reportFile, "report-file", "",
		"Write the report to a file (default: stdout)")
	rootCmd.Flags().BoolVar(&noHeader, "no-header", false,
		"Hide table headers")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
}

// runResize resolves targets, processes them sequentially, and outputs
// the report. Per-file failures are logged and reflected in the exit
// code, but never abort the batch.
func runResize(cmd *cobra.Command, args []string) error {
	if err := validateOptions(percent, prefix, jpegQuality, outputFormat); err != nil {
		return err
	}

	filters, err := buildFilters(filterNameRegex)
	if err != nil {
		return err
	}

	// Arguments are valid; anything from here on is a runtime failure and
	// usage help would be noise.
	cmd.SilenceUsage = true

	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	scanner := scan.NewScanner(args, recursive, filters)
	scanned := scanner.Scan()

	for _, missing := range scanned.Missing {
		log.WithField("path", missing).Error("path not found")
	}

	if len(scanned.Targets) == 0 {
		return fmt.Errorf("no image files to process")
	}

	proc := imgresize.NewProcessor()
	proc.JPEGQuality = jpegQuality

	results := make([]*imgresize.Result, 0, len(scanned.Targets))
	failed := 0
	for i, target := range scanned.Targets {
		r := proc.Process(imgresize.Job{
			SourcePath: target,
			Percent:    percent,
			Prefix:     prefix,
		})
		results = append(results, r)

		if r.Failed() {
			failed++
			log.WithFields(log.Fields{
				"progress": fmt.Sprintf("%d/%d", i+1, len(scanned.Targets)),
				"path":     target,
				"error":    r.Err,
			}).Error("resize failed")
			continue
		}
		log.WithFields(log.Fields{
			"progress": fmt.Sprintf("%d/%d", i+1, len(scanned.Targets)),
			"path":     target,
			"output":   filepath.Base(r.OutputPath),
		}).Info("resized")
	}

	// Format and output the report
	formatter := output.NewFormatter(outputFormat, noHeader)
	report := formatter.Format(results)

	if reportFile != "" {
		if err := formatter.WriteToFile(report, reportFile); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to: %s\n", reportFile)
	} else {
		fmt.Print(report)
	}

	if failed > 0 {
		return ErrPartialFailure
	}
	return nil
}

// Execute adds all child commands to the root command and executes it.
func Execute() error {
	return rootCmd.Execute()
}

// validateOptions checks flag values that cobra cannot validate itself.
// Violations are fatal argument errors, reported before any processing.
func validateOptions(percent float64, prefix string, jpegQuality int, format string) error {
	if percent <= 0 {
		return fmt.Errorf("--percent must be greater than 0, got %v", percent)
	}
	if prefix == "" {
		return fmt.Errorf("--prefix must not be empty")
	}
	if jpegQuality < 1 || jpegQuality > 100 {
		return fmt.Errorf("--jpeg-quality must be between 1 and 100, got %d", jpegQuality)
	}
	switch format {
	case "table", "json", "csv":
	default:
		return fmt.Errorf("unknown --output-format: %s", format)
	}
	return nil
}

// buildFilters constructs the directory-scan filters from flag values.
func buildFilters(nameRegex string) (*scan.Filters, error) {
	filters := scan.NewFilters()
	if nameRegex != "" {
		re, err := regexp.Compile(nameRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid --name regex: %w", err)
		}
		filters.NameRegex = re
	}
	return filters, nil
}
