// Package main provides the entry point for the imgresize CLI tool.
//
// The imgresize command resizes image files by a percentage factor. It
// accepts files and directories, optionally descending into
// subdirectories, and writes each output next to its source with a
// configurable filename prefix. Orientation metadata is applied before
// resizing and animated GIFs keep their frames and timing.
//
// Usage:
//
//	imgresize [flags] [paths...]
//
// Examples:
//
//	imgresize photo.jpg
//	imgresize --percent 30 photo.jpg
//	imgresize --recursive --prefix small_ ./images
//
// For more information, run: imgresize --help
package main

import (
	"errors"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/ysko909/img-resizer/cmd/imgresize/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, cmd.ErrPartialFailure) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
