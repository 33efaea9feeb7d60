// Package imgresize implements percentage-based resizing of image files.
//
// A Job names a source image, a scale percentage, and an output filename
// prefix. Process decodes the source, applies any embedded EXIF orientation
// so the output is upright, scales both dimensions by the percentage using
// Lanczos resampling, and writes the result next to the source file as
// <prefix><original name>. Animated GIFs are resized frame by frame with
// per-frame durations and loop settings preserved.
//
// Basic usage:
//
//	p := imgresize.NewProcessor()
//	r := p.Process(imgresize.Job{
//		SourcePath: "photo.jpg",
//		Percent:    30,
//		Prefix:     "resized_",
//	})
//	if r.Failed() {
//		// Handle r.Err
//	}
//
// Each job is independent: a failure is reported on its Result and never
// affects other jobs. Supported formats are JPEG, PNG, GIF, BMP, TIFF and
// WebP.
package imgresize

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	log "github.com/sirupsen/logrus"
)

// Error kinds reported on a Result. They are matchable with errors.Is
// through Result.Err.
var (
	// ErrPathNotFound means the source path does not exist or is not a
	// regular file.
	ErrPathNotFound = errors.New("path not found")

	// ErrUnsupportedFormat means the file contents or the output
	// extension name a format the codec stack cannot handle.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrDecodeFailure means the file looked like an image but could not
	// be decoded (truncated or corrupt data).
	ErrDecodeFailure = errors.New("cannot decode image")

	// ErrWriteFailure means the resized output could not be written.
	ErrWriteFailure = errors.New("cannot write output")
)

// Job describes a single source-image-to-output-image resize task.
type Job struct {
	SourcePath string  // Path to the source image
	Percent    float64 // Scale percentage, must be > 0
	Prefix     string  // Prepended to the source filename to form the output name
}

// Result holds the outcome of one processed Job.
type Result struct {
	SourcePath string // Source path as given on the Job
	OutputPath string // Path of the written output (empty on failure)
	OldWidth   int    // Source width after orientation correction
	OldHeight  int    // Source height after orientation correction
	NewWidth   int    // Output width
	NewHeight  int    // Output height
	Frames     int    // Number of frames written (1 for static images)
	Err        error  // Per-job error, nil on success
}

// Failed reports whether the job ended with an error.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Processor executes resize jobs sequentially. The zero value is not
// usable; create instances with NewProcessor.
type Processor struct {
	// JPEGQuality is the encode quality for JPEG outputs (1-100).
	JPEGQuality int

	// WebPQuality is the encode quality for WebP outputs (0-100).
	WebPQuality float32
}

// NewProcessor creates a Processor with default encode settings.
func NewProcessor() *Processor {
	return &Processor{
		JPEGQuality: 95,
		WebPQuality: 90,
	}
}

// Process runs a single job and returns its Result. Errors are recorded
// on the Result rather than aborting; callers decide how to surface them.
func (p *Processor) Process(job Job) *Result {
	r := &Result{SourcePath: job.SourcePath}

	info, err := os.Stat(job.SourcePath)
	if err != nil || info.IsDir() {
		r.Err = fmt.Errorf("%w: %s", ErrPathNotFound, job.SourcePath)
		return r
	}

	if strings.EqualFold(filepath.Ext(job.SourcePath), ".gif") {
		p.processGIF(job, r)
		return r
	}

	p.processStatic(job, r)
	return r
}

// processStatic handles all single-frame formats.
func (p *Processor) processStatic(job Job, r *Result) {
	if o := readOrientation(job.SourcePath); o > 1 {
		log.WithFields(log.Fields{
			"path":        job.SourcePath,
			"orientation": o,
		}).Debug("correcting EXIF orientation")
	}

	src, err := p.open(job.SourcePath)
	if err != nil {
		r.Err = classifyDecodeErr(err)
		return
	}

	bounds := src.Bounds()
	r.OldWidth, r.OldHeight = bounds.Dx(), bounds.Dy()
	r.NewWidth, r.NewHeight = ScaledSize(r.OldWidth, r.OldHeight, job.Percent)
	r.Frames = 1

	dst := imaging.Resize(src, r.NewWidth, r.NewHeight, imaging.Lanczos)

	out := OutputPath(job.SourcePath, job.Prefix)
	if err := p.save(dst, out); err != nil {
		r.Err = err
		return
	}
	r.OutputPath = out
}

// open decodes the source image with EXIF orientation applied. WebP goes
// through its own codec because the general-purpose decoder does not
// register the format.
func (p *Processor) open(path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return decodeWebP(path)
	}
	return imaging.Open(path, imaging.AutoOrientation(true))
}

// save encodes the resized image, inferring the format from the output
// extension.
func (p *Processor) save(img image.Image, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return p.encodeWebP(img, path)
	}

	err := imaging.Save(img, path,
		imaging.JPEGQuality(p.JPEGQuality),
		imaging.PNGCompressionLevel(png.BestCompression),
	)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedFormat) {
			return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return nil
}

// classifyDecodeErr maps a decode error onto the package error kinds.
func classifyDecodeErr(err error) error {
	if errors.Is(err, image.ErrFormat) {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return fmt.Errorf("%w: %v", ErrDecodeFailure, err)
}

// ScaledSize computes output dimensions for a percentage scale. Each axis
// is rounded independently and clamped to a 1px minimum so tiny
// percentages never yield a zero-dimension image.
func ScaledSize(width, height int, percent float64) (int, int) {
	scale := percent / 100
	w := int(math.Round(float64(width) * scale))
	h := int(math.Round(float64(height) * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// OutputPath derives the output path for a source file: the prefix is
// prepended to the filename and the file is placed in the source's
// directory. If that path already exists, a numeric suffix is appended
// before the extension until the name is free, so reruns never overwrite
// earlier outputs.
func OutputPath(src, prefix string) string {
	dir := filepath.Dir(src)
	base := filepath.Base(src)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	out := filepath.Join(dir, prefix+base)
	for idx := 1; pathExists(out); idx++ {
		out = filepath.Join(dir, fmt.Sprintf("%s%s_%d%s", prefix, stem, idx, ext))
	}
	return out
}

// pathExists reports whether a path exists at all.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// readOrientation returns the EXIF orientation tag of the file, or 1
// (upright) if the file carries no usable EXIF data. Used only for
// diagnostics; the actual transform is applied during decode.
func readOrientation(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 1
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 1
	}
	return o
}
