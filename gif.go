package imgresize

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
)

// processGIF resizes a GIF frame by frame. Frames are composited onto the
// logical screen honoring each frame's disposal method, scaled, and
// re-palettized, so partial-update animations survive the resize. Frame
// count, per-frame delays and the loop count are carried over unchanged.
// Single-frame GIFs take the same path.
func (p *Processor) processGIF(job Job, r *Result) {
	f, err := os.Open(job.SourcePath)
	if err != nil {
		r.Err = fmt.Errorf("%w: %v", ErrDecodeFailure, err)
		return
	}
	g, err := gif.DecodeAll(f)
	f.Close()
	if err != nil {
		r.Err = classifyDecodeErr(err)
		return
	}
	if len(g.Image) == 0 {
		r.Err = fmt.Errorf("%w: no frames", ErrDecodeFailure)
		return
	}

	width, height := g.Config.Width, g.Config.Height
	if width == 0 || height == 0 {
		b := g.Image[0].Bounds()
		width, height = b.Max.X, b.Max.Y
	}

	r.OldWidth, r.OldHeight = width, height
	r.NewWidth, r.NewHeight = ScaledSize(width, height, job.Percent)
	r.Frames = len(g.Image)

	if r.Frames > 1 {
		log.WithFields(log.Fields{
			"path":   job.SourcePath,
			"frames": r.Frames,
		}).Debug("resizing animated image")
	}

	frames := make([]*image.Paletted, len(g.Image))
	disposals := make([]byte, len(g.Image))
	delays := make([]int, len(g.Image))

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	var restore *image.NRGBA

	for i, frame := range g.Image {
		disposal := frameDisposal(g, i)
		if disposal == gif.DisposalPrevious {
			restore = cloneNRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		scaled := imaging.Resize(canvas, r.NewWidth, r.NewHeight, imaging.Lanczos)

		pal := image.NewPaletted(image.Rect(0, 0, r.NewWidth, r.NewHeight), compositePalette(g, frame))
		draw.FloydSteinberg.Draw(pal, pal.Bounds(), scaled, image.Point{})
		frames[i] = pal

		// Output frames are full-size composites, so each one clears the
		// screen before the next is shown.
		disposals[i] = gif.DisposalBackground
		delays[i] = frameDelay(g, i)

		switch disposal {
		case gif.DisposalBackground:
			clearRect(canvas, frame.Bounds())
		case gif.DisposalPrevious:
			if restore != nil {
				canvas = restore
			}
		}
	}

	out := &gif.GIF{
		Image:     frames,
		Delay:     delays,
		Disposal:  disposals,
		LoopCount: g.LoopCount,
		Config: image.Config{
			ColorModel: frames[0].Palette,
			Width:      r.NewWidth,
			Height:     r.NewHeight,
		},
	}
	if int(g.BackgroundIndex) < len(frames[0].Palette) {
		out.BackgroundIndex = g.BackgroundIndex
	}

	outPath := OutputPath(job.SourcePath, job.Prefix)
	if err := writeGIF(out, outPath); err != nil {
		r.Err = err
		return
	}
	r.OutputPath = outPath
}

// writeGIF encodes the reassembled animation to a file.
func writeGIF(g *gif.GIF, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	if err := gif.EncodeAll(f, g); err != nil {
		f.Close()
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return nil
}

// compositePalette returns the frame's palette extended with the global
// color table. Composited frames can carry pixels inherited from earlier
// frames, which a partial frame's small local palette may not cover.
func compositePalette(g *gif.GIF, frame *image.Paletted) color.Palette {
	global, ok := g.Config.ColorModel.(color.Palette)
	if !ok || len(global) == 0 {
		return frame.Palette
	}

	merged := append(color.Palette{}, global...)
	for _, c := range frame.Palette {
		if len(merged) >= 256 {
			break
		}
		if !paletteContains(merged, c) {
			merged = append(merged, c)
		}
	}
	return merged
}

// paletteContains reports whether the palette already holds the color.
func paletteContains(p color.Palette, c color.Color) bool {
	cr, cg, cb, ca := c.RGBA()
	for _, e := range p {
		er, eg, eb, ea := e.RGBA()
		if cr == er && cg == eg && cb == eb && ca == ea {
			return true
		}
	}
	return false
}

// frameDisposal returns the disposal method for frame i, defaulting to
// DisposalNone when the file does not specify one.
func frameDisposal(g *gif.GIF, i int) byte {
	if i < len(g.Disposal) {
		return g.Disposal[i]
	}
	return gif.DisposalNone
}

// frameDelay returns the delay (in 100ths of a second) for frame i.
func frameDelay(g *gif.GIF, i int) int {
	if i < len(g.Delay) {
		return g.Delay[i]
	}
	return 0
}

// cloneNRGBA copies an NRGBA image, used to implement DisposalPrevious.
func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// clearRect resets a region of the canvas to fully transparent, used to
// implement DisposalBackground.
func clearRect(canvas *image.NRGBA, rect image.Rectangle) {
	draw.Draw(canvas, rect, image.Transparent, image.Point{}, draw.Src)
}
