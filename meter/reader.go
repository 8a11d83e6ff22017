// Package meter wires the full reading pipeline: letterbox the photo, run
// the detector, decode and suppress detections, and assemble the reading.
package meter

import (
	"context"
	"image"

	"github.com/pkg/errors"

	"github.com/nvr-ai/go-meter/images"
	"github.com/nvr-ai/go-meter/inference"
	"github.com/nvr-ai/go-meter/postprocess"
	"github.com/nvr-ai/go-meter/reading"
)

// Reader turns meter photos into reading strings using an inference Engine.
// The post-processing is pure and synchronous; Reader is safe for
// concurrent use if its Engine is.
type Reader struct {
	engine         inference.Engine
	inputSize      int
	scoreThreshold float32
	iouThreshold   float32
}

// Reading is the result of processing one photo.
type Reading struct {
	// Text is the assembled reading. Empty means no meter was detected.
	Text string
	// Detections are the kept detections, confidence-descending, with
	// boxes in letterboxed-canvas space.
	Detections []postprocess.Detection
	// Input is the letterboxed image that was fed to the model, for
	// display or debugging, with its canvas→source transform.
	Input *images.LetterboxedImage
}

// NewReader creates a Reader over an engine. Zero thresholds and input size
// in cfg fall back to the defaults the detector was tuned with.
func NewReader(engine inference.Engine, cfg inference.Config) *Reader {
	def := inference.DefaultConfig()
	if cfg.InputSize <= 0 {
		cfg.InputSize = def.InputSize
	}
	if cfg.ScoreThreshold <= 0 {
		cfg.ScoreThreshold = def.ScoreThreshold
	}
	if cfg.IoUThreshold <= 0 {
		cfg.IoUThreshold = def.IoUThreshold
	}
	return &Reader{
		engine:         engine,
		inputSize:      cfg.InputSize,
		scoreThreshold: cfg.ScoreThreshold,
		iouThreshold:   cfg.IoUThreshold,
	}
}

// Read processes one photo end to end.
//
// Arguments:
//   - ctx: Context for the inference call.
//   - img: The meter photo, any dimensions.
//
// Returns:
//   - *Reading: The assembled reading plus kept detections and the model
//     input image.
//   - error: An inference or decode error; never returned for an empty
//     (no meter) result.
func (r *Reader) Read(ctx context.Context, img image.Image) (*Reading, error) {
	prepared := images.Letterbox(img, r.inputSize)

	raw, err := r.engine.Infer(ctx, prepared.Image)
	if err != nil {
		return nil, errors.Wrap(err, "inference")
	}

	detections, err := postprocess.Decode(raw, r.inputSize, r.inputSize, r.scoreThreshold)
	if err != nil {
		return nil, err
	}

	kept := postprocess.NMS(detections, r.iouThreshold)

	return &Reading{
		Text:       reading.Assemble(kept),
		Detections: kept,
		Input:      prepared,
	}, nil
}
