// Package inference - the detector engine interface and its onnxruntime
// implementation.
package inference

import (
	"context"
	"image"
)

// Engine runs the detector over a prepared (letterboxed, square) input
// image and returns the raw output tensor. The post-processing pipeline
// only depends on this interface, so it can be exercised with synthetic
// tensors and no model present.
type Engine interface {
	Infer(ctx context.Context, img image.Image) ([]float32, error)
	Close() error
}
