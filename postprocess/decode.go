package postprocess

import (
	"github.com/nvr-ai/go-meter/images"
	"github.com/pkg/errors"
)

// Decode converts the raw detector output into candidate detections.
//
// The output tensor is channel-major with shape [NumChannels, NumAnchors]:
// channels 0-3 hold box center-x, center-y, width and height as fractions
// of the model input size, channels 4..15 hold per-class scores. Scores are
// independent per class (they need not sum to 1), so each anchor takes the
// argmax.
//
// Arguments:
//   - output: The flat raw tensor, NumChannels*NumAnchors floats.
//   - targetWidth: Width of the image space boxes are emitted in.
//   - targetHeight: Height of the image space boxes are emitted in.
//   - scoreThreshold: Anchors whose best score is <= this are discarded.
//
// Returns:
//   - []Detection: Candidates in anchor order; empty for an all-background
//     tensor.
//   - error: A precondition error if the tensor has the wrong length.
func Decode(output []float32, targetWidth, targetHeight int, scoreThreshold float32) ([]Detection, error) {
	if len(output) != NumChannels*NumAnchors {
		return nil, errors.Errorf("raw tensor holds %d floats, want %d (%d channels x %d anchors)",
			len(output), NumChannels*NumAnchors, NumChannels, NumAnchors)
	}

	detections := make([]Detection, 0, 64)

	for idx := 0; idx < NumAnchors; idx++ {
		// Argmax over the class channels. The strict > keeps the first
		// class on equal scores, which downstream ordering relies on.
		classID := 0
		score := float32(-1e9)
		for col := 0; col < NumClasses; col++ {
			current := output[NumAnchors*(col+4)+idx]
			if current > score {
				score = current
				classID = col
			}
		}

		if score <= scoreThreshold {
			continue
		}

		xc, yc := output[idx], output[NumAnchors+idx]
		w, h := output[2*NumAnchors+idx], output[3*NumAnchors+idx]

		detections = append(detections, Detection{
			ClassID:    classID,
			ClassName:  ClassName(classID),
			Confidence: score,
			Box: images.Rect{
				X1: (xc - w/2) * float32(targetWidth),
				Y1: (yc - h/2) * float32(targetHeight),
				X2: (xc + w/2) * float32(targetWidth),
				Y2: (yc + h/2) * float32(targetHeight),
			},
		})
	}

	return detections, nil
}
