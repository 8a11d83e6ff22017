package postprocess

import (
	"sort"

	"github.com/nvr-ai/go-meter/images"
)

// NMS performs greedy Non-Maximum Suppression restricted to same-class
// comparisons: a digit never suppresses an overlapping decimal point, since
// adjacent glyphs of different classes legitimately overlap on a meter face.
//
// Detections are stable-sorted by descending confidence, so anchor order
// breaks ties and the result is deterministic for identical input. The
// highest-confidence detection of each overlapping same-class cluster is
// kept; a later detection is suppressed when its IoU with a kept one is
// strictly greater than iouThreshold.
//
// Arguments:
//   - detections: Decoded candidates, any order.
//   - iouThreshold: Overlap above which a same-class detection is dropped.
//
// Returns:
//   - []Detection: The kept subset, sorted by descending confidence.
func NMS(detections []Detection, iouThreshold float32) []Detection {
	n := len(detections)
	if n == 0 {
		return nil
	}

	sorted := make([]Detection, n)
	copy(sorted, detections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	filtered := make([]Detection, 0, n)
	used := make([]bool, n)

	for i := 0; i < n; i++ {
		if used[i] {
			continue
		}

		anchor := sorted[i]
		filtered = append(filtered, anchor)
		used[i] = true

		for j := i + 1; j < n; j++ {
			if used[j] || sorted[j].ClassID != anchor.ClassID {
				continue
			}
			if images.IoU(anchor.Box, sorted[j].Box) > iouThreshold {
				used[j] = true
			}
		}
	}

	return filtered
}
