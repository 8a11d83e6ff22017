// Package reading assembles a meter reading string from digit detections.
package reading

import (
	"sort"
	"strings"

	"github.com/nvr-ai/go-meter/postprocess"
)

// Assemble filters detections to digits and decimal points, orders them
// left to right by box position, and concatenates their symbols into the
// value shown on the meter face. The unit label is dropped.
//
// No validation is applied to the result: duplicate or leading decimal
// points pass through unchanged, and an empty input yields "", which
// callers interpret as "no meter detected".
func Assemble(detections []postprocess.Detection) string {
	symbols := make([]postprocess.Detection, 0, len(detections))
	for _, d := range detections {
		if postprocess.IsReadingSymbol(d.ClassID) {
			symbols = append(symbols, d)
		}
	}

	// Spatial reading order, independent of the confidence order NMS
	// left the detections in.
	sort.SliceStable(symbols, func(i, j int) bool {
		return symbols[i].Box.X1 < symbols[j].Box.X1
	})

	var sb strings.Builder
	for _, d := range symbols {
		sb.WriteString(d.ClassName)
	}
	return sb.String()
}
