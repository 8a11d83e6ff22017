// Package postprocess - decodes raw detector output into detections and
// filters them with Non-Maximum Suppression.
package postprocess

import "fmt"

const (
	// NumAnchors is the number of candidate positions in the detector's
	// fixed output grid.
	NumAnchors = 8400
	// NumClasses is the size of the output vocabulary.
	NumClasses = 12
	// NumChannels is box (cx, cy, w, h) plus one score channel per class.
	NumChannels = 4 + NumClasses
)

// MeterClasses is the detector's output vocabulary in channel order: the
// decimal point, the digits 0-9, then the kWh unit label printed after the
// last digit on the meter face.
var MeterClasses = []string{
	".", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "kwh",
}

const (
	// ClassDecimalPoint is the vocabulary index of the decimal point.
	ClassDecimalPoint = 0
	// ClassUnitLabel is the vocabulary index of the kWh unit label.
	ClassUnitLabel = 11
)

// ClassName returns the vocabulary symbol for a class ID.
func ClassName(classID int) string {
	if classID >= 0 && classID < len(MeterClasses) {
		return MeterClasses[classID]
	}
	return fmt.Sprintf("unknown_%d", classID)
}

// IsReadingSymbol reports whether a class ID contributes a character to the
// assembled meter reading. Digits and the decimal point do; the unit label
// does not.
func IsReadingSymbol(classID int) bool {
	return classID >= ClassDecimalPoint && classID < ClassUnitLabel
}
