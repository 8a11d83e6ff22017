package postprocess

import (
	"fmt"

	"github.com/nvr-ai/go-meter/images"
)

// Detection holds a single decoded detection. It is never mutated after
// decode; NMS only includes or excludes whole detections.
type Detection struct {
	ClassID    int
	ClassName  string
	Confidence float32
	Box        images.Rect
}

func (d Detection) String() string {
	return fmt.Sprintf("Object %s (confidence %f): (%f, %f), (%f, %f)",
		d.ClassName, d.Confidence, d.Box.X1, d.Box.Y1, d.Box.X2, d.Box.Y2)
}
