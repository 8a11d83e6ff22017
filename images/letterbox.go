package images

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// LetterboxFill is the padding color for the unused border of the model
// input canvas. The detector was trained against this background.
var LetterboxFill = color.RGBA{R: 204, G: 204, B: 204, A: 255}

// LetterboxedImage is a source image scaled to fit a square model input,
// centered on a padded canvas, together with the transform needed to map
// detection boxes from canvas space back to the source image's space.
type LetterboxedImage struct {
	// Image is the padded square canvas fed to the model.
	Image *image.RGBA
	// Scale is the uniform factor the source was scaled by.
	Scale float32
	// OffsetX and OffsetY locate the scaled source on the canvas.
	OffsetX int
	OffsetY int
}

// Letterbox scales src to fit a target×target square while preserving its
// aspect ratio, pastes it centered on a canvas filled with LetterboxFill,
// and records the scale and offsets of the paste.
//
// Arguments:
//   - src: The source image, any dimensions.
//   - target: The square edge length of the model input, in pixels.
//
// Returns:
//   - *LetterboxedImage: The canvas plus its canvas→source transform.
func Letterbox(src image.Image, target int) *LetterboxedImage {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	longest := width
	if height > longest {
		longest = height
	}
	scale := float32(target) / float32(longest)
	scaledWidth := int(float32(width) * scale)
	scaledHeight := int(float32(height) * scale)

	// Lanczos3 matches the resampling the model saw during training.
	scaled := resize.Resize(uint(scaledWidth), uint(scaledHeight), src, resize.Lanczos3)

	canvas := image.NewRGBA(image.Rect(0, 0, target, target))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(LetterboxFill), image.Point{}, draw.Src)

	offsetX := (target - scaledWidth) / 2
	offsetY := (target - scaledHeight) / 2
	paste := image.Rect(offsetX, offsetY, offsetX+scaledWidth, offsetY+scaledHeight)
	draw.Draw(canvas, paste, scaled, scaled.Bounds().Min, draw.Src)

	return &LetterboxedImage{
		Image:   canvas,
		Scale:   scale,
		OffsetX: offsetX,
		OffsetY: offsetY,
	}
}

// ToOriginal maps a canvas-space rectangle back into the source image's
// coordinate space. The pipeline itself leaves detections in canvas space;
// this is for callers that overlay boxes on the original photo.
func (l *LetterboxedImage) ToOriginal(r Rect) Rect {
	return Rect{
		X1: (r.X1 - float32(l.OffsetX)) / l.Scale,
		Y1: (r.Y1 - float32(l.OffsetY)) / l.Scale,
		X2: (r.X2 - float32(l.OffsetX)) / l.Scale,
		Y2: (r.Y2 - float32(l.OffsetY)) / l.Scale,
	}
}

// FillTensor writes img into data as planar RGB float32, one full channel
// at a time in R, G, B order, each value divided by 255. This is the exact
// layout and normalization the detector was trained with.
//
// Arguments:
//   - img: The image to convert, typically a letterboxed canvas.
//   - data: The destination slice, at least 3*width*height long.
//
// Returns:
//   - error: An error if data is too small for the image.
func FillTensor(img image.Image, data []float32) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	channelSize := width * height
	if len(data) < channelSize*3 {
		return errors.Errorf("tensor buffer holds %d floats, needs %d for %dx%d input",
			len(data), channelSize*3, width, height)
	}

	red := data[0:channelSize]
	green := data[channelSize : channelSize*2]
	blue := data[channelSize*2 : channelSize*3]

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			red[i] = float32(r>>8) / 255.0
			green[i] = float32(g>>8) / 255.0
			blue[i] = float32(b>>8) / 255.0
			i++
		}
	}
	return nil
}
