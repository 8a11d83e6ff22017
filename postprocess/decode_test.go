package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anchorSpec describes one anchor to plant into a synthetic raw tensor.
type anchorSpec struct {
	idx          int
	cx, cy, w, h float32
	scores       map[int]float32
}

// makeTensor builds a channel-major [NumChannels, NumAnchors] tensor with
// the given anchors set and everything else zero (background).
func makeTensor(anchors ...anchorSpec) []float32 {
	out := make([]float32, NumChannels*NumAnchors)
	for _, a := range anchors {
		out[a.idx] = a.cx
		out[NumAnchors+a.idx] = a.cy
		out[2*NumAnchors+a.idx] = a.w
		out[3*NumAnchors+a.idx] = a.h
		for class, score := range a.scores {
			out[NumAnchors*(class+4)+a.idx] = score
		}
	}
	return out
}

// TestDecodeEmptyTensor checks that an all-background tensor decodes to no
// detections without error.
func TestDecodeEmptyTensor(t *testing.T) {
	detections, err := Decode(makeTensor(), 640, 640, 0.5)
	require.NoError(t, err)
	assert.Empty(t, detections)
}

// TestDecodeWrongShape checks that a malformed tensor is rejected up front
// instead of being silently misread.
func TestDecodeWrongShape(t *testing.T) {
	_, err := Decode(make([]float32, 100), 640, 640, 0.5)
	assert.Error(t, err)

	_, err = Decode(make([]float32, NumChannels*NumAnchors+1), 640, 640, 0.5)
	assert.Error(t, err)
}

// TestDecodeBoxConversion verifies the center/size → corner conversion
// scaled to the target image space.
func TestDecodeBoxConversion(t *testing.T) {
	raw := makeTensor(anchorSpec{
		idx: 17, cx: 0.5, cy: 0.5, w: 0.2, h: 0.1,
		scores: map[int]float32{6: 0.9},
	})

	detections, err := Decode(raw, 640, 640, 0.5)
	require.NoError(t, err)
	require.Len(t, detections, 1)

	d := detections[0]
	assert.Equal(t, 6, d.ClassID)
	assert.Equal(t, "5", d.ClassName)
	assert.InDelta(t, 0.9, d.Confidence, 1e-6)
	assert.InDelta(t, 256, d.Box.X1, 1e-3)
	assert.InDelta(t, 288, d.Box.Y1, 1e-3)
	assert.InDelta(t, 384, d.Box.X2, 1e-3)
	assert.InDelta(t, 352, d.Box.Y2, 1e-3)
}

// TestDecodeThresholdIsStrict checks that a score exactly equal to the
// threshold is rejected and only strictly greater scores are emitted.
func TestDecodeThresholdIsStrict(t *testing.T) {
	raw := makeTensor(
		anchorSpec{idx: 0, cx: 0.2, cy: 0.2, w: 0.1, h: 0.1, scores: map[int]float32{1: 0.5}},
		anchorSpec{idx: 1, cx: 0.6, cy: 0.6, w: 0.1, h: 0.1, scores: map[int]float32{2: 0.51}},
	)

	detections, err := Decode(raw, 640, 640, 0.5)
	require.NoError(t, err)
	require.Len(t, detections, 1)
	assert.Equal(t, "1", detections[0].ClassName)
	for _, d := range detections {
		assert.Greater(t, d.Confidence, float32(0.5))
	}
}

// TestDecodeArgmaxTieBreak checks that equal scores resolve to the lowest
// class index, matching the strict > comparison.
func TestDecodeArgmaxTieBreak(t *testing.T) {
	raw := makeTensor(anchorSpec{
		idx: 5, cx: 0.5, cy: 0.5, w: 0.1, h: 0.1,
		scores: map[int]float32{3: 0.8, 7: 0.8},
	})

	detections, err := Decode(raw, 640, 640, 0.5)
	require.NoError(t, err)
	require.Len(t, detections, 1)
	assert.Equal(t, 3, detections[0].ClassID)
}

// TestDecodeDeterminism checks that two decodes of the same tensor produce
// identical, order-identical results.
func TestDecodeDeterminism(t *testing.T) {
	raw := makeTensor(
		anchorSpec{idx: 100, cx: 0.3, cy: 0.4, w: 0.05, h: 0.1, scores: map[int]float32{4: 0.7}},
		anchorSpec{idx: 2500, cx: 0.6, cy: 0.4, w: 0.05, h: 0.1, scores: map[int]float32{0: 0.8}},
		anchorSpec{idx: 8399, cx: 0.9, cy: 0.4, w: 0.05, h: 0.1, scores: map[int]float32{11: 0.6}},
	)

	first, err := Decode(raw, 640, 640, 0.5)
	require.NoError(t, err)
	second, err := Decode(raw, 640, 640, 0.5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	// Anchor order is preserved.
	assert.Equal(t, []string{"3", ".", "kwh"},
		[]string{first[0].ClassName, first[1].ClassName, first[2].ClassName})
}

// TestDecodeRectangularTarget verifies boxes scale independently per axis.
func TestDecodeRectangularTarget(t *testing.T) {
	raw := makeTensor(anchorSpec{
		idx: 3, cx: 0.5, cy: 0.5, w: 0.5, h: 0.5,
		scores: map[int]float32{2: 0.9},
	})

	detections, err := Decode(raw, 1000, 500, 0.5)
	require.NoError(t, err)
	require.Len(t, detections, 1)
	assert.InDelta(t, 250, detections[0].Box.X1, 1e-3)
	assert.InDelta(t, 125, detections[0].Box.Y1, 1e-3)
	assert.InDelta(t, 750, detections[0].Box.X2, 1e-3)
	assert.InDelta(t, 375, detections[0].Box.Y2, 1e-3)
}

func TestClassName(t *testing.T) {
	assert.Equal(t, ".", ClassName(0))
	assert.Equal(t, "0", ClassName(1))
	assert.Equal(t, "9", ClassName(10))
	assert.Equal(t, "kwh", ClassName(11))
	assert.Equal(t, "unknown_12", ClassName(12))
	assert.Equal(t, "unknown_-1", ClassName(-1))
}

func TestIsReadingSymbol(t *testing.T) {
	assert.True(t, IsReadingSymbol(ClassDecimalPoint))
	assert.True(t, IsReadingSymbol(1))
	assert.True(t, IsReadingSymbol(10))
	assert.False(t, IsReadingSymbol(ClassUnitLabel))
	assert.False(t, IsReadingSymbol(-1))
}
