package inference

// Config for the meter detector session.
type Config struct {
	// ModelPath is the path to the ONNX model file.
	ModelPath string
	// InputSize is the square model input edge in pixels.
	InputSize int
	// ScoreThreshold filters decoded anchors at or below this confidence.
	ScoreThreshold float32
	// IoUThreshold controls same-class Non-Maximum Suppression.
	IoUThreshold float32
	// LibraryPath optionally points at the onnxruntime shared library.
	// Empty means the onnxruntime default lookup.
	LibraryPath string
	// IntraOpThreads limits threads per inference run; 0 keeps the
	// onnxruntime default.
	IntraOpThreads int
}

// DefaultConfig returns the configuration the meter detector was trained
// and tuned with.
func DefaultConfig() Config {
	return Config{
		InputSize:      640,
		ScoreThreshold: 0.5,
		IoUThreshold:   0.45,
	}
}
