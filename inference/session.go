package inference

import (
	"context"
	"image"
	"os"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/nvr-ai/go-meter/images"
	"github.com/nvr-ai/go-meter/postprocess"
)

// Session is an Engine backed by an onnxruntime session with pre-allocated
// input and output tensors. One inference runs at a time per Session.
type Session struct {
	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

// NewSession loads the ONNX model at cfg.ModelPath and allocates the fixed
// input [1,3,size,size] and output [1,16,8400] tensors.
//
// Arguments:
//   - cfg: Session configuration; ModelPath must exist.
//
// Returns:
//   - *Session: The ready session.
//   - error: An error if the model or the onnxruntime library cannot be
//     loaded.
func NewSession(cfg Config) (*Session, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, errors.Wrapf(err, "model file not found: %s", cfg.ModelPath)
	}

	if !ort.IsInitialized() {
		if cfg.LibraryPath != "" {
			ort.SetSharedLibraryPath(cfg.LibraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errors.Wrap(err, "failed to initialize onnxruntime")
		}
	}

	size := cfg.InputSize
	if size <= 0 {
		size = DefaultConfig().InputSize
	}

	inputShape := ort.NewShape(1, 3, int64(size), int64(size))
	input, err := ort.NewTensor(inputShape, make([]float32, 3*size*size))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create input tensor")
	}

	outputShape := ort.NewShape(1, postprocess.NumChannels, postprocess.NumAnchors)
	output, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		input.Destroy()
		return nil, errors.Wrap(err, "failed to create output tensor")
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, errors.Wrap(err, "failed to create session options")
	}
	defer options.Destroy()

	if cfg.IntraOpThreads > 0 {
		if err := options.SetIntraOpNumThreads(cfg.IntraOpThreads); err != nil {
			input.Destroy()
			output.Destroy()
			return nil, errors.Wrap(err, "failed to set intra-op threads")
		}
	}

	session, err := ort.NewAdvancedSession(
		cfg.ModelPath,
		[]string{"images"},
		[]string{"output0"},
		[]ort.ArbitraryTensor{input},
		[]ort.ArbitraryTensor{output},
		options,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, errors.Wrapf(err, "failed to load ONNX model: %s", cfg.ModelPath)
	}

	return &Session{
		session: session,
		input:   input,
		output:  output,
	}, nil
}

// Infer fills the input tensor from img, runs the model, and returns a copy
// of the raw output tensor. The copy belongs to the caller; the session's
// own buffers are reused on the next call.
func (s *Session) Infer(ctx context.Context, img image.Image) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, errors.New("session is closed")
	}

	if err := images.FillTensor(img, s.input.GetData()); err != nil {
		return nil, err
	}

	if err := s.session.Run(); err != nil {
		return nil, errors.Wrap(err, "inference failed")
	}

	data := s.output.GetData()
	raw := make([]float32, len(data))
	copy(raw, data)
	return raw, nil
}

// Close releases the session and its tensors.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.input != nil {
		s.input.Destroy()
		s.input = nil
	}
	if s.output != nil {
		s.output.Destroy()
		s.output = nil
	}
	if s.session != nil {
		s.session.Destroy()
		s.session = nil
	}
	return nil
}
