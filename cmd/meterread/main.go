// Command meterread reads a utility meter value from a photo using an ONNX
// digit detector.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/nvr-ai/go-meter/inference"
	"github.com/nvr-ai/go-meter/meter"
	"github.com/nvr-ai/go-meter/util"
)

var log = logrus.New()

func main() {
	var (
		modelPath    string
		imagePath    string
		dirPath      string
		confidence   float64
		iou          float64
		onnxLibPath  string
		saveInputDir string
		verbose      bool
	)
	flag.StringVar(&modelPath, "model", "meter.onnx", "Path to the meter detector ONNX model")
	flag.StringVar(&imagePath, "image", "", "Path to a single meter photo")
	flag.StringVar(&dirPath, "dir", "", "Directory of meter photos to process")
	flag.Float64Var(&confidence, "confidence", 0.5, "Detection confidence threshold")
	flag.Float64Var(&iou, "iou", 0.45, "NMS IoU threshold")
	flag.StringVar(&onnxLibPath, "onnx-lib", "", "Path to the onnxruntime shared library")
	flag.StringVar(&saveInputDir, "save-input", "", "Directory to save letterboxed model inputs to")
	flag.BoolVar(&verbose, "v", false, "Log individual detections")
	flag.Parse()

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if (imagePath == "") == (dirPath == "") {
		log.Fatal("exactly one of -image or -dir is required")
	}

	cfg := inference.DefaultConfig()
	cfg.ModelPath = modelPath
	cfg.ScoreThreshold = float32(confidence)
	cfg.IoUThreshold = float32(iou)
	cfg.LibraryPath = onnxLibPath

	session, err := inference.NewSession(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize detector")
	}
	defer session.Close()

	reader := meter.NewReader(session, cfg)

	files, err := loadInputs(imagePath, dirPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load input images")
	}

	ctx := context.Background()
	for _, file := range files {
		result, err := reader.Read(ctx, file.Image)
		if err != nil {
			log.WithError(err).WithField("image", file.Path).Error("processing failed")
			continue
		}

		for _, d := range result.Detections {
			log.WithFields(logrus.Fields{
				"image":      file.Path,
				"class":      d.ClassName,
				"confidence": d.Confidence,
			}).Debug(d.String())
		}

		if saveInputDir != "" {
			if err := saveInput(saveInputDir, file.Path, result); err != nil {
				log.WithError(err).Warn("failed to save model input")
			}
		}

		if result.Text == "" {
			log.WithField("image", file.Path).Warn("no meter detected")
			continue
		}
		fmt.Printf("%s: %s\n", file.Path, result.Text)
	}
}

// loadInputs returns the images to process from either flag.
func loadInputs(imagePath, dirPath string) ([]util.ImageFile, error) {
	if imagePath != "" {
		img, err := util.LoadImage(imagePath)
		if err != nil {
			return nil, err
		}
		return []util.ImageFile{{Path: imagePath, Image: img}}, nil
	}
	return util.LoadDirectoryImages(dirPath)
}

// saveInput writes the letterboxed canvas next to the reading for visual
// inspection of what the model actually saw.
func saveInput(dir, srcPath string, result *meter.Reading) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	out := filepath.Join(dir, name+"-input.png")
	return imaging.Save(result.Input.Image, out)
}
