// Package util - image file loading for the CLI and tests.
package util

import (
	"image"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// ImageFile is an image loaded from disk.
type ImageFile struct {
	// Path is the path the image was loaded from.
	Path string
	// Image is the decoded image, EXIF orientation applied.
	Image image.Image
}

// LoadImage loads a single image file. Phone cameras record orientation in
// EXIF rather than rotating pixels, so auto-orientation is applied.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load image: %s", path)
	}
	return img, nil
}

// LoadDirectoryImages loads all image files from a directory, sorted by
// file name.
//
// Arguments:
//   - dir: Directory path containing image files.
//
// Returns:
//   - []ImageFile: The decoded images in name order.
//   - error: Error if the directory cannot be read or an image fails to
//     decode.
func LoadDirectoryImages(dir string) ([]ImageFile, error) {
	var files []ImageFile

	for _, pattern := range []string{"*.jpg", "*.jpeg", "*.png", "*.bmp"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to list %s", dir)
		}
		for _, path := range matches {
			img, err := LoadImage(path)
			if err != nil {
				return nil, err
			}
			files = append(files, ImageFile{Path: path, Image: img})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}
