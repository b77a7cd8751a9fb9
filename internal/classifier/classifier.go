package classifier

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ImageExtensions are the recognized image extensions, without the dot.
// Matching is case-sensitive.
var ImageExtensions = []string{"png", "jpg", "jpeg", "ico"}

// MarkerSuffix is appended to the base name of generated output files.
const MarkerSuffix = "-min"

var (
	// ErrPathNotFound is returned when the requested path does not exist.
	ErrPathNotFound = errors.New("path does not exist")
	// ErrInvalidPath is returned when a path is neither an image nor a directory.
	ErrInvalidPath = errors.New("invalid file")
	// ErrNotADirectory is returned when a directory was required.
	ErrNotADirectory = errors.New("path is not a directory")
)

// Kind is the classification of an input path.
type Kind int

const (
	Invalid Kind = iota
	SingleImage
	Directory
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case SingleImage:
		return "image"
	case Directory:
		return "directory"
	default:
		return "invalid"
	}
}

// Extension returns the substring after the final "." of the name, and
// whether the name contained a "." at all.
func Extension(name string) (string, bool) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", false
	}
	return name[i+1:], true
}

// IsImage reports whether the name ends in a recognized image extension.
func IsImage(name string) bool {
	ext, ok := Extension(name)
	return ok && slices.Contains(ImageExtensions, ext)
}

// IsGenerated reports whether the name is a recognized image carrying the
// generated-output marker.
func IsGenerated(name string) bool {
	return IsImage(name) && strings.Contains(name, MarkerSuffix)
}

// Classify reports whether path names a single image or a directory.
// The path must exist.
func Classify(path string) (Kind, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Invalid, fmt.Errorf("%w: '%s'", ErrPathNotFound, path)
		}
		return Invalid, fmt.Errorf("failed to stat path: %w", err)
	}
	if IsImage(filepath.Base(path)) {
		return SingleImage, nil
	}
	if info.IsDir() {
		return Directory, nil
	}
	return Invalid, nil
}

// ListImages returns the immediate children of dir whose names qualify as
// images, in listing order. Subdirectories are skipped.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsImage(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// RequireDirectory returns ErrNotADirectory unless path is an existing directory.
func RequireDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: '%s'", ErrPathNotFound, path)
		}
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if !info.IsDir() {
		return ErrNotADirectory
	}
	return nil
}
