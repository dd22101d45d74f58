package utils

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// imageExts is the allow-list of accepted image extensions.
var imageExts = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"png":  {},
}

// sniffTypes are the content types an accepted upload may sniff as. The
// filename suffix alone is not trusted.
var sniffTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// ImageExt extracts the candidate extension from an uploaded filename: the
// lowercased segment after the first dot. Returns false when the filename
// has no dot or the extension is not on the allow-list.
func ImageExt(filename string) (string, bool) {
	if !strings.Contains(filename, ".") {
		return "", false
	}
	ext := strings.ToLower(strings.Split(filename, ".")[1])
	if _, ok := imageExts[ext]; !ok {
		return "", false
	}
	return ext, true
}

// ImageStore writes uploaded images to a flat directory, keyed by the owning
// content id.
type ImageStore struct {
	dir string
}

// NewImageStore creates the image directory if absent and returns a store
// rooted there.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir %s: %w", dir, err)
	}
	return &ImageStore{dir: dir}, nil
}

// Accept validates an upload: the filename extension must be on the
// allow-list and the leading bytes must sniff as an image. Returns the
// normalized extension on acceptance.
func (s *ImageStore) Accept(data []byte, filename string) (string, bool) {
	ext, ok := ImageExt(filename)
	if !ok {
		return "", false
	}
	if _, ok := sniffTypes[http.DetectContentType(data)]; !ok {
		return "", false
	}
	return ext, true
}

// Save writes the raw bytes verbatim under <id>.<ext>.
func (s *ImageStore) Save(data []byte, id uint64, ext string) error {
	path := filepath.Join(s.dir, fmt.Sprintf("%d.%s", id, ext))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save image %s: %w", path, err)
	}
	return nil
}

// Dir returns the directory images are served from.
func (s *ImageStore) Dir() string { return s.dir }
