// Package storage manages uploaded image files under the static asset root.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/digitalget/services-site/internal/core/ports"
)

// allowedExtensions is the image upload allow-list, compared
// case-insensitively.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

var (
	ErrNoFilename       = errors.New("upload has no filename")
	ErrBadExtension     = errors.New("file extension not allowed")
	ErrOutsideAssetRoot = errors.New("path escapes asset root")
)

// ImageStore stores and deletes image assets under a fixed root directory.
// References are either bare filenames (resolved under root/images) or
// sub-paths relative to the root; nothing outside the root is ever removed.
type ImageStore struct {
	root   string
	logger zerolog.Logger
}

var _ ports.ImageStore = (*ImageStore)(nil)

// NewImageStore resolves root to an absolute path and ensures the default
// image directory exists.
func NewImageStore(root string, logger zerolog.Logger) (*ImageStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve asset root: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(abs, "images"), 0o755); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &ImageStore{root: abs, logger: logger}, nil
}

// Store validates the upload and writes it under dir with a
// collision-resistant generated name. Nothing is written on validation
// failure.
func (s *ImageStore) Store(file *multipart.FileHeader, prefix, dir string) (string, error) {
	if file == nil || file.Filename == "" {
		return "", ErrNoFilename
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrBadExtension
	}

	// The name is built from the prefix, random hex and the validated
	// extension only, so no user-supplied path component survives.
	filename := filepath.Base(fmt.Sprintf("%s_%s%s", prefix, randomHex(8), ext))

	destDir, err := s.contain(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(destDir, filename))
	if err != nil {
		return "", fmt.Errorf("create asset: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}
	return filename, nil
}

// Delete removes the file referenced by a bare filename or a root-relative
// sub-path. The containment check against the asset root is the invariant
// keeping a crafted reference from deleting arbitrary paths; anything that
// resolves outside the root, or does not exist, is a silent no-op.
func (s *ImageStore) Delete(reference string) {
	if reference == "" {
		return
	}

	var candidate string
	if strings.ContainsAny(reference, `/\`) {
		candidate = filepath.Join(s.root, reference)
	} else {
		candidate = filepath.Join(s.root, "images", reference)
	}
	candidate = filepath.Clean(candidate)

	if !strings.HasPrefix(candidate, s.root+string(os.PathSeparator)) {
		s.logger.Warn().Str("reference", reference).Msg("refused to delete path outside asset root")
		return
	}
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return
	}
	if err := os.Remove(candidate); err != nil {
		s.logger.Warn().Err(err).Str("path", candidate).Msg("failed to delete asset")
	}
}

// contain resolves dir relative to the root and rejects escapes.
func (s *ImageStore) contain(dir string) (string, error) {
	resolved := filepath.Clean(filepath.Join(s.root, dir))
	if resolved != s.root && !strings.HasPrefix(resolved, s.root+string(os.PathSeparator)) {
		return "", ErrOutsideAssetRoot
	}
	return resolved, nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("filename entropy unavailable: %v", err))
	}
	return hex.EncodeToString(b)
}
