package ports

import "mime/multipart"

// ImageStore owns the filesystem lifecycle of uploaded images under the
// static asset root. It never owns the database reference; callers keep the
// two consistent.
type ImageStore interface {
	// Store validates and writes the upload under dir (a sub-path of the
	// asset root), returning the generated filename. It returns an error
	// without writing anything when the file has no name or an extension
	// outside the allow-list. A nil file is the caller's no-op case and
	// must not reach Store.
	Store(file *multipart.FileHeader, prefix, dir string) (string, error)
	// Delete resolves reference (bare filename or sub-path) against the
	// asset root and removes the file only when the resolved path stays
	// inside the root. Empty references and misses are silent no-ops.
	Delete(reference string)
}
