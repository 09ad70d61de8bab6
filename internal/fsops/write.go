// Package fsops performs file writes confined to a sandbox root.
package fsops

import (
	"os"
	"path/filepath"

	"github.com/petasbytes/repostats-agent/internal/safety"
)

// Root is a resolved write root. Generated scripts, images and transcripts are
// all written through it.
type Root struct {
	abs string
}

// NewRoot resolves dir (empty means the working directory) into a Root.
func NewRoot(dir string) (*Root, error) {
	abs, err := safety.InitWriteRoot(dir)
	if err != nil {
		return nil, err
	}
	return &Root{abs: abs}, nil
}

// Dir returns the absolute root directory.
func (r *Root) Dir() string { return r.abs }

// Resolve validates relPath and returns its absolute location under the root.
func (r *Root) Resolve(relPath string) (string, error) {
	return safety.ValidateWritePath(r.abs, relPath)
}

// WriteFile writes content to a file addressed by a path relative to the root,
// overwriting any existing file and creating parent directories as needed.
// It returns the absolute path written.
func (r *Root) WriteFile(relPath string, content []byte) (string, error) {
	absPath, err := r.Resolve(relPath)
	if err != nil {
		return "", err // propagate ToolError unchanged
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(absPath, content, 0o644); err != nil {
		return "", err
	}
	return absPath, nil
}
