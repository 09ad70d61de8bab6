// Package safety provides helpers for sandboxed file writes.
package safety

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ToolError is a machine-readable error body with a stable code.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact, single-line JSON string.
func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

const (
	CodeOutsideSandbox = "ERR_PATH_OUTSIDE_SANDBOX"
	CodeDeniedWrite    = "ERR_DENIED_WRITE"
)

// deniedPrefixes are root-relative directories generated files may never land in.
var deniedPrefixes = []string{".git", ".agent"}

// InitWriteRoot resolves an absolute write root. Empty means the current directory.
func InitWriteRoot(root string) (string, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		root = cwd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("abs(writeRoot): %w", err)
	}
	// Resolve symlinks where possible so boundary checks compare like with like.
	if r, err := filepath.EvalSymlinks(abs); err == nil {
		abs = r
	}
	return abs, nil
}

// ValidateWritePath resolves relPath against absRoot and returns the absolute
// target. It rejects absolute inputs, parent traversal, symlink escapes through
// an existing ancestor, and anything under .git/ or .agent/.
func ValidateWritePath(absRoot, relPath string) (string, error) {
	if filepath.IsAbs(relPath) {
		return "", ToolError{Code: CodeOutsideSandbox, Message: "absolute paths are not allowed"}
	}
	cleaned := filepath.Clean(relPath)
	if cleaned == "." || cleaned == "" {
		return "", ToolError{Code: CodeDeniedWrite, Message: "write target must name a file"}
	}

	candidate := filepath.Join(absRoot, cleaned)

	// Resolve the whole candidate if it exists, otherwise the parent directory,
	// which reveals escapes via a symlinked ancestor of a new file.
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else if resolvedParent, err2 := filepath.EvalSymlinks(filepath.Dir(candidate)); err2 == nil {
		candidate = filepath.Join(resolvedParent, filepath.Base(candidate))
	}

	rel, err := filepath.Rel(absRoot, candidate)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", ToolError{Code: CodeOutsideSandbox, Message: "requested path resolves outside the sandbox root"}
	}

	relSlash := filepath.ToSlash(rel)
	for _, p := range deniedPrefixes {
		if relSlash == p || strings.HasPrefix(relSlash, p+"/") {
			return "", ToolError{Code: CodeDeniedWrite, Message: "writes under " + p + "/ are not allowed"}
		}
	}
	return candidate, nil
}
