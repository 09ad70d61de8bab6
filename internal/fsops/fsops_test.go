package fsops_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/petasbytes/repostats-agent/internal/fsops"
	"github.com/petasbytes/repostats-agent/internal/safety"
)

func newRoot(t *testing.T) *fsops.Root {
	t.Helper()
	r, err := fsops.NewRoot(t.TempDir())
	if err != nil {
		t.Fatalf("NewRoot: %v", err)
	}
	return r
}

func TestWriteFile_HappyPathNested(t *testing.T) {
	r := newRoot(t)
	abs, err := r.WriteFile(filepath.Join("nested", "dir", "out.txt"), []byte("hello"))
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if abs != filepath.Join(r.Dir(), "nested", "dir", "out.txt") {
		t.Fatalf("unexpected abs path %q", abs)
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		t.Fatalf("verify read: %v", err)
	}
	if string(b) != "hello" {
		t.Fatalf("content mismatch: got %q", string(b))
	}
}

func TestWriteFile_Overwrites(t *testing.T) {
	r := newRoot(t)
	if _, err := r.WriteFile("plot.py", []byte("first")); err != nil {
		t.Fatalf("first write: %v", err)
	}
	abs, err := r.WriteFile("plot.py", []byte("second"))
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	b, _ := os.ReadFile(abs)
	if string(b) != "second" {
		t.Fatalf("expected overwrite, got %q", string(b))
	}
}

func TestErrorPropagation_WriteDenyList(t *testing.T) {
	r := newRoot(t)
	_, err := r.WriteFile(".git/HEAD", []byte("ref: refs/heads/main\n"))
	if err == nil {
		t.Fatal("expected deny for writes under .git/")
	}
	var te safety.ToolError
	if !errors.As(err, &te) {
		t.Fatalf("expected ToolError, got %T: %v", err, err)
	}
	if te.Code != safety.CodeDeniedWrite {
		t.Fatalf("unexpected code: %s", te.Code)
	}
}

func TestErrorPropagation_WriteTraversal(t *testing.T) {
	r := newRoot(t)
	_, err := r.WriteFile("../../x", []byte("x"))
	if err == nil {
		t.Fatal("expected traversal to be denied")
	}
	var te safety.ToolError
	if !errors.As(err, &te) {
		t.Fatalf("expected ToolError, got %T: %v", err, err)
	}
	if te.Code != safety.CodeOutsideSandbox {
		t.Fatalf("unexpected code: %s", te.Code)
	}
}
