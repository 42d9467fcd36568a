package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/owencmcgrath/hrml/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads file content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "note.hrml")
		content := []byte("jf Title\n")
		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
		if info.Path != path || info.Size != int64(len(content)) {
			t.Errorf("info = %+v", info)
		}
	})

	t.Run("returns ErrNotFound for missing file", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.hrml"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("returns ErrIsDirectory for directories", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Errorf("error = %v, want ErrIsDirectory", err)
		}
	})
}

func TestReadInput(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"", "-"} {
		got, name, err := fsutil.ReadInput(context.Background(), path, strings.NewReader("js x sj"))
		if err != nil {
			t.Fatalf("ReadInput(%q) error = %v", path, err)
		}
		if string(got) != "js x sj" || name != fsutil.StdinName {
			t.Errorf("ReadInput(%q) = %q, %q", path, got, name)
		}
	}

	path := filepath.Join(t.TempDir(), "note.hrml")
	if err := os.WriteFile(path, []byte("file"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	got, name, err := fsutil.ReadInput(context.Background(), path, strings.NewReader("stdin"))
	if err != nil {
		t.Fatalf("ReadInput() error = %v", err)
	}
	if string(got) != "file" || name != path {
		t.Errorf("ReadInput() = %q, %q", got, name)
	}
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		if _, err := fsutil.CheckModified(ctx, nil); !errors.Is(err, fsutil.ErrNilFileInfo) {
			t.Errorf("error = %v, want ErrNilFileInfo", err)
		}
	})

	t.Run("detects content changes only", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "note.hrml")
		if err := os.WriteFile(path, []byte("one"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		_, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		// Rewriting identical bytes is not a modification.
		if err := os.WriteFile(path, []byte("one"), 0644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		if modified, err := fsutil.CheckModified(ctx, info); err != nil || modified {
			t.Errorf("CheckModified() = %v, %v; want false, nil", modified, err)
		}

		if err := os.WriteFile(path, []byte("two"), 0644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		if modified, err := fsutil.CheckModified(ctx, info); err != nil || !modified {
			t.Errorf("CheckModified() = %v, %v; want true, nil", modified, err)
		}

		if err := os.Remove(path); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if modified, err := fsutil.CheckModified(ctx, info); err != nil || !modified {
			t.Errorf("CheckModified() after delete = %v, %v; want true, nil", modified, err)
		}
	})
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input, ext, want string
	}{
		{"notes.hrml", ".html", "notes.html"},
		{"dir/notes.hrml", ".txt", "dir/notes.txt"},
		{"README.md", ".hrml", "README.hrml"},
		{"noext", ".html", "noext.html"},
	}

	for _, tt := range tests {
		if got := fsutil.OutputPath(tt.input, tt.ext); got != tt.want {
			t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.input, tt.ext, got, tt.want)
		}
	}
}
