package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/owencmcgrath/hrml/pkg/fsutil"
)

func FuzzWriteAtomicIfChanged(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("<p>hello</p>\n"))
	f.Add([]byte("\x00\x01\x02\x03"))
	f.Add(make([]byte, 1024))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "out.html")
		ctx := context.Background()

		changed, err := fsutil.WriteAtomicIfChanged(ctx, path, content, 0644)
		if err != nil {
			t.Fatalf("first write failed: %v", err)
		}
		if !changed {
			t.Fatal("first write should report a change")
		}

		changed, err = fsutil.WriteAtomicIfChanged(ctx, path, content, 0644)
		if err != nil {
			t.Fatalf("second write failed: %v", err)
		}
		if changed {
			t.Fatal("second write of identical content should be skipped")
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("content mismatch: got %d bytes, want %d", len(got), len(content))
		}
	})
}
