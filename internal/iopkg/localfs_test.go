package iopkg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "z.txt")
	if Exists(p) {
		t.Fatalf("Exists(%q) before create", p)
	}
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !Exists(p) {
		t.Fatalf("Exists(%q)=false after create", p)
	}
	if Exists(dir) {
		t.Fatalf("Exists(dir)=true; directories are not regular files")
	}
	if _, err := LocalFile(dir); !errors.Is(err, ErrNotRegular) {
		t.Fatalf("LocalFile(dir) err=%v; want ErrNotRegular", err)
	}
}

func TestCreateTempAndReplace(t *testing.T) {
	dir := t.TempDir()
	f, err := CreateTemp(filepath.Join(dir, "sub"))
	if err != nil {
		t.Fatalf("CreateTemp err: %v", err)
	}
	_, _ = f.Write([]byte("new"))
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "photo.png")
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Replace(f.Name(), dst); err != nil {
		t.Fatalf("Replace err: %v", err)
	}
	b, _ := os.ReadFile(dst)
	if string(b) != "new" {
		t.Fatalf("dst content %q; want overwrite", string(b))
	}
	if _, err := os.Stat(f.Name()); !os.IsNotExist(err) {
		t.Fatalf("temp file still present: %v", err)
	}
}
