package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.m4a")
	dst := filepath.Join(dir, "b.m4a")
	writeFile(t, src, "audio")

	if err := MoveFile(context.Background(), src, dst); err != nil {
		t.Fatalf("MoveFile() error = %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Errorf("source still exists: %v", err)
	}
	if got := readFile(t, dst); got != "audio" {
		t.Errorf("destination content = %q, want %q", got, "audio")
	}
}

func TestMoveFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "new.m4a")
	dst := filepath.Join(dir, "old.m4a")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	if err := MoveFile(context.Background(), src, dst); err != nil {
		t.Fatalf("MoveFile() error = %v", err)
	}
	if got := readFile(t, dst); got != "new" {
		t.Errorf("destination content = %q, want %q", got, "new")
	}
}

func TestMoveFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := MoveFile(context.Background(), filepath.Join(dir, "gone"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Error("MoveFile() expected error for missing source")
	}
}

func TestMoveFile_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.m4a")
	writeFile(t, src, "audio")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := MoveFile(ctx, src, filepath.Join(dir, "b.m4a")); err == nil {
		t.Error("MoveFile() expected error for cancelled context")
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source should be untouched: %v", err)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	dst := filepath.Join(dir, "b")
	writeFile(t, src, "data")

	if err := CopyFile(context.Background(), src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}
	if got := readFile(t, dst); got != "data" {
		t.Errorf("CopyFile() content = %q, want %q", got, "data")
	}
	if got := readFile(t, src); got != "data" {
		t.Errorf("source content changed to %q", got)
	}
}

func TestRemoveFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.info.json")
	b := filepath.Join(dir, "a.jpg")
	writeFile(t, a, "{}")
	writeFile(t, b, "jpg")

	n, err := RemoveFiles(a, b, filepath.Join(dir, "already-gone"))
	if err != nil {
		t.Fatalf("RemoveFiles() error = %v", err)
	}
	if n != 3 {
		t.Errorf("RemoveFiles() = %d, want 3", n)
	}
	if _, err := os.Stat(a); !os.IsNotExist(err) {
		t.Errorf("%s still exists", a)
	}
}

func TestRemoveFiles_ContinuesPastErrors(t *testing.T) {
	dir := t.TempDir()
	nonEmpty := filepath.Join(dir, "sub")
	if err := os.Mkdir(nonEmpty, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(nonEmpty, "keep"), "x")
	file := filepath.Join(dir, "f")
	writeFile(t, file, "x")

	n, err := RemoveFiles(nonEmpty, file)
	if err == nil {
		t.Error("RemoveFiles() expected error for non-empty directory")
	}
	if n != 1 {
		t.Errorf("RemoveFiles() = %d, want 1", n)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
