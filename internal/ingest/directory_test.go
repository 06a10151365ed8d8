package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func setupTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.png"))
	writeFile(t, filepath.Join(root, "b.txt"))
	writeFile(t, filepath.Join(root, ".hidden.png"))
	writeFile(t, filepath.Join(root, ".skipdir", "d.png"))
	writeFile(t, filepath.Join(root, "sub", "c.JPG"))
	return root
}

func TestScanDirectory_DefaultExtensions(t *testing.T) {
	root := setupTree(t)

	paths, stats, err := ScanDirectory(root, nil, true)
	if err != nil {
		t.Fatalf("ScanDirectory error: %v", err)
	}
	want := []string{
		filepath.Join(root, "a.png"),
		filepath.Join(root, "sub", "c.JPG"),
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
	if stats.Matched != 2 {
		t.Errorf("Matched = %d, want 2", stats.Matched)
	}
}

func TestScanDirectory_IncludesHidden(t *testing.T) {
	root := setupTree(t)

	paths, _, err := ScanDirectory(root, nil, false)
	if err != nil {
		t.Fatalf("ScanDirectory error: %v", err)
	}
	if len(paths) != 4 {
		t.Errorf("paths = %v, want hidden entries included (4 images)", paths)
	}
}

func TestScanDirectory_CustomExtensions(t *testing.T) {
	root := setupTree(t)

	paths, _, err := ScanDirectory(root, []string{".TXT"}, true)
	if err != nil {
		t.Fatalf("ScanDirectory error: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "b.txt" {
		t.Errorf("paths = %v, want only b.txt", paths)
	}
}

func TestScanDirectory_EmptyRoot(t *testing.T) {
	if _, _, err := ScanDirectory("  ", nil, false); err == nil {
		t.Fatal("ScanDirectory accepted blank root")
	}
}
