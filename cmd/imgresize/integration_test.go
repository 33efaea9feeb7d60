package main

import (
	"encoding/json"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildBinary compiles the imgresize binary into a temp dir.
func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "imgresize_test_bin")
	build := exec.Command("go", "build", "-o", binaryPath, ".")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("build imgresize: %v", err)
	}
	return binaryPath
}

// mustWritePNG writes a solid PNG fixture of the given size.
func mustWritePNG(t *testing.T, path string, width, height int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = 0x40
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
}

// TestCLIResizesDirectory runs the built binary against a fixture tree and
// verifies the produced files and the JSON report.
func TestCLIResizesDirectory(t *testing.T) {
	binary := buildBinary(t)
	root := t.TempDir()

	mustWritePNG(t, filepath.Join(root, "a.png"), 80, 60)
	mustWritePNG(t, filepath.Join(root, "sub", "b.png"), 40, 40)

	// Non-recursive: only a.png is processed
	cmd := exec.Command(binary, "--output-format", "json", "-p", "50", root)
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var payload struct {
		Summary struct {
			Processed int `json:"processed"`
			Succeeded int `json:"succeeded"`
			Failed    int `json:"failed"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}
	if payload.Summary.Processed != 1 || payload.Summary.Succeeded != 1 {
		t.Fatalf("summary: got %+v", payload.Summary)
	}

	assertPNGSize(t, filepath.Join(root, "resized_a.png"), 40, 30)
	if _, err := os.Stat(filepath.Join(root, "sub", "resized_b.png")); err == nil {
		t.Error("non-recursive run should not have processed sub/b.png")
	}

	// Recursive: sub/b.png is processed too
	cmd = exec.Command(binary, "--recursive", "-p", "50", root)
	if err := cmd.Run(); err != nil {
		t.Fatalf("recursive run failed: %v", err)
	}
	assertPNGSize(t, filepath.Join(root, "sub", "resized_b.png"), 20, 20)
}

// TestCLIPartialFailureExitCode verifies that a corrupt file yields exit
// code 2 while valid files in the same run are still processed.
func TestCLIPartialFailureExitCode(t *testing.T) {
	binary := buildBinary(t)
	root := t.TempDir()

	mustWritePNG(t, filepath.Join(root, "good.png"), 20, 20)
	if err := os.WriteFile(filepath.Join(root, "bad.png"), []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cmd := exec.Command(binary, "-p", "50", root)
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected non-zero exit for partial failure")
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("run failed to start: %v", err)
	}
	if code := exitErr.ExitCode(); code != 2 {
		t.Errorf("exit code: got %d, want 2", code)
	}

	// The good file must still have been resized
	assertPNGSize(t, filepath.Join(root, "resized_good.png"), 10, 10)
}

// TestCLIRejectsBadPercent verifies that argument errors abort before any
// processing.
func TestCLIRejectsBadPercent(t *testing.T) {
	binary := buildBinary(t)
	root := t.TempDir()
	mustWritePNG(t, filepath.Join(root, "a.png"), 20, 20)

	cmd := exec.Command(binary, "-p", "-5", root)
	if err := cmd.Run(); err == nil {
		t.Fatal("expected non-zero exit for invalid percent")
	}

	if _, err := os.Stat(filepath.Join(root, "resized_a.png")); err == nil {
		t.Error("no file should have been processed")
	}
}

// assertPNGSize fails unless the file exists and has the given dimensions.
func assertPNGSize(t *testing.T, path string, width, height int) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("expected output %s: %v", path, err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	if cfg.Width != width || cfg.Height != height {
		t.Errorf("%s: got %dx%d, want %dx%d", path, cfg.Width, cfg.Height, width, height)
	}
}
