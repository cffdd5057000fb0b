package pdf

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/veil-cli/internal/logger"
)

// ErrOCRToolNotFound indicates the OCR binaries are not installed.
var ErrOCRToolNotFound = errors.New("pdftoppm or tesseract not found in PATH")

// CommandRunner executes external commands.
// Abstracted for testing without the real binaries.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// CheckOCRAvailable reports whether the OCR toolchain is installed.
func CheckOCRAvailable() error {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return ErrOCRToolNotFound
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return ErrOCRToolNotFound
	}
	return nil
}

// InstallInstructions returns platform hints for the OCR toolchain.
func InstallInstructions() string {
	return strings.Join([]string{
		"OCR requires pdftoppm (poppler) and tesseract:",
		"  macOS:  brew install poppler tesseract",
		"  Debian: apt install poppler-utils tesseract-ocr",
	}, "\n")
}

// ocrPage rasterizes one page at 300 DPI and runs text recognition
// over it. Best effort: any failure logs a diagnostic and reports
// ok=false so the page falls back to its (empty) text layer.
func (e *Extractor) ocrPage(ctx context.Context, path string, num int) (string, bool) {
	tmp, err := os.MkdirTemp("", "veil-ocr-")
	if err != nil {
		logger.Warn("OCR failed on %s page %d: %v", path, num, err)
		return "", false
	}
	defer os.RemoveAll(tmp)

	prefix := filepath.Join(tmp, "page")
	_, err = e.runner.Run(ctx, "pdftoppm",
		"-f", strconv.Itoa(num), "-l", strconv.Itoa(num),
		"-r", "300", "-png", path, prefix)
	if err != nil {
		logger.Warn("OCR rasterization failed on %s page %d: %v", path, num, err)
		return "", false
	}

	images, err := filepath.Glob(prefix + "*.png")
	if err != nil || len(images) == 0 {
		logger.Warn("OCR produced no image for %s page %d", path, num)
		return "", false
	}

	out, err := e.runner.Run(ctx, "tesseract", images[0], "stdout")
	if err != nil {
		logger.Warn("OCR recognition failed on %s page %d: %v", path, num, err)
		return "", false
	}

	text := string(out)
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}
