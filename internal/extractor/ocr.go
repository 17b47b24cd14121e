package extractor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// OCR recognizes the text in a rendered page image. Implementations may
// fail per call; callers skip failed pages and keep going.
type OCR interface {
	Recognize(imagePath string) (string, error)
}

// renderDPI is the page raster resolution for OCR input.
const renderDPI = "200"

// TextOCR renders each page of a PDF to an image and runs the OCR engine
// over it, concatenating whatever text comes back. Individual page
// failures are ignored; only failures to render any page at all are
// errors. Requires pdftoppm (poppler-utils) for rendering.
func TextOCR(filePath string, ocr OCR) (string, error) {
	if ocr == nil {
		return "", fmt.Errorf("no OCR engine configured")
	}
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return "", fmt.Errorf("pdftoppm not available (install poppler-utils): %v", err)
	}

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	imgPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.Command("pdftoppm", "-r", renderDPI, "-png", filePath, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("pdftoppm failed: %v (output: %s)", err, string(out))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return "", fmt.Errorf("failed to read temp dir: %v", err)
	}
	var imageFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			imageFiles = append(imageFiles, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(imageFiles)
	if len(imageFiles) == 0 {
		return "", fmt.Errorf("pdftoppm produced no page images")
	}

	var pages []string
	for _, imgFile := range imageFiles {
		text, err := ocr.Recognize(imgFile)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n"), nil
}

// Tesseract shells out to the tesseract binary for page recognition.
type Tesseract struct {
	Lang string // defaults to "eng"
}

// Recognize runs tesseract over one page image and returns its text.
func (o Tesseract) Recognize(imagePath string) (string, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", fmt.Errorf("tesseract not available (install tesseract-ocr): %v", err)
	}
	lang := o.Lang
	if lang == "" {
		lang = "eng"
	}

	outBase := strings.TrimSuffix(imagePath, ".png") + "-ocr"
	// PSM 4: single column of variable-size text, which fits statements.
	cmd := exec.Command("tesseract", imagePath, outBase, "-l", lang, "--psm", "4")
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("tesseract failed: %v (output: %s)", err, string(out))
	}
	data, err := os.ReadFile(outBase + ".txt")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
