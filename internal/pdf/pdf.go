// Package pdf renders markdown documents as PDF.
package pdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mandolyte/mdtopdf"
)

// WriteFile renders markdown into a PDF file at pdfPath.
func WriteFile(markdown []byte, pdfPath string) error {
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(markdown); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// Render renders markdown and copies the PDF to w. The renderer only writes
// to files, so the document passes through a temporary directory.
func Render(markdown []byte, w io.Writer) error {
	dir, err := os.MkdirTemp("", "studycards-pdf-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	path := filepath.Join(dir, "export.pdf")
	if err := WriteFile(markdown, path); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy pdf: %w", err)
	}
	return nil
}
