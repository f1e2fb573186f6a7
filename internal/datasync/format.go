// Package datasync moves folder structures in and out of the store: exports
// for reading or backup, and YAML outlines that are imported as new folders.
package datasync

import (
	"fmt"
	"strings"
)

// Format is an export format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
	FormatPDF      Format = "pdf"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatText, FormatMarkdown, FormatYAML, FormatPDF}

// ParseFormat accepts a format name or its common file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unknown export format %q (want one of text, markdown, yaml, pdf)", s)
}

// ContentType is the MIME type of documents in format f.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatYAML:
		return "application/yaml"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension is the file extension for format f, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatYAML:
		return "yaml"
	case FormatPDF:
		return "pdf"
	default:
		return "txt"
	}
}
