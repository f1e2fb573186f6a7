package datasync

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lernapp-2025/studycards-v3/internal/folder"
	"github.com/lernapp-2025/studycards-v3/internal/pdf"
)

// Outline is the YAML document for exports and imports.
type Outline struct {
	Folders []OutlineFolder `yaml:"folders"`
}

// OutlineFolder is one folder in an Outline. CardSets are exported for
// reference and ignored on import.
type OutlineFolder struct {
	Name     string           `yaml:"name"`
	Color    string           `yaml:"color,omitempty"`
	CardSets []OutlineCardSet `yaml:"card_sets,omitempty"`
	Children []OutlineFolder  `yaml:"children,omitempty"`
}

type OutlineCardSet struct {
	Name      string `yaml:"name"`
	CardCount int    `yaml:"card_count"`
}

// NewOutline converts a folder forest to an Outline.
func NewOutline(roots []*folder.Node) Outline {
	return Outline{Folders: outlineFolders(roots)}
}

func outlineFolders(nodes []*folder.Node) []OutlineFolder {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]OutlineFolder, 0, len(nodes))
	for _, n := range nodes {
		of := OutlineFolder{Name: n.Name, Color: n.Color, Children: outlineFolders(n.Children)}
		for _, s := range n.CardSets {
			of.CardSets = append(of.CardSets, OutlineCardSet{Name: s.Name, CardCount: s.CardCount})
		}
		out = append(out, of)
	}
	return out
}

// Markdown renders a folder forest as a nested markdown list.
func Markdown(roots []*folder.Node) string {
	var b strings.Builder
	b.WriteString("# Folder Structure\n\n")
	if len(roots) == 0 {
		b.WriteString("_No folders._\n")
		return b.String()
	}
	folder.Walk(roots, func(n *folder.Node, depth int) bool {
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(&b, "%s- **%s** (%d sets)\n", indent, escapeMarkdown(n.Name), len(n.CardSets))
		for _, s := range n.CardSets {
			fmt.Fprintf(&b, "%s  - %s: %d cards\n", indent, escapeMarkdown(s.Name), s.CardCount)
		}
		return true
	})
	return b.String()
}

var markdownEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// Export writes roots to w in the given format.
func Export(w io.Writer, roots []*folder.Node, format Format) error {
	switch format {
	case FormatText:
		_, err := io.WriteString(w, folder.ExportStructure(roots))
		return err
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(roots))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewOutline(roots)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatPDF:
		return pdf.Render([]byte(Markdown(roots)), w)
	}
	return fmt.Errorf("unknown export format %q", format)
}
