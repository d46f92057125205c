package taxonomy

import (
	"bytes"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// categoryHeadingLevel is the markdown heading level that opens a category
// section in the taxonomy document.
const categoryHeadingLevel = 4

// LoadFromFS parses the taxonomy document at path. Each `#### N. Title`
// heading opens a category; following paragraphs become its description.
func LoadFromFS(fsys fs.FS, path string) ([]Category, error) {
	source, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cats, err := parseDocument(source)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cats, nil
}

func parseDocument(source []byte) ([]Category, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var cats []Category
	var current *Category
	var desc []string

	flush := func() {
		if current != nil {
			current.Description = strings.TrimSpace(strings.Join(desc, "\n"))
			cats = append(cats, *current)
		}
		current = nil
		desc = nil
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level != categoryHeadingLevel {
				continue
			}
			flush()
			rank, name, err := splitHeading(extractText(node, source))
			if err != nil {
				return nil, err
			}
			current = &Category{
				ID:   fmt.Sprintf("AAI%03d", rank),
				Rank: rank,
				Name: name,
			}
		case *ast.Paragraph:
			if current != nil {
				desc = append(desc, extractText(node, source))
			}
		}
	}
	flush()

	if err := validate(cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// splitHeading separates "8. Agent Supply Chain and Dependency Attacks" into
// rank and title.
func splitHeading(heading string) (int, string, error) {
	numText, name, ok := strings.Cut(heading, ".")
	if !ok {
		return 0, "", fmt.Errorf("category heading %q missing rank prefix", heading)
	}
	rank, err := strconv.Atoi(strings.TrimSpace(numText))
	if err != nil {
		return 0, "", fmt.Errorf("category heading %q: bad rank: %w", heading, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, "", fmt.Errorf("category heading %q has empty title", heading)
	}
	return rank, name, nil
}

// validate enforces the fixed taxonomy shape: exactly ten categories with
// contiguous ranks 1..10.
func validate(cats []Category) error {
	if len(cats) != Size {
		return fmt.Errorf("taxonomy document defines %d categories, want %d", len(cats), Size)
	}
	for i, c := range cats {
		if c.Rank != i+1 {
			return fmt.Errorf("category %q has rank %d at position %d", c.Name, c.Rank, i+1)
		}
	}
	return nil
}

func extractText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(child, source))
		}
	}
	return buf.String()
}
