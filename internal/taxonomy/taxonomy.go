// Package taxonomy defines the fixed ten-category threat taxonomy that every
// assessment report must cover, and the schema version that pins it.
//
// The taxonomy itself is a living markdown document (ranked `#### N. Title`
// sections); this package parses it rather than hard-coding titles, so the
// document stays the source of truth.
package taxonomy

import (
	"errors"
	"fmt"

	"github.com/aegentdev/aivss/internal/taxonomy/builtin"
)

// SchemaVersion identifies the taxonomy revision carried in every report.
const SchemaVersion = "aivss-1.0"

// Size is the fixed number of categories in the taxonomy.
const Size = 10

var ErrUnknownSchemaVersion = errors.New("unrecognized schema version")

// Category is one entry of the fixed taxonomy. Rank is the declaration-order
// position (1-based) and the final ranking tie-break.
type Category struct {
	ID          string `json:"id"`
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CheckVersion rejects schema versions this engine does not know how to
// score against.
func CheckVersion(version string) error {
	if version != SchemaVersion {
		return fmt.Errorf("%w: %q (engine supports %s)", ErrUnknownSchemaVersion, version, SchemaVersion)
	}
	return nil
}

// Categories returns the ten categories in declaration order, parsed from
// the embedded taxonomy document.
func Categories() ([]Category, error) {
	return LoadFromFS(builtin.FS(), "owasp_agentic_top10.md")
}

// ByID looks up a category by identifier.
func ByID(id string) (Category, bool) {
	cats, err := Categories()
	if err != nil {
		return Category{}, false
	}
	for _, c := range cats {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// IDs returns the ten category identifiers in declaration order.
func IDs() ([]string, error) {
	cats, err := Categories()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.ID
	}
	return out, nil
}
