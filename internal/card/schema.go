package card

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/lernapp-2025/studycards-v3/schemas"
)

var faceSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemas.CardFace))
})

// ValidateFaceJSON checks a face document against the card face schema.
func ValidateFaceJSON(data []byte) error {
	schema, err := faceSchema()
	if err != nil {
		return fmt.Errorf("load card face schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFace, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidFace, strings.Join(msgs, "; "))
	}
	return nil
}
