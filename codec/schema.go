package codec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaDecoder wraps a JSON decoder and validates every payload against a
// compiled JSON Schema before handing it to the inner decoder. Validation
// failures surface as decode errors.
type SchemaDecoder struct {
	inner  Decoder
	schema *jsonschema.Schema
}

// NewSchemaDecoder compiles schemaStr and returns a decoder that enforces it.
func NewSchemaDecoder(inner Decoder, schemaStr string) (*SchemaDecoder, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schemaStr)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return &SchemaDecoder{inner: inner, schema: schema}, nil
}

// ContentType returns the inner decoder's MIME type.
func (d *SchemaDecoder) ContentType() string {
	return d.inner.ContentType()
}

// Decode validates data against the schema, then decodes it into v.
func (d *SchemaDecoder) Decode(data []byte, v any) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := d.schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return d.inner.Decode(data, v)
}
