package report

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// StructuredRenderer emits the machine-readable JSON encoding. Every
// field of the data model is serialized with stable key names and
// arrays keep source order, so metrics can be re-derived from the
// embedded lists.
type StructuredRenderer struct{}

func (*StructuredRenderer) Render(r *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (*StructuredRenderer) Extension() string { return "json" }

// YAMLRenderer emits the same structured document as YAML.
type YAMLRenderer struct{}

func (*YAMLRenderer) Render(r *Report, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(r)
}

func (*YAMLRenderer) Extension() string { return "yaml" }
