package attr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// ============================================================
// Export record
// ============================================================

// Export is the serializer-facing form of a value. Value holds a JSON-native
// payload (number, boolean, string) or the canonical text of the payload;
// it is nil for unassigned values.
type Export struct {
	Value any     `json:"value" yaml:"value" jsonschema:"description=Payload as a JSON scalar or its canonical text form"`
	Type  Variant `json:"type" yaml:"type" jsonschema:"description=Variant name"`
}

// Export returns the serializer-facing form of v.
func (v *Value) Export() Export {
	return Export{Value: v.exportPayload(), Type: v.typ()}
}

func (v *Value) exportPayload() any {
	if !v.assigned || v.raw == nil {
		return nil
	}
	switch p := v.raw.(type) {
	case int64, bool, string:
		return p
	case Timestamp:
		return int64(p)
	case float64:
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return formatReal(p)
		}
		return p
	}
	if v.typ() == TypeObject {
		return v.raw
	}
	return canonicalText(v.raw)
}

// Import replaces v with the content of an export record. Text payloads are
// read back through the variant's getters and the value's resolver.
func (v *Value) Import(e Export) {
	v.importRaw(e.Type, e.Value)
}

func (v *Value) importRaw(to Variant, raw any) {
	raw = normalizeNumber(raw)
	if raw == nil {
		v.setTyp(to)
		v.Uninitialize()
		return
	}
	v.CastAndSet(to, raw)
}

// normalizeNumber turns decoded JSON numbers into int64 or float64.
func normalizeNumber(raw any) any {
	n, ok := raw.(json.Number)
	if !ok {
		return raw
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// ExportSchema returns the JSON Schema of Export.
func ExportSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	return r.Reflect(&Export{})
}

// JSONSchema describes a variant as one of its canonical names.
func (Variant) JSONSchema() *jsonschema.Schema {
	names := make([]any, 0, numVariants)
	for _, n := range variantNames {
		names = append(names, n)
	}
	return &jsonschema.Schema{
		Type:        "string",
		Enum:        names,
		Description: "Variant name",
	}
}

// ============================================================
// JSON
// ============================================================

// MarshalJSON encodes the export record of v.
func (v *Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Export())
}

// UnmarshalJSON decodes an export record into v. A record without a type
// is classified from its payload.
func (v *Value) UnmarshalJSON(data []byte) error {
	var wire valueWire
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&wire); err != nil {
		return fmt.Errorf("attr: decode value: %w", err)
	}
	wire.apply(v)
	return nil
}

// valueWire is the decoding side of Export.
type valueWire struct {
	Value any      `json:"value" yaml:"value"`
	Type  *Variant `json:"type" yaml:"type"`
}

func (w valueWire) apply(v *Value) {
	raw := normalizeNumber(w.Value)
	to := Classify(raw)
	if w.Type != nil {
		to = *w.Type
	}
	v.importRaw(to, raw)
}

// attributeExport is the serialized form of an Attribute.
type attributeExport struct {
	Name  string  `json:"name" yaml:"name"`
	Value any     `json:"value" yaml:"value"`
	Type  Variant `json:"type" yaml:"type"`
}

type attributeWire struct {
	Name      string `json:"name" yaml:"name"`
	valueWire `yaml:",inline"`
}

func (a *Attribute) export() attributeExport {
	e := a.Export()
	return attributeExport{Name: a.name, Value: e.Value, Type: e.Type}
}

// MarshalJSON encodes the name and the export record of a.
func (a *Attribute) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.export())
}

// UnmarshalJSON decodes a name and an export record into a.
func (a *Attribute) UnmarshalJSON(data []byte) error {
	var wire attributeWire
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&wire); err != nil {
		return fmt.Errorf("attr: decode attribute: %w", err)
	}
	a.name = wire.Name
	wire.apply(&a.Value)
	return nil
}

// ============================================================
// YAML
// ============================================================

// MarshalYAML encodes the export record of v.
func (v *Value) MarshalYAML() (any, error) {
	return v.Export(), nil
}

// UnmarshalYAML decodes an export record into v.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var wire valueWire
	if err := node.Decode(&wire); err != nil {
		return fmt.Errorf("attr: decode value: %w", err)
	}
	wire.apply(v)
	return nil
}

// MarshalYAML encodes the name and the export record of a.
func (a *Attribute) MarshalYAML() (any, error) {
	return a.export(), nil
}

// UnmarshalYAML decodes a name and an export record into a.
func (a *Attribute) UnmarshalYAML(node *yaml.Node) error {
	var wire attributeWire
	if err := node.Decode(&wire); err != nil {
		return fmt.Errorf("attr: decode attribute: %w", err)
	}
	a.name = wire.Name
	wire.apply(&a.Value)
	return nil
}
