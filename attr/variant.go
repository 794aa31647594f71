package attr

import (
	"fmt"
	"strings"
)

// Variant identifies the kind of payload held by a Value.
//
// The declaration order is the priority order used by Parse: when a text
// could be read as several variants, the one declared first wins.
type Variant uint8

const (
	TypeEnumeration Variant = iota
	TypeTypeRef
	TypeUUID
	TypeInteger
	TypeReal
	TypeDate
	TypeBoolean
	TypeInetAddress
	TypeURL
	TypeURI
	TypeTimestamp
	TypePoint3D
	TypePoint2D
	TypePolyline3D
	TypePolyline2D
	TypeString
	TypeObject

	numVariants = int(TypeObject) + 1
)

var variantNames = [numVariants]string{
	TypeEnumeration: "ENUMERATION",
	TypeTypeRef:     "TYPE_REF",
	TypeUUID:        "UUID",
	TypeInteger:     "INTEGER",
	TypeReal:        "REAL",
	TypeDate:        "DATE",
	TypeBoolean:     "BOOLEAN",
	TypeInetAddress: "INET_ADDRESS",
	TypeURL:         "URL",
	TypeURI:         "URI",
	TypeTimestamp:   "TIMESTAMP",
	TypePoint3D:     "POINT3D",
	TypePoint2D:     "POINT2D",
	TypePolyline3D:  "POLYLINE3D",
	TypePolyline2D:  "POLYLINE2D",
	TypeString:      "STRING",
	TypeObject:      "OBJECT",
}

// String returns the canonical variant name.
func (v Variant) String() string {
	if int(v) < numVariants {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// Valid reports whether v is one of the catalog variants.
func (v Variant) Valid() bool {
	return int(v) < numVariants
}

// Variants returns every variant in catalog (priority) order.
func Variants() []Variant {
	out := make([]Variant, numVariants)
	for i := range out {
		out[i] = Variant(i)
	}
	return out
}

// VariantFromInt maps an ordinal back to its variant. Out-of-range ordinals
// yield TypeObject.
func VariantFromInt(i int) Variant {
	if i >= 0 && i < numVariants {
		return Variant(i)
	}
	return TypeObject
}

// ParseVariant resolves a canonical variant name, ignoring case.
func ParseVariant(name string) (Variant, error) {
	name = strings.TrimSpace(name)
	for i, n := range variantNames {
		if strings.EqualFold(n, name) {
			return Variant(i), nil
		}
	}
	return TypeObject, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, uint8(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// EnumType implements Enumerated so variants can be stored in ENUMERATION values.
func (v Variant) EnumType() string {
	return variantEnumName
}

// EnumName implements Enumerated.
func (v Variant) EnumName() string {
	return v.String()
}

// Ordinal implements Enumerated.
func (v Variant) Ordinal() int {
	return int(v)
}

const variantEnumName = "attr.Variant"
