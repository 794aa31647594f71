package attr

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"
)

// ============================================================
// Timestamp
// ============================================================

// Timestamp is an instant expressed in milliseconds since the Unix epoch.
// It is numeric: comparators and the number getters treat it as an integer.
type Timestamp int64

// Now returns the current instant as a Timestamp.
func Now() Timestamp {
	return Timestamp(time.Now().UnixMilli())
}

// TimestampOf converts a time to a Timestamp, truncating to the millisecond.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time returns the instant as a local time.
func (ts Timestamp) Time() time.Time {
	return time.UnixMilli(int64(ts))
}

func (ts Timestamp) String() string {
	return formatTimestamp(ts)
}

// ============================================================
// URI
// ============================================================

// URI is a generic resource identifier. Unlike URL it accepts any scheme,
// including opaque forms such as "urn:isbn:096139210x" or "uuid:...".
type URI struct {
	ref *url.URL
}

// ParseURI parses text as a URI reference. Relative references are accepted.
func ParseURI(text string) (URI, error) {
	u, err := url.Parse(text)
	if err != nil {
		return URI{}, err
	}
	return URI{ref: u}, nil
}

// URIFromURL wraps a URL as a URI. The URL is copied.
func URIFromURL(u *url.URL) URI {
	if u == nil {
		return URI{}
	}
	c := *u
	return URI{ref: &c}
}

// IsZero reports whether the URI is empty.
func (u URI) IsZero() bool {
	return u.ref == nil
}

// Scheme returns the URI scheme, lower-cased.
func (u URI) Scheme() string {
	if u.ref == nil {
		return ""
	}
	return strings.ToLower(u.ref.Scheme)
}

// Host returns the host part without port.
func (u URI) Host() string {
	if u.ref == nil {
		return ""
	}
	return u.ref.Hostname()
}

// Opaque returns the opaque part of a non-hierarchical URI.
func (u URI) Opaque() string {
	if u.ref == nil {
		return ""
	}
	return u.ref.Opaque
}

// URL returns a copy of the underlying URL.
func (u URI) URL() *url.URL {
	if u.ref == nil {
		return nil
	}
	c := *u.ref
	return &c
}

func (u URI) String() string {
	if u.ref == nil {
		return ""
	}
	return u.ref.String()
}

// CompareTo implements Comparable.
func (u URI) CompareTo(other any) (int, bool) {
	o, ok := other.(URI)
	if !ok {
		return 0, false
	}
	return strings.Compare(u.String(), o.String()), true
}

// ============================================================
// Enumerations
// ============================================================

// Enumerated is implemented by payloads stored in ENUMERATION values.
type Enumerated interface {
	// EnumType is the qualified name of the enumeration, e.g. "shapes.Kind".
	EnumType() string
	// EnumName is the constant name, e.g. "CIRCLE".
	EnumName() string
	// Ordinal is the position of the constant in its enumeration.
	Ordinal() int
}

// EnumConstant is a registry-backed enumeration constant.
type EnumConstant struct {
	Type  string
	Name  string
	Index int
}

// EnumType implements Enumerated.
func (e EnumConstant) EnumType() string { return e.Type }

// EnumName implements Enumerated.
func (e EnumConstant) EnumName() string { return e.Name }

// Ordinal implements Enumerated.
func (e EnumConstant) Ordinal() int { return e.Index }

func (e EnumConstant) String() string {
	return enumText(e)
}

// enumText is the canonical "Type.CONSTANT" form.
func enumText(e Enumerated) string {
	return e.EnumType() + "." + e.EnumName()
}

// ============================================================
// Type references
// ============================================================

// TypeRef names a type known to the host application.
type TypeRef struct {
	Name string
}

func (t TypeRef) String() string {
	return t.Name
}

// TypeRefOf builds a TypeRef from a Go type, named as reflect prints it
// ("time.Time", "[]geom.Point2D").
func TypeRefOf(t reflect.Type) TypeRef {
	if t == nil {
		return TypeRef{}
	}
	return TypeRef{Name: t.String()}
}

// ============================================================
// Typed null
// ============================================================

// Null is an explicit absent payload that still carries its variant.
type Null struct {
	Type Variant
}

func (n Null) String() string {
	return fmt.Sprintf("null:%s", n.Type)
}
