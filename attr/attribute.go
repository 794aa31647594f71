package attr

import (
	"hash/fnv"
	"strings"
)

// Attribute is a Value with a name. The empty name is the null name.
type Attribute struct {
	name string
	Value
}

// NewAttribute creates an unassigned OBJECT attribute.
func NewAttribute(name string) *Attribute {
	return &Attribute{name: name, Value: Value{kind: slotOf(TypeObject)}}
}

// NewNamedAttribute creates an attribute holding raw under the variant raw
// classifies as.
func NewNamedAttribute(name string, raw any) *Attribute {
	return &Attribute{name: name, Value: *Of(raw)}
}

// NewAttributeFrom creates an attribute holding a copy of v.
func NewAttributeFrom(name string, v *Value) *Attribute {
	return &Attribute{name: name, Value: *Copy(v)}
}

// Name returns the attribute name.
func (a *Attribute) Name() string {
	return a.name
}

// SetName renames the attribute.
func (a *Attribute) SetName(name string) {
	a.name = name
}

// SetAttribute copies the value of other, then its name.
func (a *Attribute) SetAttribute(other *Attribute) error {
	if other == nil {
		return ErrInvalidAttribute
	}
	a.SetFrom(&other.Value)
	a.name = other.name
	return nil
}

// Equal reports whether both attributes have the same name, ignoring case,
// and payloads comparing equal.
func (a *Attribute) Equal(other *Attribute) bool {
	if a == nil || other == nil {
		return a == other
	}
	return strings.EqualFold(a.name, other.name) && a.Value.Equal(&other.Value)
}

// Hash combines the lower-cased name with the value hash.
func (a *Attribute) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(a.name)))
	return h.Sum64()*31 + a.Value.Hash()
}

// Clone returns an independent copy.
func (a *Attribute) Clone() *Attribute {
	return &Attribute{name: a.name, Value: *a.Value.Clone()}
}

// String returns "name=[payload:TYPE]".
func (a *Attribute) String() string {
	return a.name + "=" + a.Value.String()
}
