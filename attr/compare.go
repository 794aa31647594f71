package attr

import (
	"bytes"
	"encoding/binary"
	"hash/fnv"
	"math"
	"net/netip"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Comparable is implemented by payloads with a natural ordering. CompareTo
// reports false when other is not comparable with the receiver.
type Comparable interface {
	CompareTo(other any) (int, bool)
}

// ============================================================
// Names
// ============================================================

// CompareNames orders attribute names ignoring case. The empty name is the
// null name and sorts after every other name.
func CompareNames(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return 1
	case b == "":
		return -1
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// ============================================================
// Raw payloads
// ============================================================

// CompareRaw orders two payloads.
//
// Numbers compare by value whatever their width. Otherwise the natural
// ordering of a, then of b, is used; then structural equality; then the
// canonical text of both sides.
//
// Absent payloads are ranked asymmetrically: a nil a is greater than any b
// and a nil b is smaller than any a. Two nils are equal.
func CompareRaw(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}

	if fa, ok := asFloat64(a); ok {
		if fb, ok := asFloat64(b); ok {
			return compareFloat(fa, fb)
		}
	}
	if c, ok := naturalCompare(a, b); ok {
		return c
	}
	if c, ok := naturalCompare(b, a); ok {
		return -c
	}
	if reflect.DeepEqual(a, b) {
		return 0
	}
	return strings.Compare(canonicalText(a), canonicalText(b))
}

// compareFloat orders NaN above every other value, like a total order on
// doubles.
func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return 1
	}
	return -1
}

func boolOrder(b bool) int {
	if b {
		return 1
	}
	return 0
}

// naturalCompare applies the ordering of a to b.
func naturalCompare(a, b any) (int, bool) {
	if c, ok := a.(Comparable); ok {
		return c.CompareTo(b)
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), true
		}
	case bool:
		if y, ok := b.(bool); ok {
			return boolOrder(x) - boolOrder(y), true
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y), true
		}
	case uuid.UUID:
		if y, ok := b.(uuid.UUID); ok {
			return bytes.Compare(x[:], y[:]), true
		}
	case netip.Addr:
		if y, ok := b.(netip.Addr); ok {
			return x.Compare(y), true
		}
	case TypeRef:
		if y, ok := b.(TypeRef); ok {
			return strings.Compare(x.Name, y.Name), true
		}
	case Enumerated:
		if y, ok := b.(Enumerated); ok && x.EnumType() == y.EnumType() {
			return x.Ordinal() - y.Ordinal(), true
		}
	}
	return 0, false
}

// ============================================================
// Values
// ============================================================

// CompareValues orders two values by payload. A nil or unassigned value
// counts as an absent payload.
func CompareValues(a, b *Value) int {
	if a == b {
		return 0
	}
	return CompareRaw(payloadOf(a), payloadOf(b))
}

func payloadOf(v *Value) any {
	if v == nil || !v.assigned {
		return nil
	}
	return v.raw
}

// Equal reports whether both values hold payloads comparing equal.
func (v *Value) Equal(other *Value) bool {
	return CompareValues(v, other) == 0
}

// Hash returns a hash consistent with Equal. Numbers, and text spelling a
// number, hash by value so that INTEGER 3, REAL 3.0 and STRING "3" collide.
// A TIMESTAMP hashes as its milliseconds, not as its date text.
func (v *Value) Hash() uint64 {
	return 31 + hashRaw(payloadOf(v))
}

func hashRaw(raw any) uint64 {
	if raw == nil {
		return 0
	}
	h := fnv.New64a()
	if f, ok := numericKey(raw); ok {
		switch {
		case f == 0:
			f = 0 // -0
		case math.IsNaN(f):
			f = math.NaN()
		}
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
		return h.Sum64()
	}
	h.Write([]byte(canonicalText(raw)))
	return h.Sum64()
}

// numericKey reads numeric payloads and numeric text as a real.
func numericKey(raw any) (float64, bool) {
	if f, ok := asFloat64(raw); ok {
		return f, true
	}
	if s, ok := raw.(string); ok {
		f, err := parseReal(s)
		return f, err == nil
	}
	return 0, false
}

// ============================================================
// Attributes
// ============================================================

// CompareAttributes orders attributes by name, then by payload. Nil
// attributes follow the same asymmetric rule as absent payloads.
func CompareAttributes(a, b *Attribute) int {
	switch {
	case a == b:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	if c := CompareNames(a.name, b.name); c != 0 {
		return c
	}
	return CompareValues(&a.Value, &b.Value)
}
