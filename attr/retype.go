package attr

import (
	"errors"
)

// convert reads the current payload as variant to through the matching getter.
func (v *Value) convert(to Variant) (any, error) {
	switch to {
	case TypeEnumeration:
		return boxed(v.AsEnumeration())
	case TypeTypeRef:
		return boxed(v.AsTypeRef())
	case TypeUUID:
		return boxed(v.AsUUID())
	case TypeInteger:
		return boxed(v.AsInteger())
	case TypeReal:
		return boxed(v.AsReal())
	case TypeDate:
		return boxed(v.AsDate())
	case TypeBoolean:
		return boxed(v.AsBool())
	case TypeInetAddress:
		return boxed(v.AsInetAddress())
	case TypeURL:
		return boxed(v.AsURL())
	case TypeURI:
		return boxed(v.AsURI())
	case TypeTimestamp:
		return boxed(v.AsTimestamp())
	case TypePoint3D:
		return boxed(v.AsPoint3D())
	case TypePoint2D:
		return boxed(v.AsPoint2D())
	case TypePolyline3D:
		return boxed(v.AsPolyline3D())
	case TypePolyline2D:
		return boxed(v.AsPolyline2D())
	case TypeString:
		return boxed(v.AsString())
	case TypeObject:
		if err := v.ready("AsObject", TypeObject); err != nil {
			return nil, err
		}
		return v.raw, nil
	}
	return nil, &ConversionError{Op: "SetType", From: v.typ(), To: to, Err: ErrUnknownVariant}
}

func boxed[T any](x T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return x, nil
}

// SetType re-expresses the current payload as variant to. An unassigned
// value takes the default payload of to and becomes assigned. When the
// payload cannot be converted the value is left untouched and the error
// wraps ErrInvalidType.
func (v *Value) SetType(to Variant) error {
	payload, err := v.convert(to)
	switch {
	case err == nil:
		v.put(to, payload)
		if payload == nil {
			v.assigned = true
		}
		return nil
	case errors.Is(err, ErrNotInitialized):
		v.setTyp(to)
		v.raw = to.DefaultValue()
		v.assigned = true
		return nil
	}
	return &ConversionError{Op: "SetType", From: v.typ(), To: to, Err: ErrInvalidType}
}

// Cast re-types the value like SetType but never fails. When conversion is
// impossible the payload is reset to the default of to and Cast reports
// false.
func (v *Value) Cast(to Variant) bool {
	if err := v.SetType(to); err != nil {
		v.setTyp(to)
		v.raw = to.DefaultValue()
		v.assigned = true
		return false
	}
	return true
}

// CastAndSet replaces the whole value from src, then re-types it to to.
//
// When src is a *Value its variant and payload are taken over first. Any
// other src is cast through to, or failing that through the variant it
// classifies as. Whatever cannot be expressed as to ends up as the default
// payload of to.
func (v *Value) CastAndSet(to Variant, src any) {
	next := &Value{kind: slotOf(to), resolver: v.resolver}
	switch s := src.(type) {
	case *Value:
		if s == nil {
			next.SetToDefault()
			break
		}
		if s.assigned && s.raw != nil {
			next.kind, next.raw, next.assigned = s.kind, s.Clone().raw, true
		} else {
			next.SetToDefault()
		}
	case nil:
		next.SetToDefault()
	default:
		if !next.store(to, src) {
			next.store(Classify(src), src)
		}
	}
	next.Cast(to)
	v.kind, v.raw, v.assigned = next.kind, next.raw, next.assigned
}
