package attr

// Parse reads text as the first variant, in catalog order, able to express
// it. Enumeration and type names are resolved through DefaultRegistry.
//
// Empty text and text no other variant accepts stay STRING:
//
//	Parse("42")         // INTEGER 42
//	Parse("TrUe")       // BOOLEAN true
//	Parse("1;2;300")    // POINT3D (1, 2, 300)
//	Parse("blablabla")  // STRING "blablabla"
func Parse(text string) *Value {
	return ParseWith(text, nil)
}

// ParseWith is Parse with an explicit resolver. A nil resolver selects
// DefaultRegistry.
func ParseWith(text string, r Resolver) *Value {
	src := NewString(text).WithResolver(r)
	if text == "" {
		return src
	}
	for _, to := range Variants() {
		if payload, ok := src.parseAs(to); ok {
			return &Value{kind: slotOf(to), raw: payload, assigned: true, resolver: r}
		}
	}
	return src
}

// parseAs tries one variant. Variants whose getters are lenient about text
// use a strict reader here so that they do not swallow unrelated input.
func (v *Value) parseAs(to Variant) (any, bool) {
	text := v.raw.(string)

	var (
		payload any
		err     error
	)
	switch to {
	case TypeUUID:
		payload, err = boxed(parseStrictUUID(text))
	case TypeURI:
		payload, err = boxed(parseStrictURI(text))
	case TypePoint3D:
		payload, err = boxed(parsePoint3D(text, true))
	case TypePoint2D:
		payload, err = boxed(parsePoint2D(text, true))
	case TypePolyline3D:
		payload, err = boxed(parsePolyline3D(text, true))
	case TypePolyline2D:
		payload, err = boxed(parsePolyline2D(text, true))
	case TypeString:
		return text, true
	default:
		payload, err = v.convert(to)
	}
	if err != nil || payload == nil {
		return nil, false
	}
	return payload, true
}
