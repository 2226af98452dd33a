package rowmapper

// ConverterFunc rewrites a field value after it has been decoded from its column and
// before validators run. It is registered by field name, globally or for one
// destination type. The result must be assignable to the field; nil stores the zero value.
type ConverterFunc func(value any) (any, error)

// ComposeConverters chains converters left-to-right. The first error aborts the chain
// and a nil result is returned immediately.
func ComposeConverters(fns ...ConverterFunc) ConverterFunc {
	return func(value any) (any, error) {
		cur := value
		for _, fn := range fns {
			out, err := fn(cur)
			if err != nil {
				return nil, err
			}
			if out == nil {
				return nil, nil
			}
			cur = out
		}
		return cur, nil
	}
}

// MapString returns a ConverterFunc applying f to string values (and to *string values
// that are set). Anything else is returned unchanged.
//
//	d.RegisterConverter("Code", rowmapper.MapString(func(s string) string {
//	    return strings.TrimRight(s, " ") // bpchar padding
//	}))
func MapString(f func(string) string) ConverterFunc {
	return func(value any) (any, error) {
		switch s := value.(type) {
		case string:
			return f(s), nil
		case *string:
			if s != nil {
				out := f(*s)
				return &out, nil
			}
		}
		return value, nil
	}
}
