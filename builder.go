package rowmapper

import "reflect"

// Builder provides a fluent API to construct a Decoder with options, converters and
// validators pre-registered.
type Builder struct {
	opts  []Option
	convs *converterRegistry
	vals  *validatorRegistry
	warm  []any
}

// NewBuilder creates a new builder.
func NewBuilder() *Builder {
	return &Builder{
		convs: newFieldRegistry[ConverterFunc](),
		vals:  newFieldRegistry[ValidatorFunc](),
	}
}

// WithOptions appends decoder options to the builder.
func (b *Builder) WithOptions(opts ...Option) *Builder { b.opts = append(b.opts, opts...); return b }

// Warm records example values whose metadata is built by Build.
func (b *Builder) Warm(examples ...any) *Builder { b.warm = append(b.warm, examples...); return b }

// AddConverter registers a global converter by field name.
func (b *Builder) AddConverter(field string, fn ConverterFunc) *Builder {
	b.convs.global[field] = fn
	return b
}

// AddConverterFor registers a converter for a destination type and field name.
func (b *Builder) AddConverterFor(dst any, field string, fn ConverterFunc) *Builder {
	b.convs.setFor(indirectType(reflect.TypeOf(dst)), field, fn)
	return b
}

// AddValidator registers a global validator by field name.
func (b *Builder) AddValidator(field string, fn ValidatorFunc) *Builder {
	b.vals.global[field] = fn
	return b
}

// AddValidatorFor registers a validator for a destination type and field name.
func (b *Builder) AddValidatorFor(dst any, field string, fn ValidatorFunc) *Builder {
	b.vals.setFor(indirectType(reflect.TypeOf(dst)), field, fn)
	return b
}

// Build constructs a Decoder using a single registry swap for converters and validators.
func (b *Builder) Build() *Decoder {
	d := NewWithOptions(b.opts...)
	d.converters.Store(b.convs.clone())
	d.validators.Store(b.vals.clone())
	d.WarmMetadata(b.warm...)
	return d
}
