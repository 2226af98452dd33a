package rowmapper

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
)

// ValidatorFunc validates a field value after it has been decoded from its column.
type ValidatorFunc func(value any) error

// fieldRegistry holds per-field hooks, global or scoped to a destination type.
// It is swapped atomically (copy-on-write).
type fieldRegistry[F any] struct {
	global map[string]F
	byDst  map[reflect.Type]map[string]F
}

type (
	validatorRegistry = fieldRegistry[ValidatorFunc]
	converterRegistry = fieldRegistry[ConverterFunc]
)

func newFieldRegistry[F any]() *fieldRegistry[F] {
	return &fieldRegistry[F]{global: make(map[string]F), byDst: make(map[reflect.Type]map[string]F)}
}

func (r *fieldRegistry[F]) clone() *fieldRegistry[F] {
	n := &fieldRegistry[F]{
		global: make(map[string]F, len(r.global)+1),
		byDst:  make(map[reflect.Type]map[string]F, len(r.byDst)+1),
	}
	for k, v := range r.global {
		n.global[k] = v
	}
	for t, m := range r.byDst {
		sub := make(map[string]F, len(m))
		for k, v := range m {
			sub[k] = v
		}
		n.byDst[t] = sub
	}
	return n
}

func (r *fieldRegistry[F]) setFor(dt reflect.Type, fieldName string, fn F) {
	m := r.byDst[dt]
	if m == nil {
		m = make(map[string]F)
		r.byDst[dt] = m
	}
	m[fieldName] = fn
}

// lookup returns the hook for fieldName; a type-scoped one wins over a global one.
func (r *fieldRegistry[F]) lookup(root reflect.Type, fieldName string) (F, bool) {
	if fn, ok := r.byDst[root][fieldName]; ok {
		return fn, true
	}
	fn, ok := r.global[fieldName]
	return fn, ok
}

type fieldInfo struct {
	index    []int
	name     string
	typ      reflect.Type
	optional bool
}

type structMetadata struct {
	fields []fieldInfo
}

// Decoder maps rows into structs, one field per column in declaration order.
// It is safe for concurrent use; struct metadata is cached per type.
type Decoder struct {
	converters    atomic.Value // holds *converterRegistry
	validators    atomic.Value // holds *validatorRegistry
	regMu         sync.Mutex   // serializes registry writers
	metadataCache sync.Map     // map[reflect.Type]*structMetadata
	options       Options
	log           *slog.Logger
}

// New creates a Decoder with default options.
func New() *Decoder { return NewWithOptions() }

// NewWithOptions creates a Decoder with the provided options.
func NewWithOptions(opts ...Option) *Decoder {
	d := &Decoder{}
	o := Options{TagName: defaultTagName}
	for _, f := range opts {
		f(&o)
	}
	if o.TagName == "" {
		o.TagName = defaultTagName
	}
	d.options = o
	d.log = o.Logger
	if d.log == nil {
		d.log = discardLogger
	}
	d.converters.Store(newFieldRegistry[ConverterFunc]())
	d.validators.Store(newFieldRegistry[ValidatorFunc]())
	return d
}

var (
	defaultDecoder     *Decoder
	defaultDecoderOnce sync.Once
)

func getDecoder() *Decoder {
	defaultDecoderOnce.Do(func() { defaultDecoder = New() })
	return defaultDecoder
}

// RegisterConverter adds a converter for every destination field called fieldName.
func (d *Decoder) RegisterConverter(fieldName string, fn ConverterFunc) {
	d.regMu.Lock()
	defer d.regMu.Unlock()
	reg := d.converters.Load().(*converterRegistry).clone()
	reg.global[fieldName] = fn
	d.converters.Store(reg)
}

// RegisterConverterFor adds a converter scoped to a destination type. It takes precedence
// over a global converter for the same field.
func (d *Decoder) RegisterConverterFor(dstType any, fieldName string, fn ConverterFunc) {
	d.regMu.Lock()
	defer d.regMu.Unlock()
	reg := d.converters.Load().(*converterRegistry).clone()
	reg.setFor(indirectType(reflect.TypeOf(dstType)), fieldName, fn)
	d.converters.Store(reg)
}

// RegisterValidator adds a validator for every destination field called fieldName.
func (d *Decoder) RegisterValidator(fieldName string, fn ValidatorFunc) {
	d.regMu.Lock()
	defer d.regMu.Unlock()
	reg := d.validators.Load().(*validatorRegistry).clone()
	reg.global[fieldName] = fn
	d.validators.Store(reg)
}

// RegisterValidatorFor adds a validator scoped to a destination type. It takes precedence
// over a global validator for the same field.
func (d *Decoder) RegisterValidatorFor(dstType any, fieldName string, fn ValidatorFunc) {
	d.regMu.Lock()
	defer d.regMu.Unlock()
	reg := d.validators.Load().(*validatorRegistry).clone()
	reg.setFor(indirectType(reflect.TypeOf(dstType)), fieldName, fn)
	d.validators.Store(reg)
}

// WarmMetadata pre-builds metadata for the given example values (T or *T).
func (d *Decoder) WarmMetadata(examples ...any) {
	for _, e := range examples {
		if e == nil {
			continue
		}
		t := indirectType(reflect.TypeOf(e))
		if t.Kind() != reflect.Struct {
			continue
		}
		_ = d.getOrBuildMetadata(t)
	}
}

// Decode populates the struct dst points to from row. dst is left untouched on failure.
func (d *Decoder) Decode(dst any, row Row) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return Messagef("rowmapper: destination must be a non-nil pointer, got %T", dst)
	}
	return d.decodeRow(rv.Elem(), row)
}

func (d *Decoder) decodeRow(v reflect.Value, row Row) error {
	t := v.Type()
	de := newDeserializer(row, d.log)
	if err := de.Request(shapeOf(t)); err != nil {
		return err
	}
	meta := d.getOrBuildMetadata(t)
	out := reflect.New(t).Elem()
	for i := range meta.fields {
		fi := &meta.fields[i]
		key, ok, err := de.NextKey()
		if err != nil {
			return err
		}
		if !ok {
			if fi.optional {
				continue
			}
			d.log.Debug("rowmapper: row has no column for field",
				slog.String("field", fi.name),
				slog.Int("columns", row.Len()))
			return Messagef("missing field `%s`", fi.name)
		}
		fv := fieldByIndexAlloc(out, fi.index)
		vd := de.NextValue()
		if err := vd.decode(fv); err != nil {
			d.log.Debug("rowmapper: decoding column failed",
				slog.String("column", key),
				slog.Int("index", vd.index),
				slog.String("field", fi.name),
				slog.Any("error", err))
			return err
		}
		if err := d.runConverters(fv, fi.name, t); err != nil {
			return Messagef("field %s: %v", fi.name, err)
		}
		if err := d.runValidators(fv, fi.name, t); err != nil {
			return Messagef("field %s: %v", fi.name, err)
		}
	}
	if d.options.StrictColumns && de.Remaining() > 0 {
		d.log.Debug("rowmapper: unconsumed columns",
			slog.Int("remaining", de.Remaining()),
			slog.String("type", t.String()))
		return ErrTrailingValues
	}
	v.Set(out)
	return nil
}

// runConverters replaces the decoded value of a field with the converter's result.
// A nil result stores the zero value.
func (d *Decoder) runConverters(v reflect.Value, fieldName string, root reflect.Type) error {
	fn, ok := d.converters.Load().(*converterRegistry).lookup(root, fieldName)
	if !ok || fn == nil {
		return nil
	}
	converted, err := fn(v.Interface())
	if err != nil {
		return err
	}
	if converted == nil {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	cv := reflect.ValueOf(converted)
	if !cv.Type().AssignableTo(v.Type()) {
		return fmt.Errorf("converter returned type %s, expected %s", cv.Type(), v.Type())
	}
	v.Set(cv)
	return nil
}

func (d *Decoder) runValidators(v reflect.Value, fieldName string, root reflect.Type) error {
	fn, ok := d.validators.Load().(*validatorRegistry).lookup(root, fieldName)
	if !ok || fn == nil {
		return nil
	}
	return fn(v.Interface())
}

// --- metadata helpers ---

func (d *Decoder) getOrBuildMetadata(typ reflect.Type) *structMetadata {
	if cached, ok := d.metadataCache.Load(typ); ok {
		return cached.(*structMetadata)
	}
	meta := &structMetadata{}
	d.buildFieldMetadata(typ, meta, nil, map[reflect.Type]bool{typ: true})
	actual, _ := d.metadataCache.LoadOrStore(typ, meta)
	return actual.(*structMetadata)
}

// buildFieldMetadata lists settable fields in declaration order. Embedded structs
// (including pointers to structs) are flattened in place when they contribute at least
// one field; otherwise the embed is an ordinary field. onPath holds the struct types
// being flattened, so a type embedding itself is skipped instead of recursed into.
func (d *Decoder) buildFieldMetadata(typ reflect.Type, meta *structMetadata, prefix []int, onPath map[reflect.Type]bool) {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		idx := append(append([]int(nil), prefix...), i)
		tag := f.Tag.Get(d.options.TagName)
		if tag == "-" || tag == "ignore" {
			continue
		}
		if f.Anonymous && (f.PkgPath == "" || f.Type.Kind() != reflect.Pointer) {
			ft := indirectType(f.Type)
			if ft.Kind() == reflect.Struct && shapeOf(ft) == ShapeStruct {
				if onPath[ft] {
					d.log.Debug("rowmapper: skipping recursive embedded struct",
						slog.String("type", typ.String()),
						slog.String("field", f.Name))
					continue
				}
				n := len(meta.fields)
				onPath[ft] = true
				d.buildFieldMetadata(ft, meta, idx, onPath)
				delete(onPath, ft)
				if len(meta.fields) > n {
					continue
				}
			}
		}
		if f.PkgPath != "" {
			continue
		}
		meta.fields = append(meta.fields, fieldInfo{
			index:    idx,
			name:     f.Name,
			typ:      f.Type,
			optional: shapeOf(f.Type) == ShapeOption,
		})
	}
}

func indirectType(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}

// fieldByIndexAlloc walks index, allocating nil embedded pointers so the final field is settable.
func fieldByIndexAlloc(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}
