package rowmapper

import "log/slog"

const defaultTagName = "row"

type Options struct {
	StrictColumns bool         // when true, columns left over after the last field are ErrTrailingValues
	TagName       string       // struct tag key holding the "-"/"ignore" marker; defaults to "row"
	Logger        *slog.Logger // debug trace of failed fields; discarded when nil
}

type Option func(*Options)

func WithStrictColumns(v bool) Option { return func(o *Options) { o.StrictColumns = v } }
func WithTagName(name string) Option { return func(o *Options) { o.TagName = name } }
func WithLogger(l *slog.Logger) Option { return func(o *Options) { o.Logger = l } }
