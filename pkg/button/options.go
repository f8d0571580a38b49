package button

import (
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultSubmitField is the POST field whose presence marks a submission.
	DefaultSubmitField = "submit"
	// DefaultMaxMemory bounds the in-memory part of multipart submissions.
	DefaultMaxMemory int64 = 32 << 20
)

// Options configures a Button.
type Options struct {
	Name        string
	SubmitField string
	MaxMemory   int64
	Logger      logrus.FieldLogger
	Renderer    FormRenderer
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions returns the options used when no OptionFn is given.
func DefaultOptions() Options {
	return Options{
		SubmitField: DefaultSubmitField,
		MaxMemory:   DefaultMaxMemory,
	}
}

// NewOptions applies fns over DefaultOptions and normalizes the result.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	opts.Name = strings.TrimSpace(opts.Name)
	opts.SubmitField = strings.TrimSpace(opts.SubmitField)
	if opts.SubmitField == "" {
		opts.SubmitField = DefaultSubmitField
	}
	if opts.MaxMemory <= 0 {
		opts.MaxMemory = DefaultMaxMemory
	}
	return opts
}

// WithName sets the button name instead of deriving it from the callback.
func WithName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Name = name
	}
}

// WithSubmitField changes the POST field that marks a submission.
func WithSubmitField(field string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SubmitField = field
	}
}

// WithMaxMemory bounds the bytes of a multipart body kept in memory.
func WithMaxMemory(bytes int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxMemory = bytes
	}
}

// WithLogger sets the logger used for submission diagnostics.
func WithLogger(logger logrus.FieldLogger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithRenderer sets the renderer used when the button serves requests on its
// own, outside an admin site.
func WithRenderer(renderer FormRenderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}
