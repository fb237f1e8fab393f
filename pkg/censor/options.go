package censor

import (
	"errors"

	"wordfilter/pkg/matcher"
	"wordfilter/pkg/patterns"
)

const DefaultPlaceholder = "***"

var ErrEmptyPlaceholder = errors.New("placeholder must not be empty")

type Options struct {
	Placeholder string
	Languages   patterns.Languages
	Debug       bool

	// Tracer receives match traces when Debug is set. Nil means logrus.
	Tracer matcher.Tracer
}

type Option func(*Options) error

func defaultOptions() Options {
	return Options{
		Placeholder: DefaultPlaceholder,
		Languages:   patterns.Languages{patterns.RU: true, patterns.EN: true},
	}
}

func (o Options) clone() Options {
	langs := make(patterns.Languages, len(o.Languages))
	for l, on := range o.Languages {
		langs[l] = on
	}
	o.Languages = langs
	return o
}

func WithPlaceholder(s string) Option {
	return func(o *Options) error {
		if s == "" {
			return ErrEmptyPlaceholder
		}
		o.Placeholder = s
		return nil
	}
}

// WithLanguages replaces the active language set. An empty list disables
// every pattern table.
func WithLanguages(tags ...string) Option {
	return func(o *Options) error {
		langs, err := patterns.NewLanguages(tags...)
		if err != nil {
			return err
		}
		o.Languages = langs
		return nil
	}
}

func WithDebug(on bool) Option {
	return func(o *Options) error {
		o.Debug = on
		return nil
	}
}

func WithTracer(tr matcher.Tracer) Option {
	return func(o *Options) error {
		o.Tracer = tr
		return nil
	}
}
