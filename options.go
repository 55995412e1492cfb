package turtle

import "log/slog"

// Option configures a Canvas during creation.
//
// Example:
//
//	// Software canvas with the default transparent white background
//	c, _ := turtle.New(800, 600)
//
//	// GPU canvas cleared to opaque black
//	c, _ := turtle.New(800, 600,
//	    turtle.WithBackend(gpuBackend),
//	    turtle.WithBackground(turtle.Black))
type Option func(*options)

type options struct {
	background RGBA
	backend    Backend
	logger     *slog.Logger
	penColor   RGBA
	penSize    float32
}

func defaultOptions() options {
	return options{
		background: TransparentWhite,
		backend:    nil, // software backend if nil
		penColor:   Black,
		penSize:    DefaultPenSize,
	}
}

// WithBackground sets the color the canvas surface starts with and is
// reset to by Clear. The default is transparent white (1, 1, 1, 0).
func WithBackground(c RGBA) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithBackend selects the rasterizer backend, e.g. one returned by
// gpu.NewBackend. The default is the built-in software backend.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithLogger sets a logger for this canvas and its backend, overriding the
// package logger set by SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPen sets the initial pen color (alpha is ignored) and size.
func WithPen(c RGBA, size float32) Option {
	return func(o *options) {
		o.penColor = c
		o.penSize = size
	}
}
