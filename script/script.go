// Package script runs turtle pen scripts stored as TOML or YAML.
//
// A script is a list of steps, each naming one pen operation:
//
//	width = 800
//	height = 600
//	background = "white"
//
//	[[step]]
//	op = "color"
//	color = "#ff0000"
//
//	[[step]]
//	op = "penDown"
//
//	[[step]]
//	op = "lineTo"
//	x = 700
//	y = 500
//
// The same script in YAML uses a "steps" list. Colors are hex strings
// ("#rgb", "#rrggbb") or CSS color names.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/turtle"
)

// Pen operations.
const (
	OpPenDown = "penDown"
	OpPenUp   = "penUp"
	OpColor   = "color"
	OpSize    = "size"
	OpMoveTo  = "moveTo"
	OpLineTo  = "lineTo"
	OpClear   = "clear"
)

// Format selects the script encoding.
type Format int

const (
	// FormatTOML decodes scripts with [[step]] tables.
	FormatTOML Format = iota
	// FormatYAML decodes scripts with a steps list.
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

var (
	// ErrUnknownFormat is returned by Load for unrecognized file extensions.
	ErrUnknownFormat = errors.New("script: unknown format")

	// ErrInvalidStep is returned for steps with an unknown op or a bad argument.
	ErrInvalidStep = errors.New("script: invalid step")
)

// Step is one pen operation. Only the fields its Op uses are read.
type Step struct {
	Op    string  `toml:"op" yaml:"op"`
	X     float32 `toml:"x" yaml:"x"`
	Y     float32 `toml:"y" yaml:"y"`
	Color string  `toml:"color" yaml:"color"`
	Size  float32 `toml:"size" yaml:"size"`
}

// Script is a decoded pen script. Width, Height and Background are hints
// for hosts that create the canvas from the script; zero values mean the
// host decides.
type Script struct {
	Name       string `toml:"name" yaml:"name"`
	Width      int    `toml:"width" yaml:"width"`
	Height     int    `toml:"height" yaml:"height"`
	Background string `toml:"background" yaml:"background"`
	Steps      []Step `toml:"step" yaml:"steps"`
}

// Parse decodes and validates a script. Unknown keys are errors.
func Parse(data []byte, format Format) (*Script, error) {
	var s Script
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, fmt.Errorf("script: parse toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("script: parse toml: unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("script: parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	return Parse(data, format)
}

// Validate checks every step and the background color.
func (s *Script) Validate() error {
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("script: negative size %dx%d", s.Width, s.Height)
	}
	if s.Background != "" {
		if _, err := ParseColor(s.Background); err != nil {
			return fmt.Errorf("script: background: %w", err)
		}
	}
	for i, st := range s.Steps {
		switch st.Op {
		case OpPenDown, OpPenUp, OpMoveTo, OpLineTo, OpClear, OpSize:
		case OpColor:
			if _, err := ParseColor(st.Color); err != nil {
				return fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
			}
		default:
			return fmt.Errorf("%w %d: unknown op %q", ErrInvalidStep, i, st.Op)
		}
	}
	return nil
}

// Options returns the canvas options the script asks for.
func (s *Script) Options() []turtle.Option {
	if s.Background == "" {
		return nil
	}
	bg, err := ParseColor(s.Background)
	if err != nil {
		return nil
	}
	return []turtle.Option{turtle.WithBackground(bg)}
}

// Run applies the steps to c in order. It does not render.
func (s *Script) Run(c *turtle.Canvas) error {
	for i, st := range s.Steps {
		switch st.Op {
		case OpPenDown:
			c.PenDown()
		case OpPenUp:
			c.PenUp()
		case OpColor:
			col, err := ParseColor(st.Color)
			if err != nil {
				return fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
			}
			c.SetColor(float32(col.R), float32(col.G), float32(col.B))
		case OpSize:
			c.SetSize(st.Size)
		case OpMoveTo:
			c.MoveTo(st.X, st.Y)
		case OpLineTo:
			c.LineTo(st.X, st.Y)
		case OpClear:
			if err := c.Clear(); err != nil {
				return fmt.Errorf("script: step %d: %w", i, err)
			}
		default:
			return fmt.Errorf("%w %d: unknown op %q", ErrInvalidStep, i, st.Op)
		}
	}
	return nil
}

// ParseColor parses "#rgb", "#rgba", "#rrggbb", "#rrggbbaa" or a CSS color
// name such as "red" or "cornflowerblue".
func ParseColor(s string) (turtle.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		switch len(hex) {
		case 3, 4, 6, 8:
		default:
			return turtle.RGBA{}, fmt.Errorf("bad hex color %q", s)
		}
		for _, c := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
				return turtle.RGBA{}, fmt.Errorf("bad hex color %q", s)
			}
		}
		return turtle.Hex(hex), nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return turtle.FromColor(c), nil
	}
	return turtle.RGBA{}, fmt.Errorf("unknown color %q", s)
}
