package draw

import (
	"fmt"
	"io"
	"maps"

	"gopkg.in/yaml.v3"
)

// ColorDefaults holds the default colors for one role.
type ColorDefaults struct {
	// Default is used for kinds without an entry in ByKind.
	Default Color
	ByKind  map[Kind]Color
}

// Theme maps primitive kinds to the default fill and stroke colors used when
// a primitive has no explicit color. A theme must not be modified while a
// frame is being replayed.
//
// Themes can be loaded from YAML:
//
//	fill:
//	  default: "#ffffff"
//	  ellipse: tomato
//	stroke:
//	  default: black
//	  line: "#3366ff"
type Theme struct {
	Fill   ColorDefaults `yaml:"fill"`
	Stroke ColorDefaults `yaml:"stroke"`
}

// DefaultTheme returns a theme filling with white and stroking with black.
func DefaultTheme() *Theme {
	return &Theme{
		Fill:   ColorDefaults{Default: White, ByKind: map[Kind]Color{}},
		Stroke: ColorDefaults{Default: Black, ByKind: map[Kind]Color{}},
	}
}

var fallbackTheme = DefaultTheme()

// ResolveColor returns explicit if it is non-nil, else the theme's default
// for kind and role, else the role's global default. A nil theme resolves
// like DefaultTheme.
func (t *Theme) ResolveColor(explicit *Color, kind Kind, role Role) Color {
	if explicit != nil {
		return *explicit
	}
	if t == nil {
		t = fallbackTheme
	}
	d := &t.Fill
	if role == RoleStroke {
		d = &t.Stroke
	}
	if c, ok := d.ByKind[kind]; ok {
		return c
	}
	return d.Default
}

// SetFill sets the default fill color for kind.
func (t *Theme) SetFill(kind Kind, c Color) {
	t.Fill.set(kind, c)
}

// SetStroke sets the default stroke color for kind.
func (t *Theme) SetStroke(kind Kind, c Color) {
	t.Stroke.set(kind, c)
}

func (d *ColorDefaults) set(kind Kind, c Color) {
	if d.ByKind == nil {
		d.ByKind = make(map[Kind]Color)
	}
	d.ByKind[kind] = c
}

// Clone returns a deep copy of the theme.
func (t *Theme) Clone() *Theme {
	c := *t
	c.Fill.ByKind = maps.Clone(t.Fill.ByKind)
	c.Stroke.ByKind = maps.Clone(t.Stroke.ByKind)
	if c.Fill.ByKind == nil {
		c.Fill.ByKind = map[Kind]Color{}
	}
	if c.Stroke.ByKind == nil {
		c.Stroke.ByKind = map[Kind]Color{}
	}
	return &c
}

// LoadTheme reads a YAML theme from r. Entries not present in the document
// keep their DefaultTheme values.
func LoadTheme(r io.Reader) (*Theme, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("draw: read theme: %w", err)
	}
	return ParseTheme(data)
}

// ParseTheme parses a YAML theme. Entries not present in the document keep
// their DefaultTheme values.
func ParseTheme(data []byte) (*Theme, error) {
	t := DefaultTheme()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("draw: parse theme: %w", err)
	}
	return t, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Keys are "default" or a
// primitive kind name; values are colors accepted by ParseColor.
func (d *ColorDefaults) UnmarshalYAML(value *yaml.Node) error {
	var entries map[string]Color
	if err := value.Decode(&entries); err != nil {
		return err
	}
	for key, c := range entries {
		if key == "default" {
			d.Default = c
			continue
		}
		kind, ok := ParseKind(key)
		if !ok {
			return fmt.Errorf("unknown primitive kind %q (line %d)", key, value.Line)
		}
		d.set(kind, c)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d ColorDefaults) MarshalYAML() (any, error) {
	out := make(map[string]string, len(d.ByKind)+1)
	out["default"] = d.Default.String()
	for k, c := range d.ByKind {
		out[k.String()] = c.String()
	}
	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler for colors written as hex or
// SVG names.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}
