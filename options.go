package draw

// Option configures a Draw during creation.
//
// Example:
//
//	theme, _ := draw.ParseTheme(data)
//	d := draw.New(draw.WithTheme(theme), draw.WithBackground(draw.Black))
type Option func(*options)

// options holds optional configuration for Draw creation.
type options struct {
	theme      *Theme
	background *Color
	capacity   int
}

// defaultOptions returns the default draw options.
func defaultOptions() options {
	return options{
		theme: DefaultTheme(),
	}
}

// WithTheme sets the theme default colors are resolved from.
// A nil theme is ignored.
func WithTheme(t *Theme) Option {
	return func(o *options) {
		if t != nil {
			o.theme = t
		}
	}
}

// WithBackground sets the initial background color.
func WithBackground(c Color) Option {
	return func(o *options) {
		o.background = &c
	}
}

// WithCapacity preallocates room for n commands, sized for frames that
// record a similar number of primitives every time.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}
