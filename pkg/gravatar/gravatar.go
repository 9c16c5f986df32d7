// gravatar.com avatar URLs and <img> tags
package gravatar

// Gravatar builds avatar URLs and tags on top of a fixed set of defaults.
// It's immutable, so a single instance can be shared between goroutines. To
// change defaults site-wide, construct a new one and swap it in.
type Gravatar struct {
	defaults Options
}

func New(defaults Options) *Gravatar {
	return &Gravatar{
		defaults: resolve(defaults, Overrides{}), // copy, so caller can't mutate our defaults
	}
}

// Default returns a new instance with DefaultOptions()
func Default() *Gravatar {
	return New(DefaultOptions())
}

func (g *Gravatar) Defaults() Options {
	return resolve(g.defaults, Overrides{})
}

// Resolve produces the full configuration for one call: the defaults with each
// key present in overrides replaced. values are not validated.
func (g *Gravatar) Resolve(overrides Overrides) Options {
	return resolve(g.defaults, overrides)
}

// URL is shorthand for Default().URL()
func URL(email string, overrides Overrides) string {
	return Default().URL(email, overrides)
}

// Tag is shorthand for Default().Tag()
func Tag(email string, overrides Overrides) string {
	return Default().Tag(email, overrides)
}
