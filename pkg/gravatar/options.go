package gravatar

import (
	"strings"

	layering "github.com/goliatone/go-options/layering"
)

// maximum content rating the service is allowed to return
type Rating string

const (
	RatingG  Rating = "G"
	RatingPG Rating = "PG"
	RatingR  Rating = "R"
	RatingX  Rating = "X"
)

const (
	DefaultSize   = 50
	DefaultRating = RatingPG
	DefaultClass  = "gravatar"
)

// Options is a fully resolved configuration. Default, Size, Rating and SSL only
// affect the URL. Alt, Class and Attributes only end up in the <img> tag.
type Options struct {
	Default string // image shown when the address has no Gravatar. "" = none
	Size    int    // pixels (images are square)
	Rating  Rating
	SSL     bool
	Alt     string
	Class   string

	// extra display attributes, passed through to the tag verbatim
	Attributes map[string]string

	// trim + lowercase the address before hashing, as gravatar.com expects.
	// off by default, in which case the address is hashed as given.
	NormalizeEmail bool
}

// Overrides is a partial configuration. nil fields are not overridden.
type Overrides struct {
	Default        *string
	Size           *int
	Rating         *Rating
	SSL            *bool
	Alt            *string
	Class          *string
	Attributes     map[string]string
	NormalizeEmail *bool
}

func DefaultOptions() Options {
	return Options{
		Default: "",
		Size:    DefaultSize,
		Rating:  DefaultRating,
		SSL:     false,
		Alt:     "",
		Class:   DefaultClass,
	}
}

// shorthands for building Overrides literals

func String(s string) *string { return &s }

func Int(i int) *int { return &i }

func Bool(b bool) *bool { return &b }

func RatingOf(r Rating) *Rating { return &r }

// merges overrides on top of defaults. the merge is per key: keys (and extra
// attributes) not mentioned in overrides keep their default.
func resolve(defaults Options, overrides Overrides) Options {
	merged := layering.MergeLayers(overrides, defaults.asOverrides())

	return merged.asOptions()
}

func (o Options) asOverrides() Overrides {
	return Overrides{
		Default:        String(o.Default),
		Size:           Int(o.Size),
		Rating:         RatingOf(o.Rating),
		SSL:            Bool(o.SSL),
		Alt:            String(o.Alt),
		Class:          String(o.Class),
		Attributes:     copyAttributes(o.Attributes),
		NormalizeEmail: Bool(o.NormalizeEmail),
	}
}

func (o Overrides) asOptions() Options {
	opts := Options{
		Attributes: copyAttributes(o.Attributes),
	}

	if o.Default != nil {
		opts.Default = *o.Default
	}
	if o.Size != nil {
		opts.Size = *o.Size
	}
	if o.Rating != nil {
		opts.Rating = *o.Rating
	}
	if o.SSL != nil {
		opts.SSL = *o.SSL
	}
	if o.Alt != nil {
		opts.Alt = *o.Alt
	}
	if o.Class != nil {
		opts.Class = *o.Class
	}
	if o.NormalizeEmail != nil {
		opts.NormalizeEmail = *o.NormalizeEmail
	}

	return opts
}

func copyAttributes(attrs map[string]string) map[string]string {
	if len(attrs) == 0 {
		return nil
	}

	dup := make(map[string]string, len(attrs))
	for key, value := range attrs {
		dup[key] = value
	}

	return dup
}

// a string counts as present if it has anything other than whitespace in it
func isPresent(value string) bool {
	return strings.TrimSpace(value) != ""
}
