package gravatar

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// Tag renders an <img> for email's avatar. alt, class and extra attributes are
// written out only when they have a value.
func (g *Gravatar) Tag(email string, overrides Overrides) string {
	opts := g.Resolve(overrides)

	return renderTag(buildURL(email, opts), opts)
}

func renderTag(src string, opts Options) string {
	attrs := []string{}

	for _, attr := range displayAttributes(opts) {
		attrs = append(attrs, fmt.Sprintf(`%s="%s"`, attr[0], html.EscapeString(attr[1])))
	}

	attrs = append(attrs,
		fmt.Sprintf(`height="%d"`, opts.Size),
		fmt.Sprintf(`src="%s"`, html.EscapeString(src)))

	return "<img " + strings.Join(attrs, " ") + " />"
}

// name-value pairs of attributes that go into the tag, in output order. URL-only
// keys never show up here even if given as extra attributes.
func displayAttributes(opts Options) [][2]string {
	pairs := [][2]string{}

	add := func(name string, value string) {
		if isPresent(value) {
			pairs = append(pairs, [2]string{name, value})
		}
	}

	add("alt", opts.Alt)
	add("class", opts.Class)

	extraNames := []string{}
	for name := range opts.Attributes {
		if _, reserved := reservedAttributes[name]; reserved {
			continue
		}

		extraNames = append(extraNames, name)
	}
	sort.Strings(extraNames) // maps don't have stable order

	for _, name := range extraNames {
		add(name, opts.Attributes[name])
	}

	return pairs
}

var reservedAttributes = map[string]struct{}{
	// URL-only
	"size":    {},
	"ssl":     {},
	"default": {},
	"rating":  {},

	// these are rendered from typed fields
	"alt":    {},
	"class":  {},
	"height": {},
	"src":    {},
}
