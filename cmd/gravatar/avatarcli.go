package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/function61/gokit/os/osutil"
	"github.com/function61/gravatar/pkg/gravatar"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flags shared by commands that take gravatar options
type optionFlags struct {
	size         int
	rating       string
	defaultImage string
	ssl          bool
	alt          string
	class        string
	attributes   []string // key=value
}

func (o *optionFlags) register(flags *pflag.FlagSet, withDisplay bool) {
	flags.IntVarP(&o.size, "size", "s", gravatar.DefaultSize, "Image size in pixels")
	flags.StringVarP(&o.rating, "rating", "r", string(gravatar.DefaultRating), "Max rating (G, PG, R, X)")
	flags.StringVarP(&o.defaultImage, "default", "d", "", "Image URL to use when address has no Gravatar")
	flags.BoolVarP(&o.ssl, "ssl", "", false, "Use HTTPS")

	if withDisplay {
		flags.StringVarP(&o.alt, "alt", "", "", "Alt text")
		flags.StringVarP(&o.class, "class", "", gravatar.DefaultClass, "CSS class")
		flags.StringArrayVarP(&o.attributes, "attr", "a", nil, "Extra attribute as key=value (repeatable)")
	}
}

// flags the user didn't touch don't override the site-wide defaults
func (o *optionFlags) overrides(flags *pflag.FlagSet) (gravatar.Overrides, error) {
	overrides := gravatar.Overrides{}

	if flags.Changed("size") {
		overrides.Size = gravatar.Int(o.size)
	}
	if flags.Changed("rating") {
		overrides.Rating = gravatar.RatingOf(gravatar.Rating(o.rating))
	}
	if flags.Changed("default") {
		overrides.Default = gravatar.String(o.defaultImage)
	}
	if flags.Changed("ssl") {
		overrides.SSL = gravatar.Bool(o.ssl)
	}
	if flags.Changed("alt") {
		overrides.Alt = gravatar.String(o.alt)
	}
	if flags.Changed("class") {
		overrides.Class = gravatar.String(o.class)
	}

	for _, attribute := range o.attributes {
		key, value, found := strings.Cut(attribute, "=")
		if !found || key == "" {
			return overrides, fmt.Errorf("--attr: expecting key=value; got '%s'", attribute)
		}

		if overrides.Attributes == nil {
			overrides.Attributes = map[string]string{}
		}
		overrides.Attributes[key] = value
	}

	return overrides, nil
}

func urlEntry() *cobra.Command {
	opts := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "url [email]",
		Short: "Print avatar URL for an email address",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(printAvatar(args[0], opts, cmd.Flags(), false, os.Stdout))
		},
	}

	opts.register(cmd.Flags(), false)

	return cmd
}

func tagEntry() *cobra.Command {
	opts := &optionFlags{}

	cmd := &cobra.Command{
		Use:   "tag [email]",
		Short: "Print avatar <img> tag for an email address",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(printAvatar(args[0], opts, cmd.Flags(), true, os.Stdout))
		},
	}

	opts.register(cmd.Flags(), true)

	return cmd
}

func printAvatar(email string, opts *optionFlags, flags *pflag.FlagSet, asTag bool, output io.Writer) error {
	g, err := gravatarFromEnv()
	if err != nil {
		return err
	}

	overrides, err := opts.overrides(flags)
	if err != nil {
		return err
	}

	if asTag {
		_, err = fmt.Fprintln(output, g.Tag(email, overrides))
	} else {
		_, err = fmt.Fprintln(output, g.URL(email, overrides))
	}

	return err
}

func gravatarFromEnv() (*gravatar.Gravatar, error) {
	conf, err := configFromEnv()
	if err != nil {
		return nil, err
	}

	return gravatar.New(conf.defaults), nil
}
