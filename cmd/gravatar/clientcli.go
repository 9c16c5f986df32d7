package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/function61/gokit/log/logex"
	"github.com/function61/gokit/os/osutil"
	"github.com/function61/gravatar/pkg/gravatar"
	"github.com/function61/gravatar/pkg/idclient"
	"github.com/spf13/cobra"
)

func clientEntry() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "ID server related commands",
	}

	opts := &optionFlags{}

	avatarCmd := &cobra.Command{
		Use:   "avatar [serverUrl] [jwt]",
		Short: "Print avatar tag of the user an auth token belongs to",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			serverUrl := args[0]
			if serverUrl == "" {
				serverUrl = idclient.Function61
			}

			g, err := gravatarFromEnv()
			osutil.ExitIfError(err)

			overrides, err := opts.overrides(cmd.Flags())
			osutil.ExitIfError(err)

			osutil.ExitIfError(userAvatar(
				osutil.CancelOnInterruptOrTerminate(logex.StandardLogger()),
				idclient.New(serverUrl),
				args[1],
				g,
				overrides,
				os.Stdout))
		},
	}

	opts.register(avatarCmd.Flags(), true)

	cmd.AddCommand(avatarCmd)

	return cmd
}

func userAvatar(
	ctx context.Context,
	client *idclient.Client,
	token string,
	g *gravatar.Gravatar,
	overrides gravatar.Overrides,
	output io.Writer,
) error {
	user, err := client.UserByToken(ctx, token)
	if err != nil {
		return err
	}

	tag, err := g.TagFor(user, overrides)
	if err != nil {
		return fmt.Errorf("user %s: %w", user.Id, err)
	}

	_, err = fmt.Fprintln(output, tag)
	return err
}
