package main

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/function61/gokit/app/aws/lambdautils"
	"github.com/function61/gokit/app/dynversion"
	"github.com/function61/gokit/log/logex"
	"github.com/function61/gokit/net/http/httputils"
	"github.com/function61/gokit/os/osutil"
	"github.com/function61/gokit/sync/taskrunner"
	"github.com/function61/gravatar/pkg/httpauth"
	"github.com/spf13/cobra"
)

func main() {
	rootLogger := logex.StandardLogger()

	// AWS Lambda doesn't support giving argv, so we use an ugly hack to detect when
	// we're in Lambda
	if lambdautils.InLambda() {
		lambda.StartHandler(func() lambda.Handler {
			httpHandler, err := newHttpHandlerFromEnv(rootLogger)
			if err != nil {
				// cannot exit in a normal way - we've to handle errors with Lambda's semantics
				// if we want any visibility into errors in Lambda
				return lambdaStaticErrorHandler(err, rootLogger)
			}

			return lambdautils.NewLambdaHttpHandlerAdapter(httpHandler)
		}())
		return // shouldn't ever reach here
	}

	app := &cobra.Command{
		Use:     os.Args[0],
		Short:   "Gravatar URLs and tags",
		Version: dynversion.Version,
	}

	app.AddCommand(urlEntry())
	app.AddCommand(tagEntry())

	addr := ":80"

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the standalone server",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(runStandaloneRestApi(
				osutil.CancelOnInterruptOrTerminate(rootLogger),
				addr,
				rootLogger))
		},
	}
	serveCmd.Flags().StringVarP(&addr, "addr", "", addr, "Address to listen on")

	app.AddCommand(serveCmd)

	app.AddCommand(&cobra.Command{
		Use:   "genkey",
		Short: "Generate key pair for signing dev tokens",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			publicKey, privateKey, err := ed25519.GenerateKey(nil)
			osutil.ExitIfError(err)

			fmt.Fprintf(os.Stdout, "private: %s\npublic (for ID_SERVER_PUBLIC_KEY): %s\n",
				marshalPrivateKey(privateKey),
				marshalPublicKey(publicKey))
		},
	})

	app.AddCommand(devTokenEntry())
	app.AddCommand(clientEntry())

	osutil.ExitIfError(app.Execute())
}

func newHttpHandlerFromEnv(logger *log.Logger) (http.Handler, error) {
	conf, err := configFromEnv()
	if err != nil {
		return nil, err
	}

	return newHttpHandler(conf, logger)
}

// for standalone use
func runStandaloneRestApi(ctx context.Context, addr string, logger *log.Logger) error {
	handler, err := newHttpHandlerFromEnv(logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	tasks := taskrunner.New(ctx, logger)

	tasks.Start("listener "+srv.Addr, func(ctx context.Context) error {
		return httputils.CancelableServer(ctx, srv, srv.ListenAndServe)
	})

	return tasks.Wait()
}

// token for testing /avatar/me against a server configured with the matching public key
func devTokenEntry() *cobra.Command {
	audience := ""

	cmd := &cobra.Command{
		Use:   "dev-token [privateKey] [userId]",
		Short: "Sign an auth token (for development)",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			privateKey, err := unmarshalPrivateKey(args[0])
			osutil.ExitIfError(err)

			signer, err := httpauth.NewJwtSigner(privateKey)
			osutil.ExitIfError(err)

			fmt.Fprintln(os.Stdout, signer.Sign(*httpauth.NewUserDetails(args[1], ""), audience, time.Now()))
		},
	}

	cmd.Flags().StringVarP(&audience, "audience", "", audience, "Token audience")

	return cmd
}

// TODO: move to lambdautils?
type errorLambdaHandler struct {
	error
}

func lambdaStaticErrorHandler(err error, logger *log.Logger) *errorLambdaHandler {
	logex.Levels(logger).Error.Println(err)

	return &errorLambdaHandler{err}
}

func (e *errorLambdaHandler) Invoke(_ context.Context, _ []byte) ([]byte, error) {
	return nil, e.error
}
