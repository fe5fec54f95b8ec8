// Command signmessage signs a message with the configured private key and
// prints the base64-encoded compact signature.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/runonflux/fluxsign/config"
	"github.com/runonflux/fluxsign/crypto"
	"github.com/runonflux/fluxsign/log"
	"github.com/urfave/cli/v2"
)

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "signmessage",
		Usage:     "Sign a message with the key set in PRIVATE_KEY",
		ArgsUsage: "<message>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "Path to the dotenv file holding PRIVATE_KEY",
				Value:   config.DefaultEnvFile,
				EnvVars: []string{"FLUXSIGN_ENV_FILE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Minimum level of diagnostics written to stderr",
				Value:   "info",
				EnvVars: []string{"FLUXSIGN_LOG_LEVEL"},
			},
		},
		HideHelp:        true,
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       os.Stderr,
		Before: func(c *cli.Context) error {
			return log.SetLevel(c.String("log-level"))
		},
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			return errors.Wrap(crypto.ErrInvalidInput, err.Error())
		},
		Action: signMessage,
	}
}

func signMessage(c *cli.Context) error {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return errors.Wrapf(
			crypto.ErrInvalidInput,
			"expected exactly one message argument, got %d", c.NArg(),
		)
	}
	message := c.Args().First()
	if message == "" {
		return errors.Wrap(crypto.ErrInvalidInput, "no message provided for signing")
	}
	signer, err := crypto.NewMessageSigner(cfg)
	if err != nil {
		return err
	}
	sig, err := signer.Sign(message)
	if err != nil {
		return err
	}
	log.Debugf("Signed %d byte message", len(message))
	_, err = fmt.Fprintln(c.App.Writer, sig.String())
	return err
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatalf("Failed to sign message: %s", err)
	}
}
