// Command signeraddress prints the public key and address that signatures
// made with the configured private key recover to.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/runonflux/fluxsign/config"
	"github.com/runonflux/fluxsign/crypto"
	"github.com/runonflux/fluxsign/log"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:  "signeraddress",
		Usage: "Print the public key and address for the key set in PRIVATE_KEY",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "Path to the dotenv file holding PRIVATE_KEY",
				Value:   config.DefaultEnvFile,
				EnvVars: []string{"FLUXSIGN_ENV_FILE"},
			},
		},
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       os.Stderr,
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			return err
		},
		Action: printAddress,
	}
}

func printAddress(c *cli.Context) error {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return err
	}
	version, err := cfg.AddressVersionBytes()
	if err != nil {
		return err
	}
	signer, err := crypto.NewMessageSigner(cfg)
	if err != nil {
		return err
	}
	pub := signer.PublicKey()
	addr := crypto.Address(pub, version)
	log.Info(
		"Derived signer address",
		zap.String("address", addr),
		zap.String("version", cfg.AddressVersion),
	)
	fmt.Fprintf(c.App.Writer, "Public Key: %x\n", pub.SerializeCompressed())
	fmt.Fprintf(c.App.Writer, "Address: %s\n", addr)
	return nil
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Fatalf("Failed to derive signer address: %s", err)
	}
}
