// Command formatsig converts base64-encoded compact message signatures into
// hex-encoded raw R||S or DER formats.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/runonflux/fluxsign/crypto"
	"github.com/runonflux/fluxsign/log"
)

func convert(format string, input string) (string, error) {
	sig, err := crypto.ParseCompactSignature(input)
	if err != nil {
		return "", err
	}
	switch format {
	case "to:der":
		der, err := sig.DER()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%x", der), nil
	case "to:rs":
		return fmt.Sprintf("%x", sig.RS()), nil
	default:
		return "", errors.Errorf(
			"unknown convert option %q: needs to be either 'to:der' or 'to:rs'",
			format,
		)
	}
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "Usage: formatsig [to:der | to:rs] <base64-signature>")
		os.Exit(1)
	}
	out, err := convert(os.Args[1], os.Args[2])
	if err != nil {
		log.Fatalf("Failed to convert signature %q: %s", os.Args[2], err)
	}
	fmt.Println(out)
}
