// Package crypto implements Bitcoin-style message signing with secp256k1
// keys, along with the key and signature encodings used around it.
package crypto

import (
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	mrbase58 "github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// Errors returned by this package. Callers should match them with errors.Is.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidKeyFormat = errors.New("invalid key format")
	ErrSigningFailure   = errors.New("signing failure")
)

const (
	hexKeyLen      = 64
	wifCompressed  = 0x01
	privateKeySize = secp256k1.PrivKeyBytesLen
)

// Address returns the base58check-encoded pay-to-pubkey-hash address for the
// compressed form of the given public key. The version prefix may be more
// than one byte, as used by Zcash-derived chains like Flux.
func Address(pub *secp256k1.PublicKey, version []byte) string {
	hash := btcutil.Hash160(pub.SerializeCompressed())
	payload := make([]byte, 0, len(version)+len(hash)+4)
	payload = append(payload, version...)
	payload = append(payload, hash...)
	checksum := chainhash.DoubleHashB(payload)
	payload = append(payload, checksum[:4]...)
	return mrbase58.Encode(payload)
}

// ParsePrivateKey decodes a secp256k1 private key that is either 64
// hex characters or in Wallet Import Format.
//
// The version byte of a WIF key is not checked, so keys exported for any
// network are accepted. Error messages never include the key itself.
func ParsePrivateKey(key string) (*secp256k1.PrivateKey, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, errors.Wrap(ErrInvalidKeyFormat, "empty private key")
	}
	var raw []byte
	if len(key) == hexKeyLen {
		var err error
		raw, err = hex.DecodeString(key)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidKeyFormat, "private key is not valid hex")
		}
	} else {
		payload, _, err := base58.CheckDecode(key)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidKeyFormat, "unable to decode WIF private key: %s", err)
		}
		switch {
		case len(payload) == privateKeySize:
		case len(payload) == privateKeySize+1 && payload[privateKeySize] == wifCompressed:
			payload = payload[:privateKeySize]
		default:
			return nil, errors.Wrapf(
				ErrInvalidKeyFormat,
				"got unexpected WIF payload length %d", len(payload),
			)
		}
		raw = payload
	}
	scalar := &secp256k1.ModNScalar{}
	if overflow := scalar.SetByteSlice(raw); overflow {
		return nil, errors.Wrap(ErrInvalidKeyFormat, "private key is not below the curve order")
	}
	if scalar.IsZero() {
		return nil, errors.Wrap(ErrInvalidKeyFormat, "private key is zero")
	}
	return secp256k1.NewPrivateKey(scalar), nil
}
