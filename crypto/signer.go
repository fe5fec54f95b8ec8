package crypto

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"
	"github.com/runonflux/fluxsign/config"
)

// BitcoinMessagePrefix is the magic string hashed in front of every message.
const BitcoinMessagePrefix = "Bitcoin Signed Message:\n"

// MessageSigner produces compact signatures over prefixed messages.
type MessageSigner struct {
	key    *secp256k1.PrivateKey
	prefix string
}

// NewMessageSigner returns a signer for the private key and message prefix
// in the given config.
func NewMessageSigner(cfg *config.Config) (*MessageSigner, error) {
	key, err := ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, err
	}
	prefix := cfg.MessagePrefix
	if prefix == "" {
		prefix = BitcoinMessagePrefix
	}
	return &MessageSigner{key: key, prefix: prefix}, nil
}

// PublicKey returns the public key that signatures can be recovered to.
func (m *MessageSigner) PublicKey() *secp256k1.PublicKey {
	return m.key.PubKey()
}

// Sign returns the compact signature of the given message. The nonce is
// derived as per RFC 6979, so signing the same message twice gives the same
// signature.
//
// Signatures are always marked as being for a compressed public key, whatever
// the encoding the private key was given in.
func (m *MessageSigner) Sign(message string) (Signature, error) {
	var sig Signature
	if message == "" {
		return sig, errors.Wrap(ErrInvalidInput, "message must not be empty")
	}
	hash, err := MessageHash(m.prefix, message)
	if err != nil {
		return sig, err
	}
	raw, err := ecdsa.SignCompact(m.key, hash, true)
	if err != nil {
		return sig, errors.Wrapf(ErrSigningFailure, "unable to sign message: %s", err)
	}
	if len(raw) != SignatureSize {
		return sig, errors.Wrapf(
			ErrSigningFailure, "got unexpected signature length %d", len(raw),
		)
	}
	copy(sig[:], raw)
	pub, err := recoverPublicKey(sig, hash)
	if err != nil {
		return sig, errors.Wrapf(ErrSigningFailure, "unable to recover public key: %s", err)
	}
	if !pub.IsEqual(m.key.PubKey()) {
		return sig, errors.Wrap(ErrSigningFailure, "recovered public key does not match signer")
	}
	return sig, nil
}

// MessageHash returns the double SHA-256 digest of the message, serialized
// after the given prefix with both parts length-prefixed as Bitcoin
// variable length strings.
func MessageHash(prefix string, message string) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := wire.WriteVarString(buf, 0, prefix); err != nil {
		return nil, errors.Wrapf(ErrSigningFailure, "unable to encode message prefix: %s", err)
	}
	if err := wire.WriteVarString(buf, 0, message); err != nil {
		return nil, errors.Wrapf(ErrSigningFailure, "unable to encode message: %s", err)
	}
	return chainhash.DoubleHashB(buf.Bytes()), nil
}

func recoverPublicKey(sig Signature, hash []byte) (*secp256k1.PublicKey, error) {
	pub, _, err := ecdsa.RecoverCompact(sig[:], hash)
	if err != nil {
		return nil, err
	}
	return pub, nil
}
