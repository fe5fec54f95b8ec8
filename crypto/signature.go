package crypto

import (
	"encoding/base64"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"
)

// SignatureSize is the length of a compact signature in bytes.
const SignatureSize = 65

const (
	compactMagicOffset     = 27
	compactCompressedFlag  = 4
	compactMaxHeaderOffset = 7
)

// Signature is a compact ECDSA signature, i.e. a header byte encoding the
// public key recovery ID and compression flag, followed by the 32-byte R and
// S values.
type Signature [SignatureSize]byte

// ParseCompactSignature decodes a base64-encoded compact signature.
func ParseCompactSignature(sig string) (Signature, error) {
	var out Signature
	raw, err := base64.StdEncoding.DecodeString(sig)
	if err != nil {
		return out, errors.Wrapf(ErrInvalidInput, "unable to base64-decode signature %q: %s", sig, err)
	}
	if len(raw) != SignatureSize {
		return out, errors.Wrapf(
			ErrInvalidInput,
			"got unexpected length for the signature %q: %d", sig, len(raw),
		)
	}
	header := raw[0]
	if header < compactMagicOffset || header > compactMagicOffset+compactMaxHeaderOffset {
		return out, errors.Wrapf(ErrInvalidInput, "invalid signature header in %q", sig)
	}
	copy(out[:], raw)
	if _, _, err := out.scalars(); err != nil {
		return out, errors.Wrapf(ErrInvalidInput, "invalid signature %q: %s", sig, err)
	}
	return out, nil
}

// Compressed returns whether the signature was made for the compressed
// encoding of the public key.
func (s Signature) Compressed() bool {
	return (s[0]-compactMagicOffset)&compactCompressedFlag != 0
}

// DER returns the DER encoding of the signature's R and S values.
//
// The format of a DER encoded signature for secp256k1 is as follows:
//
//	0x30 <total length> 0x02 <length of R> <R> 0x02 <length of S> <S>
//
// S is normalized to the lower half of the curve order, which is already the
// case for signatures produced by MessageSigner.
func (s Signature) DER() ([]byte, error) {
	r, sv, err := s.scalars()
	if err != nil {
		return nil, err
	}
	return ecdsa.NewSignature(r, sv).Serialize(), nil
}

// RecoveryID returns the public key recovery ID in the range 0 to 3.
func (s Signature) RecoveryID() byte {
	return (s[0] - compactMagicOffset) & 3
}

// RS returns the 64-byte concatenation of the R and S values.
func (s Signature) RS() []byte {
	out := make([]byte, 64)
	copy(out, s[1:])
	return out
}

// String returns the base64 encoding of the signature.
func (s Signature) String() string {
	return base64.StdEncoding.EncodeToString(s[:])
}

func (s Signature) scalars() (*secp256k1.ModNScalar, *secp256k1.ModNScalar, error) {
	r := &secp256k1.ModNScalar{}
	if overflow := r.SetByteSlice(s[1:33]); overflow {
		return nil, nil, errors.New("R is not below the curve order")
	}
	if r.IsZero() {
		return nil, nil, errors.New("R is zero")
	}
	sv := &secp256k1.ModNScalar{}
	if overflow := sv.SetByteSlice(s[33:]); overflow {
		return nil, nil, errors.New("S is not below the curve order")
	}
	if sv.IsZero() {
		return nil, nil, errors.New("S is zero")
	}
	return r, sv, nil
}
