// Package validation turns raw solix requests into typed, checked parameters.
//
// Checks run in a fixed order and stop at the first failure:
//  1. required-field presence (an empty string counts as missing, a numeric
//     zero does not),
//  2. base58 well-formedness of every encoded field,
//  3. byte length and key validity,
//  4. domain rules such as non-zero amounts.
//
// Every failure is a *solix.Error whose message names the offending field but
// never echoes decoded bytes.
package validation

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mark3labs/solix"
	"github.com/mark3labs/solix/encoding"
	"github.com/mark3labs/solix/svm"
)

// Field is a request field checked for presence.
type Field struct {
	Name    string
	Present bool
}

// String reports a string field, present when non-empty.
func String(name, value string) Field {
	return Field{Name: name, Present: value != ""}
}

// Uint64 reports a numeric field, present when non-nil (zero is present).
func Uint64(name string, value *uint64) Field {
	return Field{Name: name, Present: value != nil}
}

// Uint8 reports a numeric field, present when non-nil (zero is present).
func Uint8(name string, value *uint8) Field {
	return Field{Name: name, Present: value != nil}
}

// RequireFields fails with MissingField listing every absent field.
func RequireFields(fields ...Field) error {
	var missing []string
	for _, f := range fields {
		if !f.Present {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return solix.NewError(solix.ErrCodeMissingField,
		fmt.Sprintf("Missing required fields: %s", strings.Join(missing, ", ")), nil).
		WithField(missing[0])
}

// Encoded is a base58 request field awaiting decoding.
type Encoded struct {
	Name string
	Text string
}

// Base58 names a base58 field for DecodeFields.
func Base58(name, text string) Encoded {
	return Encoded{Name: name, Text: text}
}

// DecodeFields decodes every field before any length check is made, so an
// encoding problem is always reported ahead of a length problem.
func DecodeFields(fields ...Encoded) ([][]byte, error) {
	out := make([][]byte, len(fields))
	for i, f := range fields {
		b, err := encoding.DecodeBase58(f.Text)
		if err != nil {
			return nil, solix.NewError(solix.ErrCodeInvalidEncoding,
				fmt.Sprintf("Invalid base58 encoding for field '%s'", f.Name), err).WithField(f.Name)
		}
		out[i] = b
	}
	return out, nil
}

// PublicKeyFrom checks that decoded bytes form a 32-byte public key.
func PublicKeyFrom(name string, b []byte) (solana.PublicKey, error) {
	pk, err := encoding.PublicKeyFromBytes(b)
	if err != nil {
		return pk, solix.NewError(solix.ErrCodeInvalidKey,
			fmt.Sprintf("Invalid public key for field '%s'", name), err).WithField(name)
	}
	return pk, nil
}

// SecretFrom checks that decoded bytes form a valid 64-byte keypair.
func SecretFrom(name string, b []byte) (*svm.Keypair, error) {
	kp, err := svm.LoadKeypair(b)
	if err != nil {
		return nil, solix.NewError(solix.ErrCodeInvalidKey,
			fmt.Sprintf("Invalid secret key for field '%s'", name), err).WithField(name)
	}
	return kp, nil
}

// SignatureFrom checks that decoded bytes form a 64-byte signature.
func SignatureFrom(name string, b []byte) (solana.Signature, error) {
	sig, err := encoding.SignatureFromBytes(b)
	if err != nil {
		return sig, solix.NewError(solix.ErrCodeInvalidSignature,
			fmt.Sprintf("Invalid signature length for field '%s'", name), err).WithField(name)
	}
	return sig, nil
}

// ParsePublicKey decodes and checks a single base58 public key field.
func ParsePublicKey(name, text string) (solana.PublicKey, error) {
	decoded, err := DecodeFields(Base58(name, text))
	if err != nil {
		return solana.PublicKey{}, err
	}
	return PublicKeyFrom(name, decoded[0])
}

// ParseSecret decodes and checks a single base58 secret key field.
func ParseSecret(name, text string) (*svm.Keypair, error) {
	decoded, err := DecodeFields(Base58(name, text))
	if err != nil {
		return nil, err
	}
	return SecretFrom(name, decoded[0])
}

// ParseSignature decodes and checks a single base58 signature field.
func ParseSignature(name, text string) (solana.Signature, error) {
	decoded, err := DecodeFields(Base58(name, text))
	if err != nil {
		return solana.Signature{}, err
	}
	return SignatureFrom(name, decoded[0])
}

// ValidateAmount enforces the non-zero amount rule.
func ValidateAmount(name string, amount uint64) error {
	if amount == 0 {
		return solix.NewError(solix.ErrCodeDomainRule,
			fmt.Sprintf("Field '%s' must be greater than 0", name), nil).WithField(name)
	}
	return nil
}

// publicKeys decodes all fields, then checks each is a public key.
func publicKeys(fields ...Encoded) ([]solana.PublicKey, error) {
	decoded, err := DecodeFields(fields...)
	if err != nil {
		return nil, err
	}
	keys := make([]solana.PublicKey, len(fields))
	for i, f := range fields {
		keys[i], err = PublicKeyFrom(f.Name, decoded[i])
		if err != nil {
			return nil, err
		}
	}
	return keys, nil
}
