package svm

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/mark3labs/solix"
	"github.com/mark3labs/solix/encoding"
)

// Sign returns the deterministic Ed25519 signature of message.
func Sign(kp *Keypair, message []byte) solana.Signature {
	var sig solana.Signature
	copy(sig[:], ed25519.Sign(ed25519.PrivateKey(kp.secret), message))
	return sig
}

// Verify reports whether sig is a valid signature of message by pub.
// A bad signature is a normal outcome and yields false.
func Verify(pub solana.PublicKey, message []byte, sig solana.Signature) bool {
	return pub.Verify(message, sig)
}

// Signer holds a keypair loaded from one of the supported key sources.
type Signer struct {
	keypair *Keypair
}

// SignerOption configures a Signer.
type SignerOption func(*Signer) error

// NewSigner creates a new Solana signer with the given options.
// Exactly one key source must be supplied; a later source replaces an earlier one.
func NewSigner(opts ...SignerOption) (*Signer, error) {
	s := &Signer{}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.keypair == nil {
		return nil, solix.NewError(solix.ErrCodeInvalidKey, "no key source configured", nil)
	}

	return s, nil
}

// WithPrivateKey sets the keypair from a base58 64-byte secret.
func WithPrivateKey(base58Key string) SignerOption {
	return func(s *Signer) error {
		raw, err := encoding.DecodeBase58(base58Key)
		if err != nil {
			return err
		}
		kp, err := LoadKeypair(raw)
		if err != nil {
			return err
		}
		s.keypair = kp
		return nil
	}
}

// WithKeygenFile loads the keypair from a Solana CLI keygen JSON file.
func WithKeygenFile(path string) SignerOption {
	return func(s *Signer) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return solix.NewError(solix.ErrCodeInvalidKey, "failed to read keygen file", err)
		}

		// Parse JSON array format: [1, 2, 3, ...]
		var keyBytes []byte
		if err := json.Unmarshal(data, &keyBytes); err != nil {
			return solix.NewError(solix.ErrCodeInvalidKey, "invalid keygen file format", err)
		}

		kp, err := LoadKeypair(keyBytes)
		if err != nil {
			return err
		}
		s.keypair = kp
		return nil
	}
}

// WithMnemonic derives the keypair from a BIP-39 mnemonic and optional passphrase.
func WithMnemonic(mnemonic, passphrase string) SignerOption {
	return func(s *Signer) error {
		kp, err := KeypairFromMnemonic(mnemonic, passphrase)
		if err != nil {
			return err
		}
		s.keypair = kp
		return nil
	}
}

// WithKeypair uses an already loaded keypair.
func WithKeypair(kp *Keypair) SignerOption {
	return func(s *Signer) error {
		if kp == nil {
			return solix.NewError(solix.ErrCodeInvalidKey, "nil keypair", nil)
		}
		s.keypair = kp
		return nil
	}
}

// Sign signs message with the signer's keypair.
func (s *Signer) Sign(message []byte) solana.Signature {
	return Sign(s.keypair, message)
}

// PublicKey returns the signer's public key.
func (s *Signer) PublicKey() solana.PublicKey {
	return s.keypair.PublicKey()
}

// Keypair returns the signer's keypair.
func (s *Signer) Keypair() *Keypair {
	return s.keypair
}

// Address returns the base58 public key.
func (s *Signer) Address() string {
	return s.keypair.PublicKey().String()
}

// WriteKeygenFile stores kp as a Solana CLI keygen JSON array with 0600 permissions.
func WriteKeygenFile(path string, kp *Keypair) error {
	ints := make([]int, len(kp.secret))
	for i, b := range kp.secret {
		ints[i] = int(b)
	}
	data, err := json.Marshal(ints)
	if err != nil {
		return fmt.Errorf("failed to encode keypair: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write keygen file: %w", err)
	}
	// WriteFile keeps the mode of a file it truncates.
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict keygen file: %w", err)
	}
	return nil
}
