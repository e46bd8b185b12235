// Package svm implements the Solana key, signing, address-derivation and
// instruction-building primitives used by solix. Everything here is pure: no
// RPC endpoint is contacted and no state is shared between calls.
package svm

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"io"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
	"github.com/mark3labs/solix"
	"github.com/tyler-smith/go-bip39"
)

// SeedLength is the size of an Ed25519 private seed.
const SeedLength = ed25519.SeedSize

// DefaultMnemonicBits is the entropy size of a 12-word BIP-39 mnemonic.
const DefaultMnemonicBits = 128

// Keypair is an immutable Ed25519 keypair. The secret is the 64-byte Solana
// layout: 32-byte seed followed by the 32-byte public key.
type Keypair struct {
	secret solana.PrivateKey
	public solana.PublicKey
}

// GenerateKeypair creates a keypair from crypto/rand.
func GenerateKeypair() (*Keypair, error) {
	priv, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, solix.NewError(solix.ErrCodeKeyGeneration, "failed to generate keypair", err)
	}
	return newKeypair(priv), nil
}

// GenerateKeypairFrom creates a keypair reading the seed from r.
// A nil reader falls back to crypto/rand.
func GenerateKeypairFrom(r io.Reader) (*Keypair, error) {
	if r == nil {
		r = rand.Reader
	}
	_, priv, err := ed25519.GenerateKey(r)
	if err != nil {
		return nil, solix.NewError(solix.ErrCodeKeyGeneration, "failed to generate keypair", err)
	}
	return newKeypair(solana.PrivateKey(priv)), nil
}

// KeypairFromSeed derives the keypair for a 32-byte Ed25519 seed.
func KeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != SeedLength {
		return nil, solix.NewError(solix.ErrCodeInvalidKey, "invalid seed length", nil)
	}
	return newKeypair(solana.PrivateKey(ed25519.NewKeyFromSeed(seed))), nil
}

// LoadKeypair validates a 64-byte secret and returns its keypair.
//
// Returns a solix.Error with code InvalidKeyMaterial if the length is wrong, the
// public half is not a curve point, or the public half does not belong to the seed.
func LoadKeypair(secret []byte) (*Keypair, error) {
	if len(secret) != solana.PrivateKeyLength {
		return nil, solix.NewError(solix.ErrCodeInvalidKey, "invalid secret key length", nil)
	}

	public := secret[SeedLength:]
	if _, err := new(edwards25519.Point).SetBytes(public); err != nil {
		return nil, solix.NewError(solix.ErrCodeInvalidKey, "invalid secret key", err)
	}

	derived := ed25519.NewKeyFromSeed(secret[:SeedLength])
	if !bytes.Equal(derived[SeedLength:], public) {
		return nil, solix.NewError(solix.ErrCodeInvalidKey, "secret key does not match its public key", nil)
	}

	return newKeypair(solana.PrivateKey(derived)), nil
}

// NewMnemonic returns a fresh BIP-39 English mnemonic with the given entropy
// size in bits (128 gives 12 words, 256 gives 24).
func NewMnemonic(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", solix.NewError(solix.ErrCodeDomainRule, "invalid mnemonic entropy size", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", solix.NewError(solix.ErrCodeDomainRule, "failed to create mnemonic", err)
	}
	return mnemonic, nil
}

// KeypairFromMnemonic derives a keypair from a BIP-39 mnemonic. The Ed25519
// seed is the first 32 bytes of the BIP-39 seed, matching `solana-keygen
// recover` without a derivation path.
func KeypairFromMnemonic(mnemonic, passphrase string) (*Keypair, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, solix.NewError(solix.ErrCodeInvalidKey, "invalid mnemonic", nil)
	}
	seed := bip39.NewSeed(mnemonic, passphrase)
	return KeypairFromSeed(seed[:SeedLength])
}

func newKeypair(priv solana.PrivateKey) *Keypair {
	var public solana.PublicKey
	copy(public[:], priv[SeedLength:])
	return &Keypair{secret: priv, public: public}
}

// PublicKey returns the keypair's public key.
func (k *Keypair) PublicKey() solana.PublicKey {
	return k.public
}

// Secret returns a copy of the 64-byte secret.
func (k *Keypair) Secret() []byte {
	out := make([]byte, len(k.secret))
	copy(out, k.secret)
	return out
}

// String returns the public key only, so keypairs are safe to log.
func (k *Keypair) String() string {
	return k.public.String()
}
