package svm

import (
	"crypto/sha256"
	"math"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
	"github.com/mark3labs/solix"
)

const pdaMarker = "ProgramDerivedAddress"

// IsOnCurve reports whether b is the encoding of a point on the ed25519 curve.
func IsOnCurve(b []byte) bool {
	if len(b) != solana.PublicKeyLength {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// CreateProgramAddress hashes seeds with programID and accepts the result only
// if it is off the curve, so that no private key can exist for it.
func CreateProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, error) {
	if err := checkSeeds(seeds, solana.MaxSeeds); err != nil {
		return solana.PublicKey{}, err
	}

	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))

	sum := h.Sum(nil)
	if IsOnCurve(sum) {
		return solana.PublicKey{}, solix.NewError(solix.ErrCodeDerivation, "derived address is on curve", nil)
	}
	return solana.PublicKeyFromBytes(sum), nil
}

// FindProgramAddress searches bump seeds from 255 down to 0 inclusive and returns
// the first off-curve address with its bump.
//
// Returns a solix.Error with code DerivationError if every bump lands on the curve.
func FindProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	// One seed slot is reserved for the bump.
	if err := checkSeeds(seeds, solana.MaxSeeds-1); err != nil {
		return solana.PublicKey{}, 0, err
	}

	candidate := make([][]byte, len(seeds)+1)
	copy(candidate, seeds)

	for bump := math.MaxUint8; bump >= 0; bump-- {
		candidate[len(seeds)] = []byte{byte(bump)}
		address, err := CreateProgramAddress(candidate, programID)
		if err == nil {
			return address, uint8(bump), nil
		}
	}
	return solana.PublicKey{}, 0, solix.NewError(solix.ErrCodeDerivation, "unable to find a valid program address", nil)
}

func checkSeeds(seeds [][]byte, maxSeeds int) error {
	if len(seeds) > maxSeeds {
		return solix.NewError(solix.ErrCodeDerivation, "too many seeds", nil)
	}
	for _, seed := range seeds {
		if len(seed) > solana.MaxSeedLength {
			return solix.NewError(solix.ErrCodeDerivation, "seed too long", nil)
		}
	}
	return nil
}

// DeriveAssociatedAddress returns the associated token account of owner for mint
// and its bump seed.
func DeriveAssociatedAddress(owner, mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return FindProgramAddress(
		[][]byte{owner[:], solix.TokenProgram.ID[:], mint[:]},
		solix.AssociatedTokenProgram.ID,
	)
}
