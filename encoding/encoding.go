// Package encoding provides the textual codecs used on the solix wire format.
// Public keys, secrets and signatures travel as base58 (Bitcoin alphabet, no
// checksum); instruction data travels as standard padded base64.
package encoding

import (
	"encoding/base64"

	"github.com/gagliardetto/solana-go"
	"github.com/mark3labs/solix"
	"github.com/mr-tron/base58"
)

// EncodeBase58 returns the base58 text of b. Leading zero bytes map to '1'.
func EncodeBase58(b []byte) string {
	return base58.Encode(b)
}

// DecodeBase58 decodes base58 text.
// Empty text decodes to an empty byte slice.
//
// Returns a solix.Error with code InvalidEncoding for any character outside the alphabet.
func DecodeBase58(text string) ([]byte, error) {
	if text == "" {
		return []byte{}, nil
	}
	b, err := base58.Decode(text)
	if err != nil {
		return nil, solix.NewError(solix.ErrCodeInvalidEncoding, "invalid base58 encoding", err)
	}
	return b, nil
}

// EncodeBase64 returns the standard padded base64 text of b.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBase64 decodes standard padded base64 text.
//
// Returns a solix.Error with code InvalidEncoding on bad characters or padding.
func DecodeBase64(text string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, solix.NewError(solix.ErrCodeInvalidEncoding, "invalid base64 encoding", err)
	}
	return b, nil
}

// DecodePublicKey decodes a base58 public key and checks it is exactly 32 bytes.
// Curve membership is not checked: program-derived addresses are valid keys.
func DecodePublicKey(text string) (solana.PublicKey, error) {
	b, err := DecodeBase58(text)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return PublicKeyFromBytes(b)
}

// PublicKeyFromBytes checks that b is exactly 32 bytes long.
func PublicKeyFromBytes(b []byte) (solana.PublicKey, error) {
	if len(b) != solana.PublicKeyLength {
		return solana.PublicKey{}, solix.NewError(solix.ErrCodeInvalidKey, "invalid public key length", nil)
	}
	return solana.PublicKeyFromBytes(b), nil
}

// SignatureFromBytes checks that b is exactly 64 bytes long.
func SignatureFromBytes(b []byte) (solana.Signature, error) {
	var sig solana.Signature
	if len(b) != solana.SignatureLength {
		return sig, solix.NewError(solix.ErrCodeInvalidSignature, "invalid signature length", nil)
	}
	copy(sig[:], b)
	return sig, nil
}

// EncodeSignature returns the base58 text of sig.
func EncodeSignature(sig solana.Signature) string {
	return base58.Encode(sig[:])
}

// EncodeInstruction converts an Instruction to its wire form, preserving
// account order.
func EncodeInstruction(ix solix.Instruction) solix.InstructionResponse {
	accounts := make([]solix.AccountMetaResponse, len(ix.Accounts))
	for i, acc := range ix.Accounts {
		accounts[i] = solix.AccountMetaResponse{
			Pubkey:     acc.Pubkey.String(),
			IsSigner:   acc.IsSigner,
			IsWritable: acc.IsWritable,
		}
	}
	return solix.InstructionResponse{
		ProgramID:       ix.ProgramID.String(),
		Accounts:        accounts,
		InstructionData: EncodeBase64(ix.Data),
	}
}

// DecodeInstruction converts the wire form back to an Instruction.
func DecodeInstruction(resp solix.InstructionResponse) (solix.Instruction, error) {
	programID, err := DecodePublicKey(resp.ProgramID)
	if err != nil {
		return solix.Instruction{}, err
	}
	data, err := DecodeBase64(resp.InstructionData)
	if err != nil {
		return solix.Instruction{}, err
	}
	accounts := make([]solix.AccountMeta, len(resp.Accounts))
	for i, acc := range resp.Accounts {
		pk, err := DecodePublicKey(acc.Pubkey)
		if err != nil {
			return solix.Instruction{}, err
		}
		accounts[i] = solix.AccountMeta{Pubkey: pk, IsSigner: acc.IsSigner, IsWritable: acc.IsWritable}
	}
	return solix.Instruction{ProgramID: programID, Accounts: accounts, Data: data}, nil
}
