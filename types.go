// Package solix defines the wire types, error model and Result envelope shared by
// the solix packages. solix is a stateless Solana toolkit: it generates Ed25519
// keypairs, signs and verifies messages, and builds serialized instructions for
// native SOL transfers and SPL token operations without touching the network.
//
// The concrete work lives in subpackages:
//   - encoding: base58 and base64 codecs and instruction serialization
//   - svm: keys, signing, program-derived addresses and instruction builders
//   - validation: ordered request validation
//   - service: one operation per endpoint, each returning a Result
//   - http, http/chi, http/gin: transports
//   - mcp/server: the same operations exposed as MCP tools
package solix

import "github.com/gagliardetto/solana-go"

// KeypairResponse is returned by keypair generation and recovery.
type KeypairResponse struct {
	// Pubkey is the base58 public key.
	Pubkey string `json:"pubkey"`

	// Secret is the base58 encoding of the 64-byte keypair (seed followed by public key).
	Secret string `json:"secret"`
}

// MnemonicKeypairResponse is returned when a keypair is generated together with
// its BIP-39 recovery phrase.
type MnemonicKeypairResponse struct {
	Pubkey   string `json:"pubkey"`
	Secret   string `json:"secret"`
	Mnemonic string `json:"mnemonic"`
}

// RecoverKeypairRequest rebuilds a keypair from a BIP-39 mnemonic.
type RecoverKeypairRequest struct {
	Mnemonic   string `json:"mnemonic"`
	Passphrase string `json:"passphrase,omitempty"`
}

// SignMessageRequest asks for an Ed25519 signature over Message.
type SignMessageRequest struct {
	// Message is signed as its UTF-8 bytes.
	Message string `json:"message"`

	// Secret is the base58 64-byte keypair.
	Secret string `json:"secret"`
}

// SignMessageResponse carries a detached signature.
type SignMessageResponse struct {
	// Signature is the base58 encoding of the 64-byte signature.
	Signature string `json:"signature"`
	Pubkey    string `json:"pubkey"`
	Message   string `json:"message"`
}

// VerifyMessageRequest checks a detached signature.
type VerifyMessageRequest struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
	Pubkey    string `json:"pubkey"`
}

// VerifyMessageResponse reports whether the signature is valid.
type VerifyMessageResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
	Pubkey  string `json:"pubkey"`
}

// SendSolRequest describes a native SOL transfer.
// Lamports is a pointer so that an explicit zero is distinguishable from absence.
type SendSolRequest struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Lamports *uint64 `json:"lamports"`
}

// SendTokenRequest describes an SPL token transfer between the associated token
// accounts of Owner and Destination for Mint.
type SendTokenRequest struct {
	Destination string  `json:"destination"`
	Mint        string  `json:"mint"`
	Owner       string  `json:"owner"`
	Amount      *uint64 `json:"amount"`
}

// CreateTokenRequest describes an initialize-mint instruction.
type CreateTokenRequest struct {
	Mint            string `json:"mint"`
	MintAuthority   string `json:"mintAuthority"`
	Decimals        *uint8 `json:"decimals"`
	FreezeAuthority string `json:"freezeAuthority,omitempty"`
}

// MintTokenRequest describes a mint-to instruction. Tokens are minted into the
// associated token account of Destination.
type MintTokenRequest struct {
	Mint        string  `json:"mint"`
	Destination string  `json:"destination"`
	Authority   string  `json:"authority"`
	Amount      *uint64 `json:"amount"`
}

// AssociatedAccountRequest asks for the associated token account of Owner for Mint.
type AssociatedAccountRequest struct {
	Owner string `json:"owner"`
	Mint  string `json:"mint"`
}

// AssociatedAccountResponse is a derived associated token address.
type AssociatedAccountResponse struct {
	Address string `json:"address"`
	Bump    uint8  `json:"bump"`
}

// AccountMetaResponse is the wire form of one account reference.
type AccountMetaResponse struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"isSigner"`
	IsWritable bool   `json:"isWritable"`
}

// InstructionResponse is the wire form of an Instruction.
type InstructionResponse struct {
	ProgramID string                `json:"programId"`
	Accounts  []AccountMetaResponse `json:"accounts"`

	// InstructionData is the base64 encoding of the instruction data.
	InstructionData string `json:"instructionData"`
}

// AccountMeta is one account referenced by an instruction. Order within an
// instruction is significant.
type AccountMeta struct {
	Pubkey     solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// Instruction is a program invocation: the program id, its ordered accounts and
// an opaque data blob in the program's layout.
type Instruction struct {
	ProgramID solana.PublicKey
	Accounts  []AccountMeta
	Data      []byte
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}
