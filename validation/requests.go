package validation

import (
	"github.com/gagliardetto/solana-go"
	"github.com/mark3labs/solix"
	"github.com/mark3labs/solix/svm"
)

// SignParams are the checked inputs of a sign-message request.
type SignParams struct {
	Message []byte
	Keypair *svm.Keypair
}

// ValidateSignMessage checks a sign-message request.
func ValidateSignMessage(req solix.SignMessageRequest) (SignParams, error) {
	if err := RequireFields(String("message", req.Message), String("secret", req.Secret)); err != nil {
		return SignParams{}, err
	}
	kp, err := ParseSecret("secret", req.Secret)
	if err != nil {
		return SignParams{}, err
	}
	return SignParams{Message: []byte(req.Message), Keypair: kp}, nil
}

// VerifyParams are the checked inputs of a verify-message request.
type VerifyParams struct {
	Message   []byte
	Signature solana.Signature
	Pubkey    solana.PublicKey
}

// ValidateVerifyMessage checks a verify-message request.
func ValidateVerifyMessage(req solix.VerifyMessageRequest) (VerifyParams, error) {
	if err := RequireFields(
		String("message", req.Message),
		String("signature", req.Signature),
		String("pubkey", req.Pubkey),
	); err != nil {
		return VerifyParams{}, err
	}

	decoded, err := DecodeFields(Base58("signature", req.Signature), Base58("pubkey", req.Pubkey))
	if err != nil {
		return VerifyParams{}, err
	}
	sig, err := SignatureFrom("signature", decoded[0])
	if err != nil {
		return VerifyParams{}, err
	}
	pub, err := PublicKeyFrom("pubkey", decoded[1])
	if err != nil {
		return VerifyParams{}, err
	}
	return VerifyParams{Message: []byte(req.Message), Signature: sig, Pubkey: pub}, nil
}

// SendSolParams are the checked inputs of a SOL transfer.
type SendSolParams struct {
	From     solana.PublicKey
	To       solana.PublicKey
	Lamports uint64
}

// ValidateSendSol checks a SOL transfer request.
func ValidateSendSol(req solix.SendSolRequest) (SendSolParams, error) {
	if err := RequireFields(String("from", req.From), String("to", req.To), Uint64("lamports", req.Lamports)); err != nil {
		return SendSolParams{}, err
	}
	keys, err := publicKeys(Base58("from", req.From), Base58("to", req.To))
	if err != nil {
		return SendSolParams{}, err
	}
	if err := ValidateAmount("lamports", *req.Lamports); err != nil {
		return SendSolParams{}, err
	}
	return SendSolParams{From: keys[0], To: keys[1], Lamports: *req.Lamports}, nil
}

// SendTokenParams are the checked inputs of a token transfer. Destination and
// Owner are wallets; token accounts are derived from them.
type SendTokenParams struct {
	Destination solana.PublicKey
	Mint        solana.PublicKey
	Owner       solana.PublicKey
	Amount      uint64
}

// ValidateSendToken checks a token transfer request.
func ValidateSendToken(req solix.SendTokenRequest) (SendTokenParams, error) {
	if err := RequireFields(
		String("destination", req.Destination),
		String("mint", req.Mint),
		String("owner", req.Owner),
		Uint64("amount", req.Amount),
	); err != nil {
		return SendTokenParams{}, err
	}
	keys, err := publicKeys(Base58("destination", req.Destination), Base58("mint", req.Mint), Base58("owner", req.Owner))
	if err != nil {
		return SendTokenParams{}, err
	}
	if err := ValidateAmount("amount", *req.Amount); err != nil {
		return SendTokenParams{}, err
	}
	return SendTokenParams{Destination: keys[0], Mint: keys[1], Owner: keys[2], Amount: *req.Amount}, nil
}

// CreateTokenParams are the checked inputs of an initialize-mint request.
type CreateTokenParams struct {
	Mint            solana.PublicKey
	MintAuthority   solana.PublicKey
	FreezeAuthority *solana.PublicKey
	Decimals        uint8
}

// ValidateCreateToken checks an initialize-mint request. freezeAuthority is optional.
func ValidateCreateToken(req solix.CreateTokenRequest) (CreateTokenParams, error) {
	if err := RequireFields(
		String("mint", req.Mint),
		String("mintAuthority", req.MintAuthority),
		Uint8("decimals", req.Decimals),
	); err != nil {
		return CreateTokenParams{}, err
	}

	fields := []Encoded{Base58("mint", req.Mint), Base58("mintAuthority", req.MintAuthority)}
	if req.FreezeAuthority != "" {
		fields = append(fields, Base58("freezeAuthority", req.FreezeAuthority))
	}
	keys, err := publicKeys(fields...)
	if err != nil {
		return CreateTokenParams{}, err
	}

	params := CreateTokenParams{Mint: keys[0], MintAuthority: keys[1], Decimals: *req.Decimals}
	if len(keys) == 3 {
		params.FreezeAuthority = &keys[2]
	}
	return params, nil
}

// MintTokenParams are the checked inputs of a mint-to request. Destination is a
// wallet; tokens go to its associated token account.
type MintTokenParams struct {
	Mint        solana.PublicKey
	Destination solana.PublicKey
	Authority   solana.PublicKey
	Amount      uint64
}

// ValidateMintToken checks a mint-to request.
func ValidateMintToken(req solix.MintTokenRequest) (MintTokenParams, error) {
	if err := RequireFields(
		String("mint", req.Mint),
		String("destination", req.Destination),
		String("authority", req.Authority),
		Uint64("amount", req.Amount),
	); err != nil {
		return MintTokenParams{}, err
	}
	keys, err := publicKeys(Base58("mint", req.Mint), Base58("destination", req.Destination), Base58("authority", req.Authority))
	if err != nil {
		return MintTokenParams{}, err
	}
	if err := ValidateAmount("amount", *req.Amount); err != nil {
		return MintTokenParams{}, err
	}
	return MintTokenParams{Mint: keys[0], Destination: keys[1], Authority: keys[2], Amount: *req.Amount}, nil
}

// AssociatedAccountParams are the checked inputs of an associated account lookup.
type AssociatedAccountParams struct {
	Owner solana.PublicKey
	Mint  solana.PublicKey
}

// ValidateAssociatedAccount checks an associated account lookup.
func ValidateAssociatedAccount(req solix.AssociatedAccountRequest) (AssociatedAccountParams, error) {
	if err := RequireFields(String("owner", req.Owner), String("mint", req.Mint)); err != nil {
		return AssociatedAccountParams{}, err
	}
	keys, err := publicKeys(Base58("owner", req.Owner), Base58("mint", req.Mint))
	if err != nil {
		return AssociatedAccountParams{}, err
	}
	return AssociatedAccountParams{Owner: keys[0], Mint: keys[1]}, nil
}

// ValidateRecoverKeypair checks a keypair recovery request. Mnemonic validity
// is checked when the keypair is derived.
func ValidateRecoverKeypair(req solix.RecoverKeypairRequest) error {
	return RequireFields(String("mnemonic", req.Mnemonic))
}
