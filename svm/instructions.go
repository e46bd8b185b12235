package svm

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/mark3labs/solix"
)

// builtInstruction is the subset of solana.Instruction the program packages return.
type builtInstruction interface {
	ProgramID() solana.PublicKey
	Accounts() []*solana.AccountMeta
	Data() ([]byte, error)
}

// BuildSolTransfer builds a system-program transfer of lamports from one account
// to another. The sender signs and both accounts are writable.
func BuildSolTransfer(from, to solana.PublicKey, lamports uint64) (solix.Instruction, error) {
	if lamports == 0 {
		return solix.Instruction{}, solix.NewError(solix.ErrCodeDomainRule, "lamports must be greater than 0", nil).WithField("lamports")
	}

	ix, err := system.NewTransferInstruction(lamports, from, to).ValidateAndBuild()
	if err != nil {
		return solix.Instruction{}, buildError(err)
	}
	return fromSolana(ix)
}

// BuildTokenTransfer builds an SPL token transfer between two token accounts.
// source and destination are token accounts, not wallets; owner signs.
func BuildTokenTransfer(source, destination, owner solana.PublicKey, amount uint64) (solix.Instruction, error) {
	if amount == 0 {
		return solix.Instruction{}, solix.NewError(solix.ErrCodeDomainRule, "amount must be greater than 0", nil).WithField("amount")
	}

	ix, err := token.NewTransferInstruction(amount, source, destination, owner, nil).ValidateAndBuild()
	if err != nil {
		return solix.Instruction{}, buildError(err)
	}
	return fromSolana(ix)
}

// BuildInitializeMint builds an SPL initialize-mint instruction. A nil
// freezeAuthority leaves the mint without one.
func BuildInitializeMint(mint, mintAuthority solana.PublicKey, freezeAuthority *solana.PublicKey, decimals uint8) (solix.Instruction, error) {
	builder := token.NewInitializeMintInstructionBuilder().
		SetDecimals(decimals).
		SetMintAuthority(mintAuthority).
		SetMintAccount(mint).
		SetSysVarRentPubkeyAccount(solix.RentSysvar.ID)
	if freezeAuthority != nil {
		builder.SetFreezeAuthority(*freezeAuthority)
	}

	ix, err := builder.ValidateAndBuild()
	if err != nil {
		return solix.Instruction{}, buildError(err)
	}
	return fromSolana(ix)
}

// BuildMintTo builds an SPL mint-to instruction crediting destination, a token
// account. authority signs.
func BuildMintTo(mint, destination, authority solana.PublicKey, amount uint64) (solix.Instruction, error) {
	if amount == 0 {
		return solix.Instruction{}, solix.NewError(solix.ErrCodeDomainRule, "amount must be greater than 0", nil).WithField("amount")
	}

	ix, err := token.NewMintToInstruction(amount, mint, destination, authority, nil).ValidateAndBuild()
	if err != nil {
		return solix.Instruction{}, buildError(err)
	}
	return fromSolana(ix)
}

func fromSolana(ix builtInstruction) (solix.Instruction, error) {
	data, err := ix.Data()
	if err != nil {
		return solix.Instruction{}, buildError(err)
	}

	metas := ix.Accounts()
	accounts := make([]solix.AccountMeta, len(metas))
	for i, m := range metas {
		accounts[i] = solix.AccountMeta{
			Pubkey:     m.PublicKey,
			IsSigner:   m.IsSigner,
			IsWritable: m.IsWritable,
		}
	}

	return solix.Instruction{
		ProgramID: ix.ProgramID(),
		Accounts:  accounts,
		Data:      data,
	}, nil
}

func toSolanaMetas(accounts []solix.AccountMeta) []*solana.AccountMeta {
	metas := make([]*solana.AccountMeta, len(accounts))
	for i, acc := range accounts {
		metas[i] = solana.NewAccountMeta(acc.Pubkey, acc.IsWritable, acc.IsSigner)
	}
	return metas
}

func buildError(err error) *solix.Error {
	return solix.NewError(solix.ErrCodeInstructionBuild, "failed to build instruction", err)
}
