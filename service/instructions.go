package service

import (
	"context"
	"log/slog"

	"github.com/mark3labs/solix"
	"github.com/mark3labs/solix/encoding"
	"github.com/mark3labs/solix/svm"
	"github.com/mark3labs/solix/validation"
)

func (s *Service) instruction(op string, ix solix.Instruction, err error) solix.Result[solix.InstructionResponse] {
	if err != nil {
		s.fail(op, err)
		return solix.Fail[solix.InstructionResponse](err)
	}
	if s.logger.Enabled(context.Background(), slog.LevelDebug) {
		if desc, derr := svm.DescribeInstruction(ix); derr == nil {
			s.logger.Debug("built instruction",
				"operation", op,
				"program", desc.Program,
				"instruction", desc.Name,
				"accounts", len(ix.Accounts),
			)
		}
	}
	return solix.Ok(encoding.EncodeInstruction(ix))
}

// SendSol builds a native SOL transfer.
func (s *Service) SendSol(req solix.SendSolRequest) solix.Result[solix.InstructionResponse] {
	params, err := validation.ValidateSendSol(req)
	if err != nil {
		return s.instruction(OpSendSol, solix.Instruction{}, err)
	}
	ix, err := svm.BuildSolTransfer(params.From, params.To, params.Lamports)
	return s.instruction(OpSendSol, ix, err)
}

// SendToken builds an SPL token transfer from the owner's associated token
// account to the destination wallet's associated token account.
func (s *Service) SendToken(req solix.SendTokenRequest) solix.Result[solix.InstructionResponse] {
	params, err := validation.ValidateSendToken(req)
	if err != nil {
		return s.instruction(OpSendToken, solix.Instruction{}, err)
	}

	source, _, err := svm.DeriveAssociatedAddress(params.Owner, params.Mint)
	if err != nil {
		return s.instruction(OpSendToken, solix.Instruction{}, err)
	}
	destination, _, err := svm.DeriveAssociatedAddress(params.Destination, params.Mint)
	if err != nil {
		return s.instruction(OpSendToken, solix.Instruction{}, err)
	}

	ix, err := svm.BuildTokenTransfer(source, destination, params.Owner, params.Amount)
	return s.instruction(OpSendToken, ix, err)
}

// CreateToken builds an initialize-mint instruction.
func (s *Service) CreateToken(req solix.CreateTokenRequest) solix.Result[solix.InstructionResponse] {
	params, err := validation.ValidateCreateToken(req)
	if err != nil {
		return s.instruction(OpCreateToken, solix.Instruction{}, err)
	}
	ix, err := svm.BuildInitializeMint(params.Mint, params.MintAuthority, params.FreezeAuthority, params.Decimals)
	return s.instruction(OpCreateToken, ix, err)
}

// MintToken builds a mint-to instruction crediting the destination wallet's
// associated token account.
func (s *Service) MintToken(req solix.MintTokenRequest) solix.Result[solix.InstructionResponse] {
	params, err := validation.ValidateMintToken(req)
	if err != nil {
		return s.instruction(OpMintToken, solix.Instruction{}, err)
	}
	destination, _, err := svm.DeriveAssociatedAddress(params.Destination, params.Mint)
	if err != nil {
		return s.instruction(OpMintToken, solix.Instruction{}, err)
	}
	ix, err := svm.BuildMintTo(params.Mint, destination, params.Authority, params.Amount)
	return s.instruction(OpMintToken, ix, err)
}

// AssociatedAccount derives the associated token account of a wallet for a mint.
func (s *Service) AssociatedAccount(req solix.AssociatedAccountRequest) solix.Result[solix.AssociatedAccountResponse] {
	params, err := validation.ValidateAssociatedAccount(req)
	if err != nil {
		s.fail(OpAssociatedAccount, err)
		return solix.Fail[solix.AssociatedAccountResponse](err)
	}
	addr, bump, err := svm.DeriveAssociatedAddress(params.Owner, params.Mint)
	if err != nil {
		s.fail(OpAssociatedAccount, err)
		return solix.Fail[solix.AssociatedAccountResponse](err)
	}
	return solix.Ok(solix.AssociatedAccountResponse{Address: addr.String(), Bump: bump})
}
