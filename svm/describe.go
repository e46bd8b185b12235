package svm

import (
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/mark3labs/solix"
)

// Description is a decoded, human-readable view of an instruction.
type Description struct {
	// Program is the short program name (see solix.ProgramName).
	Program string

	// Name is the instruction variant (e.g., "Transfer", "InitializeMint").
	Name string

	// Fields holds the decoded parameters as text.
	Fields map[string]string
}

// DescribeInstruction decodes ix with the program's own decoder. It fails for
// programs other than system and token, or for data the program cannot parse.
func DescribeInstruction(ix solix.Instruction) (Description, error) {
	metas := toSolanaMetas(ix.Accounts)
	desc := Description{
		Program: solix.ProgramName(ix.ProgramID),
		Fields:  map[string]string{},
	}

	switch {
	case ix.ProgramID.Equals(solix.SystemProgram.ID):
		decoded, err := system.DecodeInstruction(metas, ix.Data)
		if err != nil {
			return desc, solix.NewError(solix.ErrCodeInvalidEncoding, "invalid system instruction data", err)
		}
		desc.Name = system.InstructionIDToName(decoded.TypeID.Uint32())
		if t, ok := decoded.Impl.(*system.Transfer); ok && t.Lamports != nil {
			desc.Fields["lamports"] = strconv.FormatUint(*t.Lamports, 10)
		}

	case ix.ProgramID.Equals(solix.TokenProgram.ID):
		decoded, err := token.DecodeInstruction(metas, ix.Data)
		if err != nil {
			return desc, solix.NewError(solix.ErrCodeInvalidEncoding, "invalid token instruction data", err)
		}
		desc.Name = token.InstructionIDToName(decoded.TypeID.Uint8())
		switch impl := decoded.Impl.(type) {
		case *token.Transfer:
			if impl.Amount != nil {
				desc.Fields["amount"] = strconv.FormatUint(*impl.Amount, 10)
			}
		case *token.MintTo:
			if impl.Amount != nil {
				desc.Fields["amount"] = strconv.FormatUint(*impl.Amount, 10)
			}
		case *token.InitializeMint:
			if impl.Decimals != nil {
				desc.Fields["decimals"] = strconv.FormatUint(uint64(*impl.Decimals), 10)
			}
			if impl.MintAuthority != nil {
				desc.Fields["mintAuthority"] = impl.MintAuthority.String()
			}
			if impl.FreezeAuthority != nil {
				desc.Fields["freezeAuthority"] = impl.FreezeAuthority.String()
			}
		}

	default:
		return desc, solix.NewError(solix.ErrCodeInvalidRequest, fmt.Sprintf("unsupported program %s", ix.ProgramID), nil)
	}

	return desc, nil
}
