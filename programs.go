package solix

import "github.com/gagliardetto/solana-go"

// ProgramConfig names an on-chain program the builders target.
type ProgramConfig struct {
	// Name is a short human-readable program name (e.g., "system", "token").
	Name string

	// ID is the program's public key.
	ID solana.PublicKey
}

// Programs targeted by solix instructions.
var (
	// SystemProgram owns native SOL transfers.
	SystemProgram = ProgramConfig{
		Name: "system",
		ID:   solana.SystemProgramID,
	}

	// TokenProgram is the SPL token program.
	TokenProgram = ProgramConfig{
		Name: "token",
		ID:   solana.TokenProgramID,
	}

	// AssociatedTokenProgram derives associated token accounts.
	AssociatedTokenProgram = ProgramConfig{
		Name: "associated-token-account",
		ID:   solana.SPLAssociatedTokenAccountProgramID,
	}

	// RentSysvar is the rent sysvar account read by initialize-mint.
	RentSysvar = ProgramConfig{
		Name: "sysvar-rent",
		ID:   solana.SysVarRentPubkey,
	}
)

var knownPrograms = []ProgramConfig{SystemProgram, TokenProgram, AssociatedTokenProgram, RentSysvar}

// ProgramName returns the short name of a known program id, or "unknown".
func ProgramName(id solana.PublicKey) string {
	for _, p := range knownPrograms {
		if p.ID.Equals(id) {
			return p.Name
		}
	}
	return "unknown"
}
