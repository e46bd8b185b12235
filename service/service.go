// Package service implements the solix operations. Each method validates its
// request, performs the key, signing or instruction work and returns a
// solix.Result, so transports never have to inspect errors themselves.
package service

import (
	"io"
	"log/slog"

	"github.com/mark3labs/solix"
	"github.com/mark3labs/solix/encoding"
	"github.com/mark3labs/solix/svm"
	"github.com/mark3labs/solix/validation"
)

// Operation names, used for logging, metrics labels and MCP tool names.
const (
	OpGenerateKeypair   = "generate_keypair"
	OpMnemonicKeypair   = "generate_mnemonic_keypair"
	OpRecoverKeypair    = "recover_keypair"
	OpSignMessage       = "sign_message"
	OpVerifyMessage     = "verify_message"
	OpSendSol           = "send_sol"
	OpSendToken         = "send_token"
	OpCreateToken       = "create_token"
	OpMintToken         = "mint_token"
	OpAssociatedAccount = "associated_account"
)

// Service runs solix operations. It holds configuration only and is safe for
// concurrent use.
type Service struct {
	logger       *slog.Logger
	random       io.Reader
	mnemonicBits int
}

// Option configures a Service.
type Option func(*Service) error

// New creates a Service with the given options.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		logger:       slog.Default(),
		mnemonicBits: svm.DefaultMnemonicBits,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// WithLogger sets the logger. A nil logger keeps slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger != nil {
			s.logger = logger
		}
		return nil
	}
}

// WithRandom sets the entropy source for keypair generation. Intended for tests;
// the default is crypto/rand.
func WithRandom(r io.Reader) Option {
	return func(s *Service) error {
		s.random = r
		return nil
	}
}

// WithMnemonicBits sets the entropy size of generated mnemonics (128 to 256, a
// multiple of 32).
func WithMnemonicBits(bits int) Option {
	return func(s *Service) error {
		if bits < 128 || bits > 256 || bits%32 != 0 {
			return solix.NewError(solix.ErrCodeDomainRule, "mnemonic bits must be a multiple of 32 between 128 and 256", nil)
		}
		s.mnemonicBits = bits
		return nil
	}
}

func (s *Service) fail(op string, err error) {
	s.logger.Debug("operation failed", "operation", op, "code", solix.CodeOf(err), "error", err)
}

func (s *Service) newKeypair() (*svm.Keypair, error) {
	if s.random != nil {
		return svm.GenerateKeypairFrom(s.random)
	}
	return svm.GenerateKeypair()
}

func keypairResponse(kp *svm.Keypair) solix.KeypairResponse {
	return solix.KeypairResponse{
		Pubkey: kp.PublicKey().String(),
		Secret: encoding.EncodeBase58(kp.Secret()),
	}
}

// GenerateKeypair creates a fresh keypair.
func (s *Service) GenerateKeypair() solix.Result[solix.KeypairResponse] {
	kp, err := s.newKeypair()
	if err != nil {
		s.fail(OpGenerateKeypair, err)
		return solix.Fail[solix.KeypairResponse](err)
	}
	return solix.Ok(keypairResponse(kp))
}

// GenerateMnemonicKeypair creates a fresh BIP-39 mnemonic and its keypair.
func (s *Service) GenerateMnemonicKeypair() solix.Result[solix.MnemonicKeypairResponse] {
	mnemonic, err := svm.NewMnemonic(s.mnemonicBits)
	if err != nil {
		s.fail(OpMnemonicKeypair, err)
		return solix.Fail[solix.MnemonicKeypairResponse](err)
	}
	signer, err := svm.NewSigner(svm.WithMnemonic(mnemonic, ""))
	if err != nil {
		s.fail(OpMnemonicKeypair, err)
		return solix.Fail[solix.MnemonicKeypairResponse](err)
	}
	kp := keypairResponse(signer.Keypair())
	return solix.Ok(solix.MnemonicKeypairResponse{
		Pubkey:   kp.Pubkey,
		Secret:   kp.Secret,
		Mnemonic: mnemonic,
	})
}

// RecoverKeypair rebuilds the keypair of a BIP-39 mnemonic.
func (s *Service) RecoverKeypair(req solix.RecoverKeypairRequest) solix.Result[solix.KeypairResponse] {
	if err := validation.ValidateRecoverKeypair(req); err != nil {
		s.fail(OpRecoverKeypair, err)
		return solix.Fail[solix.KeypairResponse](err)
	}
	signer, err := svm.NewSigner(svm.WithMnemonic(req.Mnemonic, req.Passphrase))
	if err != nil {
		err = solix.NewError(solix.ErrCodeInvalidKey, "Invalid mnemonic", err).WithField("mnemonic")
		s.fail(OpRecoverKeypair, err)
		return solix.Fail[solix.KeypairResponse](err)
	}
	return solix.Ok(keypairResponse(signer.Keypair()))
}

// SignMessage signs the UTF-8 bytes of a message.
func (s *Service) SignMessage(req solix.SignMessageRequest) solix.Result[solix.SignMessageResponse] {
	params, err := validation.ValidateSignMessage(req)
	if err != nil {
		s.fail(OpSignMessage, err)
		return solix.Fail[solix.SignMessageResponse](err)
	}
	signer, err := svm.NewSigner(svm.WithKeypair(params.Keypair))
	if err != nil {
		s.fail(OpSignMessage, err)
		return solix.Fail[solix.SignMessageResponse](err)
	}

	sig := signer.Sign(params.Message)
	return solix.Ok(solix.SignMessageResponse{
		Signature: encoding.EncodeSignature(sig),
		Pubkey:    signer.Address(),
		Message:   req.Message,
	})
}

// VerifyMessage checks a detached signature. A bad signature is a successful
// result with Valid set to false.
func (s *Service) VerifyMessage(req solix.VerifyMessageRequest) solix.Result[solix.VerifyMessageResponse] {
	params, err := validation.ValidateVerifyMessage(req)
	if err != nil {
		s.fail(OpVerifyMessage, err)
		return solix.Fail[solix.VerifyMessageResponse](err)
	}
	return solix.Ok(solix.VerifyMessageResponse{
		Valid:   svm.Verify(params.Pubkey, params.Message, params.Signature),
		Message: req.Message,
		Pubkey:  params.Pubkey.String(),
	})
}
