package validation

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/mark3labs/solix"
	"github.com/mark3labs/solix/encoding"
	"github.com/mark3labs/solix/svm"
)

const (
	walletA = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
	walletB = "CuieVDEDtLo7FypA9SbLM9saXFdb1dsshEkyErMqkRQq"
	usdc    = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

func u64(v uint64) *uint64 { return &v }
func u8(v uint8) *uint8    { return &v }

func testSecret(t *testing.T) (string, *svm.Keypair) {
	t.Helper()
	kp, err := svm.KeypairFromSeed(bytes.Repeat([]byte{3}, svm.SeedLength))
	if err != nil {
		t.Fatalf("KeypairFromSeed: %v", err)
	}
	return encoding.EncodeBase58(kp.Secret()), kp
}

func assertCode(t *testing.T, err error, want solix.ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := solix.CodeOf(err); got != want {
		t.Fatalf("code = %s, want %s (err: %v)", got, want, err)
	}
}

func TestRequireFields(t *testing.T) {
	if err := RequireFields(String("a", "x"), Uint64("b", u64(0)), Uint8("c", u8(0))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := RequireFields(String("a", ""), Uint64("b", nil), String("c", "x"))
	assertCode(t, err, solix.ErrCodeMissingField)

	var e *solix.Error
	if !errors.As(err, &e) {
		t.Fatal("expected *solix.Error")
	}
	if e.Field != "a" {
		t.Errorf("Field = %q, want a", e.Field)
	}
	if !strings.Contains(e.Message, "a, b") {
		t.Errorf("Message = %q, want it to list a, b", e.Message)
	}
}

func TestParsePublicKey(t *testing.T) {
	tests := []struct {
		name string
		text string
		want solix.ErrorCode
	}{
		{"valid", walletA, ""},
		{"bad alphabet", "0OIl" + walletA[4:], solix.ErrCodeInvalidEncoding},
		{"short", "abc", solix.ErrCodeInvalidKey},
		{"long", walletA + walletA, solix.ErrCodeInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pk, err := ParsePublicKey("from", tt.text)
			if tt.want != "" {
				assertCode(t, err, tt.want)
				if !strings.Contains(solix.PublicMessage(err), "'from'") {
					t.Errorf("message %q does not name the field", solix.PublicMessage(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pk.String() != tt.text {
				t.Errorf("got %s, want %s", pk, tt.text)
			}
		})
	}
}

func TestParseSecretAndSignature(t *testing.T) {
	secret, kp := testSecret(t)

	got, err := ParseSecret("secret", secret)
	if err != nil {
		t.Fatalf("ParseSecret: %v", err)
	}
	if !got.PublicKey().Equals(kp.PublicKey()) {
		t.Error("ParseSecret returned a different key")
	}

	_, err = ParseSecret("secret", walletA)
	assertCode(t, err, solix.ErrCodeInvalidKey)

	_, err = ParseSignature("signature", walletA)
	assertCode(t, err, solix.ErrCodeInvalidSignature)

	sig := svm.Sign(kp, []byte("hi"))
	parsed, err := ParseSignature("signature", encoding.EncodeSignature(sig))
	if err != nil {
		t.Fatalf("ParseSignature: %v", err)
	}
	if parsed != sig {
		t.Error("ParseSignature round trip mismatch")
	}
}

func TestValidateAmount(t *testing.T) {
	assertCode(t, ValidateAmount("amount", 0), solix.ErrCodeDomainRule)
	if err := ValidateAmount("amount", 1); err != nil {
		t.Errorf("ValidateAmount(1) = %v", err)
	}
}

// Missing fields must be reported before any decoding is attempted.
func TestCheckOrder(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
		want solix.ErrorCode
	}{
		{
			name: "sign with empty fields",
			run: func() error {
				_, err := ValidateSignMessage(solix.SignMessageRequest{Message: "", Secret: ""})
				return err
			},
			want: solix.ErrCodeMissingField,
		},
		{
			name: "sign with garbage secret but empty message",
			run: func() error {
				_, err := ValidateSignMessage(solix.SignMessageRequest{Message: "", Secret: "!!!"})
				return err
			},
			want: solix.ErrCodeMissingField,
		},
		{
			name: "send sol missing lamports with bad keys",
			run: func() error {
				_, err := ValidateSendSol(solix.SendSolRequest{From: "0", To: "0"})
				return err
			},
			want: solix.ErrCodeMissingField,
		},
		{
			name: "encoding before length across fields",
			run: func() error {
				_, err := ValidateSendSol(solix.SendSolRequest{From: "abc", To: "0OO", Lamports: u64(1)})
				return err
			},
			want: solix.ErrCodeInvalidEncoding,
		},
		{
			name: "length before domain rule",
			run: func() error {
				_, err := ValidateSendSol(solix.SendSolRequest{From: "abc", To: walletB, Lamports: u64(0)})
				return err
			},
			want: solix.ErrCodeInvalidKey,
		},
		{
			name: "domain rule last",
			run: func() error {
				_, err := ValidateSendSol(solix.SendSolRequest{From: walletA, To: walletB, Lamports: u64(0)})
				return err
			},
			want: solix.ErrCodeDomainRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCode(t, tt.run(), tt.want)
		})
	}
}

func TestValidateSignMessage(t *testing.T) {
	secret, kp := testSecret(t)
	params, err := ValidateSignMessage(solix.SignMessageRequest{Message: "Hello, Solana!", Secret: secret})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(params.Message) != "Hello, Solana!" || !params.Keypair.PublicKey().Equals(kp.PublicKey()) {
		t.Errorf("unexpected params %+v", params)
	}
}

func TestValidateVerifyMessage(t *testing.T) {
	_, kp := testSecret(t)
	sig := svm.Sign(kp, []byte("m"))

	params, err := ValidateVerifyMessage(solix.VerifyMessageRequest{
		Message:   "m",
		Signature: encoding.EncodeSignature(sig),
		Pubkey:    kp.PublicKey().String(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Signature != sig || !params.Pubkey.Equals(kp.PublicKey()) {
		t.Errorf("unexpected params %+v", params)
	}

	_, err = ValidateVerifyMessage(solix.VerifyMessageRequest{Message: "m", Signature: "abc", Pubkey: walletA})
	assertCode(t, err, solix.ErrCodeInvalidSignature)

	_, err = ValidateVerifyMessage(solix.VerifyMessageRequest{Message: "m", Signature: encoding.EncodeSignature(sig), Pubkey: "abc"})
	assertCode(t, err, solix.ErrCodeInvalidKey)

	_, err = ValidateVerifyMessage(solix.VerifyMessageRequest{Signature: encoding.EncodeSignature(sig), Pubkey: walletA})
	assertCode(t, err, solix.ErrCodeMissingField)
}

func TestValidateSendToken(t *testing.T) {
	params, err := ValidateSendToken(solix.SendTokenRequest{Destination: walletB, Mint: usdc, Owner: walletA, Amount: u64(5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if params.Owner.String() != walletA || params.Destination.String() != walletB || params.Mint.String() != usdc || params.Amount != 5 {
		t.Errorf("unexpected params %+v", params)
	}

	_, err = ValidateSendToken(solix.SendTokenRequest{Destination: walletB, Mint: usdc, Owner: walletA, Amount: u64(0)})
	assertCode(t, err, solix.ErrCodeDomainRule)

	_, err = ValidateSendToken(solix.SendTokenRequest{Destination: walletB, Mint: usdc, Amount: u64(1)})
	assertCode(t, err, solix.ErrCodeMissingField)
}

func TestValidateCreateToken(t *testing.T) {
	tests := []struct {
		name       string
		req        solix.CreateTokenRequest
		want       solix.ErrorCode
		wantFreeze bool
	}{
		{"zero decimals is present", solix.CreateTokenRequest{Mint: usdc, MintAuthority: walletA, Decimals: u8(0)}, "", false},
		{"with freeze authority", solix.CreateTokenRequest{Mint: usdc, MintAuthority: walletA, Decimals: u8(6), FreezeAuthority: walletB}, "", true},
		{"missing decimals", solix.CreateTokenRequest{Mint: usdc, MintAuthority: walletA}, solix.ErrCodeMissingField, false},
		{"bad freeze authority", solix.CreateTokenRequest{Mint: usdc, MintAuthority: walletA, Decimals: u8(6), FreezeAuthority: "abc"}, solix.ErrCodeInvalidKey, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := ValidateCreateToken(tt.req)
			if tt.want != "" {
				assertCode(t, err, tt.want)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (params.FreezeAuthority != nil) != tt.wantFreeze {
				t.Errorf("FreezeAuthority = %v, want set=%v", params.FreezeAuthority, tt.wantFreeze)
			}
			if params.Decimals != *tt.req.Decimals {
				t.Errorf("Decimals = %d", params.Decimals)
			}
		})
	}
}

func TestValidateMintToken(t *testing.T) {
	params, err := ValidateMintToken(solix.MintTokenRequest{Mint: usdc, Destination: walletB, Authority: walletA, Amount: u64(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !params.Authority.Equals(solana.MustPublicKeyFromBase58(walletA)) {
		t.Errorf("Authority = %s", params.Authority)
	}

	_, err = ValidateMintToken(solix.MintTokenRequest{Mint: usdc, Destination: walletB, Authority: walletA, Amount: u64(0)})
	assertCode(t, err, solix.ErrCodeDomainRule)
}

func TestValidateAssociatedAccountAndRecover(t *testing.T) {
	if _, err := ValidateAssociatedAccount(solix.AssociatedAccountRequest{Owner: walletA, Mint: usdc}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	_, err := ValidateAssociatedAccount(solix.AssociatedAccountRequest{Owner: walletA})
	assertCode(t, err, solix.ErrCodeMissingField)

	assertCode(t, ValidateRecoverKeypair(solix.RecoverKeypairRequest{}), solix.ErrCodeMissingField)
}
