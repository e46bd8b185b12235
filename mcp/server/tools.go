package server

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mark3labs/solix"
	httpx "github.com/mark3labs/solix/http"
	"github.com/mark3labs/solix/metrics"
	"github.com/mark3labs/solix/service"
)

// toolDef pairs an MCP tool with the operation it runs. Amounts names the
// u64 arguments that are normalized before decoding.
type toolDef struct {
	tool      mcp.Tool
	operation string
	amounts   []string
}

func pubkey(name, desc string) mcp.ToolOption {
	return mcp.WithString(name, mcp.Required(), mcp.Description(desc+" (base58 public key)"))
}

// amount declares a u64 argument. Clients send it as a decimal string because
// JSON numbers lose precision above 2^53.
func amount(name, desc string) mcp.ToolOption {
	return mcp.WithString(name, mcp.Required(), mcp.Pattern(`^[0-9]+$`),
		mcp.Description(desc+" (decimal string, up to 18446744073709551615)"))
}

// maxExactFloat is the first integer a float64 can no longer tell apart from
// its neighbour.
const maxExactFloat = 1 << 53

// parseAmount converts one amount argument to an exact uint64. Strings carry
// the full range; numbers are accepted only while they are exact integers.
func parseAmount(v any) (uint64, bool) {
	switch x := v.(type) {
	case string:
		n, err := strconv.ParseUint(x, 10, 64)
		return n, err == nil
	case json.Number:
		n, err := strconv.ParseUint(x.String(), 10, 64)
		return n, err == nil
	case float64:
		if x < 0 || x >= maxExactFloat || x != math.Trunc(x) {
			return 0, false
		}
		return uint64(x), true
	case int:
		return uint64(x), x >= 0
	case int64:
		return uint64(x), x >= 0
	case uint64:
		return x, true
	default:
		return 0, false
	}
}

// normalizeAmounts returns a copy of args with every amount rewritten as an
// exact JSON number. An empty string is dropped so that it reports as missing.
func normalizeAmounts(args map[string]any, names []string) (map[string]any, error) {
	if len(names) == 0 || len(args) == 0 {
		return args, nil
	}
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	for _, name := range names {
		v, ok := out[name]
		if !ok || v == nil {
			continue
		}
		if v == "" {
			delete(out, name)
			continue
		}
		n, ok := parseAmount(v)
		if !ok {
			return nil, solix.NewError(solix.ErrCodeInvalidRequest,
				fmt.Sprintf("Invalid value for field '%s'", name), nil).WithField(name)
		}
		out[name] = json.Number(strconv.FormatUint(n, 10))
	}
	return out, nil
}

// tools lists the MCP tools. Tool names are the service operation names.
func tools() []toolDef {
	return []toolDef{
		{operation: service.OpGenerateKeypair, tool: mcp.NewTool(service.OpGenerateKeypair,
			mcp.WithDescription("Generate a new Ed25519 keypair"),
		)},
		{operation: service.OpMnemonicKeypair, tool: mcp.NewTool(service.OpMnemonicKeypair,
			mcp.WithDescription("Generate a keypair together with its BIP-39 recovery phrase"),
		)},
		{operation: service.OpRecoverKeypair, tool: mcp.NewTool(service.OpRecoverKeypair,
			mcp.WithDescription("Recover a keypair from a BIP-39 mnemonic"),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithString("mnemonic", mcp.Required(), mcp.Description("BIP-39 mnemonic")),
			mcp.WithString("passphrase", mcp.Description("Optional BIP-39 passphrase")),
		)},
		{operation: service.OpSignMessage, tool: mcp.NewTool(service.OpSignMessage,
			mcp.WithDescription("Sign a UTF-8 message with a base58 secret key"),
			mcp.WithString("message", mcp.Required(), mcp.Description("Message to sign")),
			mcp.WithString("secret", mcp.Required(), mcp.Description("Base58 64-byte secret key")),
		)},
		{operation: service.OpVerifyMessage, tool: mcp.NewTool(service.OpVerifyMessage,
			mcp.WithDescription("Verify a detached Ed25519 signature"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString("message", mcp.Required(), mcp.Description("Signed message")),
			mcp.WithString("signature", mcp.Required(), mcp.Description("Base58 signature")),
			pubkey("pubkey", "Signer"),
		)},
		{operation: service.OpSendSol, amounts: []string{"lamports"}, tool: mcp.NewTool(service.OpSendSol,
			mcp.WithDescription("Build a System Program SOL transfer instruction"),
			mcp.WithReadOnlyHintAnnotation(true),
			pubkey("from", "Sender"),
			pubkey("to", "Recipient"),
			amount("lamports", "Lamports to transfer"),
		)},
		{operation: service.OpSendToken, amounts: []string{"amount"}, tool: mcp.NewTool(service.OpSendToken,
			mcp.WithDescription("Build an SPL token transfer between associated token accounts"),
			mcp.WithReadOnlyHintAnnotation(true),
			pubkey("destination", "Recipient wallet"),
			pubkey("mint", "Token mint"),
			pubkey("owner", "Sender wallet"),
			amount("amount", "Amount in base units"),
		)},
		{operation: service.OpCreateToken, tool: mcp.NewTool(service.OpCreateToken,
			mcp.WithDescription("Build an SPL token initialize-mint instruction"),
			mcp.WithReadOnlyHintAnnotation(true),
			pubkey("mint", "Mint account"),
			pubkey("mintAuthority", "Mint authority"),
			mcp.WithNumber("decimals", mcp.Required(), mcp.Min(0), mcp.Max(255), mcp.Description("Token decimals")),
			mcp.WithString("freezeAuthority", mcp.Description("Optional freeze authority (base58 public key)")),
		)},
		{operation: service.OpMintToken, amounts: []string{"amount"}, tool: mcp.NewTool(service.OpMintToken,
			mcp.WithDescription("Build an SPL token mint-to instruction"),
			mcp.WithReadOnlyHintAnnotation(true),
			pubkey("mint", "Token mint"),
			pubkey("destination", "Recipient wallet"),
			pubkey("authority", "Mint authority"),
			amount("amount", "Amount in base units"),
		)},
		{operation: service.OpAssociatedAccount, tool: mcp.NewTool(service.OpAssociatedAccount,
			mcp.WithDescription("Derive the associated token account of a wallet for a mint"),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithIdempotentHintAnnotation(true),
			pubkey("owner", "Wallet"),
			pubkey("mint", "Token mint"),
		)},
	}
}

func endpointFor(operation string) (httpx.Endpoint, bool) {
	for _, ep := range httpx.Endpoints() {
		if ep.Operation == operation {
			return ep, true
		}
	}
	return httpx.Endpoint{}, false
}

// handle runs the endpoint behind t with the call's arguments as its JSON body.
// Failures become tool errors carrying the public message; successes carry
// the JSON envelope as text.
func (s *Server) handle(t toolDef) mcpserver.ToolHandlerFunc {
	ep, ok := endpointFor(t.operation)
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !ok {
			return mcp.NewToolResultErrorf("unknown operation %s", t.operation), nil
		}
		start := time.Now()

		var reply httpx.Reply
		args, err := normalizeAmounts(req.GetArguments(), t.amounts)
		if err != nil {
			reply = httpx.Reply{Result: solix.Fail[struct{}](err), Err: err}
		} else {
			var body []byte
			if len(args) > 0 {
				body, err = json.Marshal(args)
				if err != nil {
					return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
				}
			}
			reply = ep.Invoke(s.config.Service, body)
		}

		outcome := metrics.OutcomeOK
		if reply.Err != nil {
			outcome = "internal"
			if code := solix.CodeOf(reply.Err); code != "" {
				outcome = string(code)
			}
		}
		s.config.Metrics.Observe(t.operation, outcome, time.Since(start))
		s.config.logger().Debug("tool call",
			"tool", t.tool.Name,
			"outcome", outcome,
		)

		if reply.Err != nil {
			return mcp.NewToolResultError(solix.PublicMessage(reply.Err)), nil
		}
		text, err := json.Marshal(reply.Result)
		if err != nil {
			return nil, err
		}
		return mcp.NewToolResultText(string(text)), nil
	}
}
