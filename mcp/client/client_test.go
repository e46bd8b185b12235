package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"slices"
	"testing"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/solix"
	"github.com/mark3labs/solix/mcp/server"
	"github.com/mark3labs/solix/service"
)

const (
	walletA = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
	usdc    = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

func newSolixServer(t *testing.T) *server.Server {
	t.Helper()
	svc, err := service.New()
	if err != nil {
		t.Fatalf("service.New: %v", err)
	}
	s, err := server.NewServer("solix", "test", &server.Config{
		Service: svc,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func newInProcess(t *testing.T) *Client {
	t.Helper()
	inner, err := mcpclient.NewInProcessClient(newSolixServer(t).GetMCPServer())
	if err != nil {
		t.Fatalf("NewInProcessClient: %v", err)
	}
	c, err := New(context.Background(), inner)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestTools(t *testing.T) {
	c := newInProcess(t)
	names, err := c.Tools(context.Background())
	if err != nil {
		t.Fatalf("Tools: %v", err)
	}
	for _, want := range []string{service.OpSendSol, service.OpAssociatedAccount, service.OpGenerateKeypair} {
		if !slices.Contains(names, want) {
			t.Errorf("tool %s missing from %v", want, names)
		}
	}
}

func TestInvoke(t *testing.T) {
	c := newInProcess(t)
	ctx := context.Background()

	ata, err := Invoke[solix.AssociatedAccountResponse](ctx, c, service.OpAssociatedAccount, map[string]any{
		"owner": walletA,
		"mint":  usdc,
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if ata.Address == "" {
		t.Error("expected an address")
	}

	_, err = c.Call(ctx, service.OpAssociatedAccount, map[string]any{"owner": walletA})
	var toolErr *ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *ToolError, got %v", err)
	}
	if toolErr.Message != "Missing required fields: mint" {
		t.Errorf("message = %q", toolErr.Message)
	}
	if !errors.Is(err, ErrToolFailed) {
		t.Error("ToolError should match ErrToolFailed")
	}
}

func TestDial(t *testing.T) {
	ts := httptest.NewServer(newSolixServer(t).Handler())
	defer ts.Close()

	ctx := context.Background()
	c, err := Dial(ctx, ts.URL)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer func() { _ = c.Close() }()

	kp, err := Invoke[solix.KeypairResponse](ctx, c, service.OpGenerateKeypair, nil)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if kp.Pubkey == "" || kp.Secret == "" {
		t.Errorf("incomplete keypair %+v", kp)
	}
}
