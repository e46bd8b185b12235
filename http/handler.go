package http

import (
	"github.com/mark3labs/solix"
	"github.com/mark3labs/solix/http/internal/helpers"
	"github.com/mark3labs/solix/service"
)

// Reply is the outcome of one endpoint invocation. Result marshals to the
// response envelope; Err is nil on success.
type Reply struct {
	Result any
	Err    error
}

// Endpoint binds one POST route to a service operation.
type Endpoint struct {
	// Path is the route path (e.g., "/send/sol").
	Path string

	// Operation is the service operation name used for logs and metrics.
	Operation string

	// Invoke decodes the raw JSON body and runs the operation.
	Invoke func(svc *service.Service, body []byte) Reply
}

func withBody[Req, Resp any](path, op string, run func(*service.Service, Req) solix.Result[Resp]) Endpoint {
	return Endpoint{
		Path:      path,
		Operation: op,
		Invoke: func(svc *service.Service, body []byte) Reply {
			var req Req
			if err := helpers.DecodeJSON(body, &req); err != nil {
				return Reply{Result: solix.Fail[Resp](err), Err: err}
			}
			res := run(svc, req)
			return Reply{Result: res, Err: res.Err}
		},
	}
}

func withoutBody[Resp any](path, op string, run func(*service.Service) solix.Result[Resp]) Endpoint {
	return Endpoint{
		Path:      path,
		Operation: op,
		Invoke: func(svc *service.Service, _ []byte) Reply {
			res := run(svc)
			return Reply{Result: res, Err: res.Err}
		},
	}
}

// Endpoints returns every solix POST route in a stable order.
func Endpoints() []Endpoint {
	return []Endpoint{
		withoutBody("/keypair", service.OpGenerateKeypair, (*service.Service).GenerateKeypair),
		withoutBody("/keypair/mnemonic", service.OpMnemonicKeypair, (*service.Service).GenerateMnemonicKeypair),
		withBody("/keypair/recover", service.OpRecoverKeypair, (*service.Service).RecoverKeypair),
		withBody("/message/sign", service.OpSignMessage, (*service.Service).SignMessage),
		withBody("/message/verify", service.OpVerifyMessage, (*service.Service).VerifyMessage),
		withBody("/send/sol", service.OpSendSol, (*service.Service).SendSol),
		withBody("/send/token", service.OpSendToken, (*service.Service).SendToken),
		withBody("/token/create", service.OpCreateToken, (*service.Service).CreateToken),
		withBody("/token/mint", service.OpMintToken, (*service.Service).MintToken),
		withBody("/token/associated-account", service.OpAssociatedAccount, (*service.Service).AssociatedAccount),
	}
}
