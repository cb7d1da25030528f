package mock

import (
	"context"

	"github.com/fwojciec/sanakirja"
)

// Compile-time interface verification.
var (
	_ sanakirja.Messenger      = (*Messenger)(nil)
	_ sanakirja.RequestHandler = (*RequestHandler)(nil)
	_ sanakirja.UpdateDecoder  = (*UpdateDecoder)(nil)
)

// Messenger is a mock implementation of sanakirja.Messenger.
type Messenger struct {
	SendFn           func(ctx context.Context, reply *sanakirja.Reply) error
	AnswerCallbackFn func(ctx context.Context, callbackID string) error
}

func (m *Messenger) Send(ctx context.Context, reply *sanakirja.Reply) error {
	return m.SendFn(ctx, reply)
}

func (m *Messenger) AnswerCallback(ctx context.Context, callbackID string) error {
	return m.AnswerCallbackFn(ctx, callbackID)
}

// RequestHandler is a mock implementation of sanakirja.RequestHandler.
type RequestHandler struct {
	HandleRequestFn func(ctx context.Context, req sanakirja.Request) error
}

func (h *RequestHandler) HandleRequest(ctx context.Context, req sanakirja.Request) error {
	return h.HandleRequestFn(ctx, req)
}

// UpdateDecoder is a mock implementation of sanakirja.UpdateDecoder.
type UpdateDecoder struct {
	DecodeUpdateFn func(data []byte) (sanakirja.Request, bool, error)
}

func (d *UpdateDecoder) DecodeUpdate(data []byte) (sanakirja.Request, bool, error) {
	return d.DecodeUpdateFn(data)
}
