// Package bot answers lookup requests by replying with dictionary articles.
package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/sanakirja"
)

var _ sanakirja.RequestHandler = (*Handler)(nil)

// Handler looks up requested words and sends the article, or a not-found
// notice, back to the chat.
type Handler struct {
	dictionary sanakirja.Dictionary
	messenger  sanakirja.Messenger

	// Lookups, if set, records every answered request.
	Lookups sanakirja.LookupService
}

// NewHandler creates a Handler.
func NewHandler(dictionary sanakirja.Dictionary, messenger sanakirja.Messenger) *Handler {
	return &Handler{dictionary: dictionary, messenger: messenger}
}

// HandleRequest answers req. Button presses are acknowledged first. Failing
// to acknowledge or record does not stop the reply; those errors are
// returned together with any send error.
func (h *Handler) HandleRequest(ctx context.Context, req sanakirja.Request) error {
	var errs []error

	if req.CallbackID != "" {
		if err := h.messenger.AnswerCallback(ctx, req.CallbackID); err != nil {
			errs = append(errs, fmt.Errorf("answer callback: %w", err))
		}
	}

	reply, found, err := h.reply(ctx, req)
	if err != nil {
		return errors.Join(append(errs, err)...)
	}

	if h.Lookups != nil {
		lookup := &sanakirja.Lookup{ChatID: req.ChatID, Query: req.Query, Found: found}
		if err := h.Lookups.CreateLookup(ctx, lookup); err != nil {
			errs = append(errs, fmt.Errorf("record lookup: %w", err))
		}
	}

	if err := h.messenger.Send(ctx, reply); err != nil {
		errs = append(errs, fmt.Errorf("send reply: %w", err))
	}
	return errors.Join(errs...)
}

func (h *Handler) reply(ctx context.Context, req sanakirja.Request) (*sanakirja.Reply, bool, error) {
	article, err := h.dictionary.Lookup(ctx, req.Query)
	switch {
	case err == nil:
		return sanakirja.NewArticleReply(req.ChatID, article), true, nil
	case sanakirja.ErrorCode(err) == sanakirja.ENOTFOUND:
		return sanakirja.NewNotFoundReply(req.ChatID, req.Query), false, nil
	default:
		return nil, false, fmt.Errorf("lookup %q: %w", req.Query, err)
	}
}
