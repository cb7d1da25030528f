package sanakirja

import (
	"context"
	"strings"
)

// Command prefixes accepted in group chats.
const (
	wordCommand   = "/w "
	commandPrefix = "/"
)

// Request is a lookup asked for by a chat user.
type Request struct {
	ChatID int64
	Query  string

	// CallbackID identifies the button press that produced the request, if any.
	CallbackID string
}

// ParseQuery normalizes message text into a lookup query. Group chats only
// answer messages addressed to the bot with "/w word" or "/word"; private
// chats accept any text. Returns false when the message is not a query.
func ParseQuery(text string, group bool) (string, bool) {
	text = strings.ToLower(text)
	if group {
		if q, ok := strings.CutPrefix(text, wordCommand); ok {
			return q, true
		}
		if q, ok := strings.CutPrefix(text, commandPrefix); ok {
			return q, true
		}
		return "", false
	}
	return strings.TrimLeft(text, commandPrefix), true
}

// RequestHandler answers lookup requests.
type RequestHandler interface {
	// HandleRequest looks up the query and sends the reply to the chat.
	HandleRequest(ctx context.Context, req Request) error
}

// UpdateDecoder turns a webhook payload into a lookup request.
type UpdateDecoder interface {
	// DecodeUpdate returns false when the update carries no query, such as
	// a photo or a group message not addressed to the bot.
	// Returns EINVALID if the payload is malformed.
	DecodeUpdate(data []byte) (Request, bool, error)
}
