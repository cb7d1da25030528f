package telegram

import (
	"encoding/json"

	"github.com/fwojciec/sanakirja"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var _ sanakirja.UpdateDecoder = (*UpdateDecoder)(nil)

// UpdateDecoder decodes webhook payloads into lookup requests.
type UpdateDecoder struct{}

// DecodeUpdate parses an update. Button presses look up the button data and
// are answered in the private chat of the user who pressed. Messages and
// edited messages are parsed with sanakirja.ParseQuery.
func (UpdateDecoder) DecodeUpdate(data []byte) (sanakirja.Request, bool, error) {
	var u tgbotapi.Update
	if err := json.Unmarshal(data, &u); err != nil {
		return sanakirja.Request{}, false, sanakirja.Errorf(sanakirja.EINVALID, "invalid update: %v", err)
	}
	req, ok := NewRequest(&u)
	return req, ok, nil
}

// NewRequest returns the lookup an update asks for, if any.
func NewRequest(u *tgbotapi.Update) (sanakirja.Request, bool) {
	if q := u.CallbackQuery; q != nil {
		if q.Data == "" || q.From == nil {
			return sanakirja.Request{}, false
		}
		return sanakirja.Request{
			ChatID:     q.From.ID,
			Query:      q.Data,
			CallbackID: q.ID,
		}, true
	}

	m := u.Message
	if m == nil {
		m = u.EditedMessage
	}
	if m == nil || m.Chat == nil || m.Text == "" {
		return sanakirja.Request{}, false
	}

	query, ok := sanakirja.ParseQuery(m.Text, isGroup(m.Chat))
	if !ok || query == "" {
		return sanakirja.Request{}, false
	}
	return sanakirja.Request{ChatID: m.Chat.ID, Query: query}, true
}

// isGroup reports whether the chat has more members than the bot and one user.
func isGroup(c *tgbotapi.Chat) bool {
	return c.IsGroup() || c.IsSuperGroup()
}
