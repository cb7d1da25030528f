package sanakirja

import "context"

// ButtonsPerRow is the number of related-term buttons shown side by side.
const ButtonsPerRow = 4

// MaxButtonData is the largest payload a button can carry back.
const MaxButtonData = 64

// Button is an inline choice that starts a new lookup.
type Button struct {
	Text string
	Data string
}

// Reply is a message sent back to a chat.
type Reply struct {
	ChatID   int64
	Text     string
	Markdown bool
	Buttons  [][]Button
}

// ButtonRows lays out one button per reference in rows of at most size.
// References too long to be sent back as button data are left out.
func ButtonRows(refs []string, size int) [][]Button {
	if size <= 0 {
		size = ButtonsPerRow
	}
	var rows [][]Button
	var row []Button
	for _, ref := range refs {
		if ref == "" || len(ref) > MaxButtonData {
			continue
		}
		row = append(row, Button{Text: ref, Data: ref})
		if len(row) == size {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// NewArticleReply builds the reply that shows an article.
func NewArticleReply(chatID int64, a *Article) *Reply {
	return &Reply{
		ChatID:   chatID,
		Text:     a.Text(),
		Markdown: true,
		Buttons:  ButtonRows(a.Refs, ButtonsPerRow),
	}
}

// NewNotFoundReply builds the reply sent when no article matches a query.
func NewNotFoundReply(chatID int64, query string) *Reply {
	return &Reply{
		ChatID:   chatID,
		Text:     "*" + query + "*\nNo article found",
		Markdown: true,
	}
}

// Messenger delivers replies to chats.
type Messenger interface {
	// Send delivers a reply.
	Send(ctx context.Context, reply *Reply) error

	// AnswerCallback acknowledges a button press.
	AnswerCallback(ctx context.Context, callbackID string) error
}
