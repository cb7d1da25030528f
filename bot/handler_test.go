package bot_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/sanakirja"
	"github.com/fwojciec/sanakirja/bot"
	"github.com/fwojciec/sanakirja/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taloDictionary() *mock.Dictionary {
	return &mock.Dictionary{
		LookupFn: func(ctx context.Context, query string) (*sanakirja.Article, error) {
			if query != "talo" {
				return nil, sanakirja.Errorf(sanakirja.ENOTFOUND, "no article")
			}
			return &sanakirja.Article{
				Query:   "talo",
				Link:    "https://en.wiktionary.org/wiki/talo",
				Content: "\n_Noun_\nhouse\n",
				Refs:    []string{"house", "koti"},
			}, nil
		},
	}
}

// recorder collects what a handler sends.
type recorder struct {
	replies   []*sanakirja.Reply
	callbacks []string
	lookups   []*sanakirja.Lookup
}

func (r *recorder) messenger() *mock.Messenger {
	return &mock.Messenger{
		SendFn: func(ctx context.Context, reply *sanakirja.Reply) error {
			r.replies = append(r.replies, reply)
			return nil
		},
		AnswerCallbackFn: func(ctx context.Context, id string) error {
			r.callbacks = append(r.callbacks, id)
			return nil
		},
	}
}

func (r *recorder) lookupService() *mock.LookupService {
	return &mock.LookupService{
		CreateLookupFn: func(ctx context.Context, l *sanakirja.Lookup) error {
			r.lookups = append(r.lookups, l)
			return nil
		},
	}
}

func TestHandler_HandleRequest(t *testing.T) {
	t.Parallel()

	t.Run("replies with article and buttons", func(t *testing.T) {
		t.Parallel()

		var rec recorder
		h := bot.NewHandler(taloDictionary(), rec.messenger())

		err := h.HandleRequest(context.Background(), sanakirja.Request{ChatID: 42, Query: "talo"})

		require.NoError(t, err)
		require.Len(t, rec.replies, 1)
		assert.Equal(t, &sanakirja.Reply{
			ChatID:   42,
			Text:     "*talo*\n\n_Noun_\nhouse\nhttps://en.wiktionary.org/wiki/talo\n",
			Markdown: true,
			Buttons: [][]sanakirja.Button{
				{{Text: "house", Data: "house"}, {Text: "koti", Data: "koti"}},
			},
		}, rec.replies[0])
		assert.Empty(t, rec.callbacks)
	})

	t.Run("replies not found for unknown words", func(t *testing.T) {
		t.Parallel()

		var rec recorder
		h := bot.NewHandler(taloDictionary(), rec.messenger())

		err := h.HandleRequest(context.Background(), sanakirja.Request{ChatID: 42, Query: "xyzzy"})

		require.NoError(t, err)
		require.Len(t, rec.replies, 1)
		assert.Equal(t, "*xyzzy*\nNo article found", rec.replies[0].Text)
		assert.Empty(t, rec.replies[0].Buttons)
	})

	t.Run("acknowledges button presses", func(t *testing.T) {
		t.Parallel()

		var rec recorder
		h := bot.NewHandler(taloDictionary(), rec.messenger())

		err := h.HandleRequest(context.Background(), sanakirja.Request{ChatID: 99, Query: "talo", CallbackID: "cb1"})

		require.NoError(t, err)
		assert.Equal(t, []string{"cb1"}, rec.callbacks)
		require.Len(t, rec.replies, 1)
		assert.Equal(t, int64(99), rec.replies[0].ChatID)
	})

	t.Run("records lookups", func(t *testing.T) {
		t.Parallel()

		var rec recorder
		h := bot.NewHandler(taloDictionary(), rec.messenger())
		h.Lookups = rec.lookupService()

		require.NoError(t, h.HandleRequest(context.Background(), sanakirja.Request{ChatID: 1, Query: "talo"}))
		require.NoError(t, h.HandleRequest(context.Background(), sanakirja.Request{ChatID: 1, Query: "xyzzy"}))

		require.Len(t, rec.lookups, 2)
		assert.Equal(t, "talo", rec.lookups[0].Query)
		assert.True(t, rec.lookups[0].Found)
		assert.Equal(t, "xyzzy", rec.lookups[1].Query)
		assert.False(t, rec.lookups[1].Found)
	})

	t.Run("sends nothing when lookup fails", func(t *testing.T) {
		t.Parallel()

		var rec recorder
		dict := &mock.Dictionary{
			LookupFn: func(ctx context.Context, query string) (*sanakirja.Article, error) {
				return nil, errors.New("connection reset")
			},
		}
		h := bot.NewHandler(dict, rec.messenger())

		err := h.HandleRequest(context.Background(), sanakirja.Request{ChatID: 1, Query: "talo"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
		assert.Empty(t, rec.replies)
	})

	t.Run("still replies when recording fails", func(t *testing.T) {
		t.Parallel()

		var rec recorder
		h := bot.NewHandler(taloDictionary(), rec.messenger())
		h.Lookups = &mock.LookupService{
			CreateLookupFn: func(ctx context.Context, l *sanakirja.Lookup) error {
				return errors.New("disk full")
			},
		}

		err := h.HandleRequest(context.Background(), sanakirja.Request{ChatID: 1, Query: "talo"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "record lookup")
		assert.Len(t, rec.replies, 1)
	})

	t.Run("still replies when acknowledging fails", func(t *testing.T) {
		t.Parallel()

		var rec recorder
		m := rec.messenger()
		m.AnswerCallbackFn = func(ctx context.Context, id string) error {
			return errors.New("query is too old")
		}
		h := bot.NewHandler(taloDictionary(), m)

		err := h.HandleRequest(context.Background(), sanakirja.Request{ChatID: 1, Query: "talo", CallbackID: "cb1"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "answer callback")
		assert.Len(t, rec.replies, 1)
	})

	t.Run("returns send errors", func(t *testing.T) {
		t.Parallel()

		m := &mock.Messenger{
			SendFn: func(ctx context.Context, reply *sanakirja.Reply) error {
				return sanakirja.Errorf(sanakirja.EINVALID, "can't parse entities")
			},
		}
		h := bot.NewHandler(taloDictionary(), m)

		err := h.HandleRequest(context.Background(), sanakirja.Request{ChatID: 1, Query: "talo"})

		assert.Equal(t, sanakirja.EINVALID, sanakirja.ErrorCode(err))
	})
}
