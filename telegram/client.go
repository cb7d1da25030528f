// Package telegram implements the bot's messaging on the Telegram Bot API
// using go-telegram-bot-api.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/sanakirja"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// DefaultBaseURL is the Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// MaxMessageLength is the longest message text the API accepts, in characters.
const MaxMessageLength = 4096

// AllowedUpdates are the update kinds the webhook subscribes to.
var AllowedUpdates = []string{"message", "edited_message", "callback_query"}

var _ sanakirja.Messenger = (*Client)(nil)

// WebhookInfo describes the current webhook.
type WebhookInfo = tgbotapi.WebhookInfo

// Client calls Bot API methods for one bot token.
type Client struct {
	api *tgbotapi.BotAPI
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API server.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.api.SetAPIEndpoint(strings.TrimSuffix(u, "/") + "/bot%s/%s")
	}
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.api.Client = hc
	}
}

// NewClient creates a client for the bot with the given token. Unlike
// tgbotapi.NewBotAPI it makes no request.
func NewClient(token string, opts ...Option) *Client {
	api := &tgbotapi.BotAPI{
		Token:  token,
		Client: &http.Client{Timeout: 10 * time.Second},
		Buffer: 100,
	}
	api.SetAPIEndpoint(tgbotapi.APIEndpoint)

	c := &Client{api: api}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewMessage converts a reply into a sendMessage request. Text longer than
// MaxMessageLength is cut at the last line break that fits.
func NewMessage(reply *sanakirja.Reply) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(reply.ChatID, truncate(reply.Text, MaxMessageLength))
	if reply.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	if len(reply.Buttons) > 0 {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(reply.Buttons))
		for _, row := range reply.Buttons {
			buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
			for _, b := range row {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	return msg
}

// Send delivers a reply with sendMessage.
func (c *Client) Send(ctx context.Context, reply *sanakirja.Reply) error {
	if _, err := c.bot(ctx).Send(NewMessage(reply)); err != nil {
		return apiError(ctx, "sendMessage", err)
	}
	return nil
}

// AnswerCallback acknowledges a button press with answerCallbackQuery.
func (c *Client) AnswerCallback(ctx context.Context, callbackID string) error {
	if _, err := c.bot(ctx).Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return apiError(ctx, "answerCallbackQuery", err)
	}
	return nil
}

// SetWebhook asks Telegram to post updates to url.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	if url == "" {
		return sanakirja.Errorf(sanakirja.EINVALID, "webhook URL required")
	}
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return sanakirja.Errorf(sanakirja.EINVALID, "invalid webhook URL: %v", err)
	}
	wh.AllowedUpdates = AllowedUpdates

	if _, err := c.bot(ctx).Request(wh); err != nil {
		return apiError(ctx, "setWebhook", err)
	}
	return nil
}

// GetWebhookInfo returns the current webhook.
func (c *Client) GetWebhookInfo(ctx context.Context) (*WebhookInfo, error) {
	info, err := c.bot(ctx).GetWebhookInfo()
	if err != nil {
		return nil, apiError(ctx, "getWebhookInfo", err)
	}
	return &info, nil
}

// bot returns a copy of the API whose requests carry ctx.
func (c *Client) bot(ctx context.Context) *tgbotapi.BotAPI {
	api := *c.api
	api.Client = contextClient{ctx: ctx, next: c.api.Client}
	return &api
}

// contextClient attaches a context to requests built without one.
type contextClient struct {
	ctx  context.Context
	next tgbotapi.HTTPClient
}

func (c contextClient) Do(req *http.Request) (*http.Response, error) {
	return c.next.Do(req.WithContext(c.ctx))
}

// apiError maps API errors to error codes. Transport errors are replaced
// because their URL contains the bot token.
func apiError(ctx context.Context, method string, err error) error {
	var e *tgbotapi.Error
	if !errors.As(err, &e) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: request failed", method)
	}

	code := sanakirja.EINTERNAL
	switch e.Code {
	case http.StatusBadRequest:
		code = sanakirja.EINVALID
	case http.StatusNotFound:
		code = sanakirja.ENOTFOUND
	}
	return sanakirja.Errorf(code, "%s: %s (%d)", method, e.Message, e.Code)
}

// truncate shortens s to at most n characters, cutting after the last
// newline that fits so no Markdown entity is left open.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			s = s[:i]
			break
		}
		count++
	}
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[:i+1]
	}
	return s
}
