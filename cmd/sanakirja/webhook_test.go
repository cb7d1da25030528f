package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/sanakirja"
	main "github.com/fwojciec/sanakirja/cmd/sanakirja"
	"github.com/fwojciec/sanakirja/telegram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// webhookService is a WebhookService backed by functions.
type webhookService struct {
	SetWebhookFn     func(ctx context.Context, url string) error
	GetWebhookInfoFn func(ctx context.Context) (*telegram.WebhookInfo, error)
}

func (s *webhookService) SetWebhook(ctx context.Context, url string) error {
	return s.SetWebhookFn(ctx, url)
}

func (s *webhookService) GetWebhookInfo(ctx context.Context) (*telegram.WebhookInfo, error) {
	return s.GetWebhookInfoFn(ctx)
}

func TestWebhookCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("sets webhook to origin and secret path", func(t *testing.T) {
		t.Parallel()

		var got string
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Webhooks: &webhookService{
				SetWebhookFn: func(_ context.Context, url string) error {
					got = url
					return nil
				},
			},
		}

		err := (&main.WebhookCmd{Origin: "https://bot.example.com", SecretPath: "s3cret"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://bot.example.com/s3cret", got)
		assert.Equal(t, "Webhook set to https://bot.example.com\n", stdout.String())
		assert.NotContains(t, stdout.String(), "s3cret")
	})

	t.Run("requires origin and secret path", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr}

		err := (&main.WebhookCmd{Origin: "https://bot.example.com"}).Run(deps)

		assert.Equal(t, sanakirja.EINVALID, sanakirja.ErrorCode(err))
		assert.Contains(t, stderr.String(), "ORIGIN and SECRET_PATH are required")
	})

	t.Run("reports API errors", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Webhooks: &webhookService{
				SetWebhookFn: func(_ context.Context, _ string) error {
					return sanakirja.Errorf(sanakirja.EINVALID, "setWebhook: bad webhook (400)")
				},
			},
		}

		err := (&main.WebhookCmd{Origin: "https://bot.example.com", SecretPath: "s3cret"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "bad webhook")
	})

	t.Run("shows current webhook", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Webhooks: &webhookService{
				GetWebhookInfoFn: func(_ context.Context) (*telegram.WebhookInfo, error) {
					return &telegram.WebhookInfo{
						URL:                "https://bot.example.com/s3cret",
						PendingUpdateCount: 3,
						LastErrorMessage:   "Connection refused",
					}, nil
				},
			},
		}

		err := (&main.WebhookCmd{Info: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "URL: https://bot.example.com/s3cret\nPending updates: 3\nLast error: Connection refused\n", stdout.String())
	})

	t.Run("shows hint without webhook", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Webhooks: &webhookService{
				GetWebhookInfoFn: func(_ context.Context) (*telegram.WebhookInfo, error) {
					return &telegram.WebhookInfo{}, nil
				},
			},
		}

		err := (&main.WebhookCmd{Info: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No webhook set")
	})

	t.Run("reports info errors", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Webhooks: &webhookService{
				GetWebhookInfoFn: func(_ context.Context) (*telegram.WebhookInfo, error) {
					return nil, errors.New("connection reset")
				},
			},
		}

		err := (&main.WebhookCmd{Info: true}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: Internal error")
	})
}
