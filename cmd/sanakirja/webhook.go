package main

import (
	"fmt"

	"github.com/fwojciec/sanakirja"
)

// Run executes the webhook command.
func (c *WebhookCmd) Run(deps *Dependencies) error {
	if c.Info {
		info, err := deps.Webhooks.GetWebhookInfo(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sanakirja.ErrorMessage(err))
			return err
		}
		if info.URL == "" {
			fmt.Fprintln(deps.Stdout, "No webhook set. Use 'sanakirja webhook' with ORIGIN and SECRET_PATH to set one.")
			return nil
		}
		fmt.Fprintf(deps.Stdout, "URL: %s\nPending updates: %d\n", info.URL, info.PendingUpdateCount)
		if info.LastErrorMessage != "" {
			fmt.Fprintf(deps.Stdout, "Last error: %s\n", info.LastErrorMessage)
		}
		return nil
	}

	if c.Origin == "" || c.SecretPath == "" {
		fmt.Fprintln(deps.Stderr, "error: ORIGIN and SECRET_PATH are required")
		return sanakirja.Errorf(sanakirja.EINVALID, "ORIGIN and SECRET_PATH are required")
	}

	if err := deps.Webhooks.SetWebhook(deps.Ctx, WebhookURL(c.Origin, c.SecretPath)); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sanakirja.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Webhook set to %s\n", c.Origin)
	return nil
}
