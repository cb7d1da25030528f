package main

import (
	"fmt"

	"github.com/fwojciec/sanakirja"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := sanakirja.LookupFilter{Limit: c.Limit}
	if c.Chat != 0 {
		filter.ChatID = &c.Chat
	}
	if c.Missing {
		found := false
		filter.Found = &found
	}

	lookups, err := deps.Lookups.FindLookups(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sanakirja.ErrorMessage(err))
		return err
	}

	if len(lookups) == 0 {
		fmt.Fprintln(deps.Stdout, "No lookups found.")
		return nil
	}

	for _, l := range lookups {
		outcome := "found"
		if !l.Found {
			outcome = "missing"
		}
		fmt.Fprintf(deps.Stdout, "%s  %d  %-8s %s\n", l.CreatedAt.Format("2006-01-02 15:04:05"), l.ChatID, outcome, l.Query)
	}
	return nil
}
