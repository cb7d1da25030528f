package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/sanakirja"
)

// Run executes the prune command.
func (c *PruneCmd) Run(deps *Dependencies, cli *CLI) error {
	age := c.OlderThan
	if age <= 0 {
		age = cli.CacheTTL
	}

	n, err := deps.Pages.DeleteExpiredPages(deps.Ctx, time.Now().Add(-age))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sanakirja.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %d cached pages older than %s\n", n, age)
	return nil
}
