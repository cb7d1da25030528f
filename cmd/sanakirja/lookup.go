package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/sanakirja"
)

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	query, _ := sanakirja.ParseQuery(c.Word, false)
	if strings.TrimSpace(query) == "" {
		fmt.Fprintln(deps.Stderr, "error: word required")
		return sanakirja.Errorf(sanakirja.EINVALID, "word required")
	}

	article, err := deps.Dictionary.Lookup(deps.Ctx, query)
	if sanakirja.ErrorCode(err) == sanakirja.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "No article found for %q\n", query)
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sanakirja.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(article)
	}

	fmt.Fprint(deps.Stdout, article.Text())
	if len(article.Refs) > 0 {
		fmt.Fprintf(deps.Stdout, "\nSee also: %s\n", strings.Join(article.Refs, ", "))
	}
	return nil
}
