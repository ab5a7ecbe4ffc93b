package main

import (
	"context"

	"github.com/platfix/platfix/internal/formatter"
	"github.com/platfix/platfix/internal/hydrate"
	"github.com/platfix/platfix/internal/session"
	"github.com/urfave/cli/v3"
)

// State hydrates the preloaded state for the session described by the flags and prints it.
//
// Without both --token and --id the result is the empty state, same as an anonymous page view.
func (r *Runner) State(ctx context.Context, cmd *cli.Command) error {
	sess := session.Session{
		Token:  cmd.String("token"),
		UserID: cmd.String("id"),
		Email:  cmd.String("email"),
		Name:   cmd.String("name"),
	}

	h := hydrate.New(r.service, r.config.API.HydrateTimeout.Duration, r.logger.WithPrefix("hydrate"))
	state := h.Hydrate(ctx, sess)

	format := cmd.String("format")
	if format == "" || format == formatter.FormatJSON {
		return r.writeJSON(state, cmd.Bool("pretty"))
	}

	data, err := formatter.Export(state, format)
	if err != nil {
		return err
	}
	_, err = r.output.Write(data)
	return err
}
