package main

import (
	"context"
	"fmt"

	"github.com/platfix/platfix/internal/shared"
	"github.com/urfave/cli/v3"
)

// APIGet makes a direct GET request to the movie API
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}
	useJSON := cmd.Bool("json")

	r.logger.Debug("GET request", "path", path)

	resp, err := r.api.Get(ctx, path, cmd.String("token"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, !useJSON)
	}

	return r.writePlain("%s\n", resp.Body)
}
