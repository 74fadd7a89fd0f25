package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/zinc-sig/uploadgen/cmd/helpers"
	"github.com/zinc-sig/uploadgen/internal/runner"
	"github.com/zinc-sig/uploadgen/internal/upload"
)

// runSingle uploads --file to --service once. Any failure exits non-zero.
func (a *app) runSingle(ctx context.Context) error {
	id, err := helpers.ParseService(a.opts.upload.Service)
	if err != nil {
		return err
	}
	d, _ := upload.Lookup(id)

	path, size, err := runner.ValidateFile(a.opts.upload.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			a.screen.problem("File not found!")
			return errReported
		}
		return err
	}

	a.screen.chosen(d)

	credential, err := a.credential(d)
	if err != nil {
		return err
	}

	ok, err := a.upload(ctx, d, path, size, credential)
	if err != nil {
		return err
	}
	if !ok {
		return errReported
	}
	return nil
}
