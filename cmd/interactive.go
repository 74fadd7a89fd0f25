package cmd

import (
	"context"
	"strconv"
	"strings"

	"github.com/zinc-sig/uploadgen/internal/runner"
	"github.com/zinc-sig/uploadgen/internal/upload"
)

// runInteractive shows the menu and uploads until the user opts out.
// Upload failures are reported and the loop continues.
func (a *app) runInteractive(ctx context.Context) error {
	a.screen.header()
	services := upload.Services()

	for {
		a.screen.menu(services)

		choice, err := a.prompter.Input("[❓] Enter your choice number:", "")
		if err != nil {
			return promptError(err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(choice))
		d, ok := upload.Lookup(upload.ServiceID(n))
		if err != nil || !ok {
			a.screen.problem("Invalid choice.")
			return errReported
		}

		a.screen.chosen(d)

		credential, err := a.credential(d)
		if err != nil {
			return err
		}

		path, size, err := a.filePath()
		if err != nil {
			return err
		}

		if _, err := a.upload(ctx, d, path, size, credential); err != nil {
			return err
		}

		again, err := a.prompter.Confirm("[🔄] Do you want to upload another file?", true)
		if err != nil {
			return promptError(err)
		}
		if !again {
			a.screen.info("Thank you for using UploadGen!")
			return nil
		}
	}
}

// filePath prompts until the answer names an existing regular file
func (a *app) filePath() (string, int64, error) {
	for {
		answer, err := a.prompter.Input("[📁] Type the file to upload:", "")
		if err != nil {
			return "", 0, promptError(err)
		}
		if path, size, err := runner.ValidateFile(strings.TrimSpace(answer)); err == nil {
			return path, size, nil
		}
		a.screen.problem("File not found! Please enter a valid file.")
	}
}
