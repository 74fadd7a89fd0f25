package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/zinc-sig/uploadgen/internal/upload"
)

const (
	green = "\033[92m"
	reset = "\033[0m"
)

const header = `
 _   _       _                 _  ____
| | | |_ __ | | ___   __ _  __| |/ ___| ___ _ __
| | | | '_ \| |/ _ \ / _` + "`" + ` |/ _` + "`" + ` | |  _ / _ \ '_ \
| |_| | |_) | | (_) | (_| | (_| | |_| |  __/ | | |
 \___/| .__/|_|\___/ \__,_|\__,_|\____|\___|_| |_|
      |_|
`

// screen writes the user-facing status lines
type screen struct {
	w io.Writer
}

func (s *screen) header() {
	fmt.Fprintf(s.w, "%s%s\nVersion: %s\n%s\n", green, header, Version, reset)
}

func (s *screen) menu(services []upload.Descriptor) {
	fmt.Fprintln(s.w, "Choose the service to upload to:")
	for _, d := range services {
		fmt.Fprintf(s.w, "%d. %s\n", d.ID, d.MenuLabel())
	}
	fmt.Fprintln(s.w)
}

// chosen prints the destination banner followed by the "You chose" block
func (s *screen) chosen(d upload.Descriptor) {
	if d.Banner != "" {
		fmt.Fprintf(s.w, "%s%s%s\n", green, d.Banner, reset)
	}
	fmt.Fprintf(s.w, "[🛈] You chose:\n[%d] %s\n", d.ID, d.MenuLabel())
	if d.Note != "" {
		fmt.Fprintf(s.w, "[🛈] %s\n", d.Note)
	}
	fmt.Fprintln(s.w)
}

func (s *screen) uploading(path string, size int64, d upload.Descriptor) {
	fmt.Fprintf(s.w, "[⌛] Uploading %s (%s) to %s . . .\n", path, humanize.IBytes(uint64(size)), d.Name)
}

func (s *screen) uploaded(url string) {
	fmt.Fprintln(s.w, "[✔️] File uploaded successfully!")
	fmt.Fprintf(s.w, "[🔗] Your file URL: %s\n\n", url)
}

func (s *screen) failed(err error) {
	fmt.Fprintf(s.w, "[❌] %s\n\n", failureMessage(err))
}

func (s *screen) problem(msg string) {
	fmt.Fprintf(s.w, "[❌] %s\n", msg)
}

func (s *screen) info(msg string) {
	fmt.Fprintf(s.w, "[✔️] %s\n", msg)
}

func failureMessage(err error) string {
	var uerr *upload.Error
	if !errors.As(err, &uerr) {
		return "An unknown error occurred: " + err.Error()
	}

	msg := uerr.Detail
	switch {
	case uerr.Err != nil && msg == "":
		msg = uerr.Err.Error()
	case uerr.Err != nil:
		msg += ": " + uerr.Err.Error()
	}
	if uerr.Kind == upload.KindNetwork {
		msg = "Failed to upload file: " + msg
	}
	return msg
}
