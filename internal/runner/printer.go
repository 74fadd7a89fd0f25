package runner

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/zinc-sig/uploadgen/internal/upload"
)

// PrintPreUpload prints upload details before the request is sent
func PrintPreUpload(w io.Writer, config *Config, size int64) {
	name := config.Service.String()
	if d, ok := upload.Lookup(config.Service); ok {
		name = d.Name
	}

	fmt.Fprintln(w, "========================================")
	fmt.Fprintln(w, "UploadGen Upload Details")
	fmt.Fprintln(w, "========================================")
	fmt.Fprintf(w, "Service: %s\n", name)
	fmt.Fprintf(w, "File:    %s\n", config.FilePath)
	fmt.Fprintf(w, "Size:    %s\n", humanize.IBytes(uint64(size)))
	if config.Timeout > 0 {
		fmt.Fprintf(w, "Timeout: %s\n", config.Timeout)
	}
	fmt.Fprintln(w, "----------------------------------------")
}

// PrintPostUpload prints the outcome after the upload returns
func PrintPostUpload(w io.Writer, result *Result) {
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, "Upload Results:")
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintf(w, "Upload ID:      %s\n", result.ID)
	fmt.Fprintf(w, "Status:         %s\n", result.Status)
	if result.Err != nil {
		fmt.Fprintf(w, "Error Kind:     %s\n", upload.KindOf(result.Err))
	}
	fmt.Fprintf(w, "Execution Time: %d ms\n", result.ExecutionTime)
	fmt.Fprintln(w, "========================================")
}
