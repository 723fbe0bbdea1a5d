package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aaearon/check-secunet/internal/config"
	"github.com/aaearon/check-secunet/internal/konnektor"
	"github.com/aaearon/check-secunet/internal/metrics"
)

// writeResult prints a query result in the requested output format.
func writeResult(w io.Writer, format string, key konnektor.Key, result any) error {
	switch format {
	case "", config.OutputJSON:
		return writeJSON(w, result)
	case config.OutputPrometheus:
		return metrics.Write(w, string(key), key.IDField(), result)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// writeJSON encodes data as a single-line JSON document to the given writer.
func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}
