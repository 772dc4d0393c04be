// Package export renders flat record sequences as RFC4180 delimited text.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// Write emits one header line followed by one line per row, quoting fields
// that contain the delimiter, quote character, or newline. An empty row set
// produces no output at all, header included.
func Write(w io.Writer, header []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Filename builds a dated attachment name, e.g. "products_2024-03-15.csv".
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format("2006-01-02"))
}
