package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteQuotesAndTerminatesLines(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []string{"id", "name", "note"}, [][]string{
		{"1", "Classic Burger", "plain"},
		{"2", `Say "cheese"`, "a,b"},
		{"3", "multi\nline", ""},
	})
	require.NoError(t, err)

	want := "id,name,note\r\n" +
		"1,Classic Burger,plain\r\n" +
		`2,"Say ""cheese""","a,b"` + "\r\n" +
		"3,\"multi\nline\",\r\n"
	require.Equal(t, want, buf.String())
}

func TestWriteEmptyRowsProducesNoOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []string{"id", "name"}, nil))
	require.Zero(t, buf.Len(), "no rows means no header either")
}

func TestFilename(t *testing.T) {
	at := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	require.Equal(t, "sales_2024-03-15.csv", Filename("sales", at))
}
