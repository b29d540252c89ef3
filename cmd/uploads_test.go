package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/sambbaron/tuneful/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintUploads(t *testing.T) {
	modified := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	objects := []storage.ObjectInfo{
		{Name: "a.mp3", Size: 10, LastModified: modified},
		{Name: "b.mp3", Size: 2048, LastModified: modified},
	}

	var out bytes.Buffer
	require.NoError(t, printUploads(&out, objects))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "NAME")
	assert.Contains(t, string(lines[1]), "a.mp3")
	assert.Contains(t, string(lines[2]), "2048")
	assert.Contains(t, string(lines[2]), "2024-05-01T12:00:00Z")
}

func TestPrintUploadStats(t *testing.T) {
	var out bytes.Buffer
	printUploadStats(&out, []storage.ObjectInfo{{Size: 3}, {Size: 4}})
	assert.Equal(t, "Files: 2\nTotal size: 7 bytes\n", out.String())
}
