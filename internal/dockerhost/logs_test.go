package dockerhost

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(streamType byte, payload string) []byte {
	header := make([]byte, frameHeaderSize)
	header[0] = streamType
	binary.BigEndian.PutUint32(header[4:8], uint32(len(payload)))
	return append(header, payload...)
}

func TestReadFrameParsesTimestampAndText(t *testing.T) {
	line := "2024-01-02T03:04:05.000000000Z hello world\n"
	buf := bytes.NewBuffer(frame(1, line))

	entry, err := readFrame(bufio.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, "hello world", entry.Text)
	assert.Equal(t, 2024, entry.Timestamp.Year())
}

func TestReadFrameFallsBackToNowWithoutTimestamp(t *testing.T) {
	buf := bytes.NewBuffer(frame(1, "no timestamp here\n"))
	entry, err := readFrame(bufio.NewReader(buf))
	require.NoError(t, err)
	assert.Equal(t, "no timestamp here\n", entry.Text)
}

func TestDemuxEntriesDrainsMultipleFrames(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(frame(1, "2024-01-02T03:04:05.000000000Z first\n"))
	buf.Write(frame(1, "2024-01-02T03:04:06.000000000Z second\n"))

	entries, err := demuxEntries(&buf)
	require.Error(t, err) // io.EOF once the stream is exhausted
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Text)
	assert.Equal(t, "second", entries[1].Text)
}
