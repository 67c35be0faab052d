package dockerhost

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/dtop/dtop/internal/core"
	"github.com/dtop/dtop/internal/crashlog"
)

// frameHeaderSize is the 8-byte docker log-stream frame header: 1 byte
// stream type, 3 reserved, 4 byte big-endian payload length.
const frameHeaderSize = 8

// TailOlder fetches one page of history ending just before beforeUnix,
// oldest entry first, for the log view's scroll-to-top pagination trigger.
// It keeps the teacher's hand-rolled frame reader for this path rather than
// stdcopy.StdCopy: StdCopy's blocking io.Copy loop doesn't give a clean way
// to cap how many frames it reads before the caller wants to stop, which a
// bounded history page needs.
func TailOlder(ctx context.Context, conn Connection, key core.ContainerKey, beforeUnix int64, pageSize int) ([]core.LogEntry, bool, error) {
	reader, err := conn.Client.ContainerLogs(ctx, key.ContainerID, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Until:      fmt.Sprintf("%d", beforeUnix),
		Tail:       fmt.Sprintf("%d", pageSize),
		Timestamps: true,
	})
	if err != nil {
		return nil, false, fmt.Errorf("fetching log history: %w", err)
	}
	defer reader.Close()

	entries, err := demuxEntries(reader)
	if err != nil && err != io.EOF {
		return nil, false, err
	}
	hasMore := len(entries) >= pageSize
	return entries, hasMore, nil
}

// Follow streams new log lines for a container, publishing a LogLineEvent
// per line until ctx is cancelled or the stream breaks. It is grounded on
// the teacher's LogBroker.streamContainer loop: a 5-second liveness check
// between reconnect attempts so a dead container doesn't spin a tight
// retry loop, and the same first-iteration fast path so startup isn't
// delayed by an extra tick.
func Follow(ctx context.Context, conn Connection, key core.ContainerKey, sinceUnix int64, bus chan<- core.AppEvent) {
	defer crashlog.Recover(fmt.Sprintf("dockerhost.Follow(%s)", key.ContainerID))

	first := true
	for {
		if ctx.Err() != nil {
			return
		}
		if !first {
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
		}
		first = false

		reader, err := conn.Client.ContainerLogs(ctx, key.ContainerID, container.LogsOptions{
			ShowStdout: true,
			ShowStderr: true,
			Follow:     true,
			Since:      fmt.Sprintf("%d", sinceUnix),
			Timestamps: true,
		})
		if err != nil {
			continue
		}

		streamFollow(ctx, reader, key, bus)
		reader.Close()
		sinceUnix = time.Now().Unix()
	}
}

func streamFollow(ctx context.Context, r io.Reader, key core.ContainerKey, bus chan<- core.AppEvent) {
	br := bufio.NewReaderSize(r, 64*1024)
	for {
		entry, err := readFrame(br)
		if err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		case bus <- core.LogLineEvent{Key: key, Entry: entry}:
		default:
		}
	}
}

// demuxEntries drains every frame currently buffered in r into a batch,
// oldest-first.
func demuxEntries(r io.Reader) ([]core.LogEntry, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	var entries []core.LogEntry
	for {
		entry, err := readFrame(br)
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
}

// readFrame reads one multiplexed stdout/stderr frame and parses its
// leading RFC3339Nano timestamp (present because every call above asks for
// Timestamps: true), matching the "<ts> <text>" format the engine emits.
func readFrame(br *bufio.Reader) (core.LogEntry, error) {
	header := make([]byte, frameHeaderSize)
	if _, err := io.ReadFull(br, header); err != nil {
		return core.LogEntry{}, err
	}
	size := binary.BigEndian.Uint32(header[4:8])

	payload := make([]byte, size)
	if _, err := io.ReadFull(br, payload); err != nil {
		return core.LogEntry{}, err
	}

	return parseTimestampedLine(string(payload)), nil
}

// parseTimestampedLine splits the engine's "<RFC3339Nano> <message>"
// framing; a line with no parseable timestamp (shouldn't happen given
// Timestamps: true, but defends against a malformed stream) keeps now() so
// it still sorts sensibly rather than being dropped.
func parseTimestampedLine(raw string) core.LogEntry {
	for i := 0; i < len(raw); i++ {
		if raw[i] == ' ' {
			if ts, err := time.Parse(time.RFC3339Nano, raw[:i]); err == nil {
				text := raw[i+1:]
				for len(text) > 0 && (text[len(text)-1] == '\n' || text[len(text)-1] == '\r') {
					text = text[:len(text)-1]
				}
				return core.LogEntry{Timestamp: ts, Text: text}
			}
			break
		}
	}
	return core.LogEntry{Timestamp: time.Now(), Text: raw}
}
