package dockerhost

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/dtop/dtop/internal/core"
	"golang.org/x/term"
)

// shellCommand lists the candidate shells in order. The engine creates an
// exec without checking that its binary exists, so /bin/bash is used
// whenever exec creation succeeds; the image is not probed for it.
var shellCommand = [][]string{{"/bin/bash"}, {"/bin/sh"}}

// RunShell attaches an interactive TTY session to a container, putting the
// calling terminal into raw mode for the duration and restoring it
// afterward. It runs inside a tea.Exec command, which already suspends
// bubbletea's own input reader, so raw mode here doesn't fight the TUI for
// stdin.
func RunShell(ctx context.Context, conn Connection, key core.ContainerKey) error {
	fd := int(os.Stdin.Fd())
	prevState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("entering raw terminal mode: %w", err)
	}
	defer term.Restore(fd, prevState)

	execID, err := createExec(ctx, conn, key.ContainerID)
	if err != nil {
		return err
	}

	attach, err := conn.Client.ContainerExecAttach(ctx, execID, container.ExecAttachOptions{Tty: true})
	if err != nil {
		return fmt.Errorf("attaching to shell: %w", err)
	}
	defer attach.Close()

	if w, h, err := term.GetSize(fd); err == nil {
		_ = conn.Client.ContainerExecResize(ctx, execID, container.ResizeOptions{Width: uint(w), Height: uint(h)})
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = io.Copy(os.Stdout, attach.Reader)
	}()
	go func() {
		_, _ = io.Copy(attach.Conn, os.Stdin)
	}()

	<-done
	return nil
}

// createExec tries each candidate shell in turn, returning the first exec
// the engine creates; a later candidate is tried only when creation itself
// fails.
func createExec(ctx context.Context, conn Connection, containerID string) (string, error) {
	var lastErr error
	for _, cmd := range shellCommand {
		resp, err := conn.Client.ContainerExecCreate(ctx, containerID, container.ExecOptions{
			Cmd:          cmd,
			AttachStdin:  true,
			AttachStdout: true,
			AttachStderr: true,
			Tty:          true,
		})
		if err == nil {
			return resp.ID, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("no usable shell found in container: %w", lastErr)
}

// CaptureExecOutput runs a one-shot (non-TTY) command and demultiplexes its
// stdout/stderr with stdcopy — a clean fit here, unlike the log tail path,
// because a one-shot capture has no pagination or cancellation pressure to
// compose with.
func CaptureExecOutput(ctx context.Context, conn Connection, containerID string, cmd []string) (stdout, stderr string, err error) {
	resp, err := conn.Client.ContainerExecCreate(ctx, containerID, container.ExecOptions{
		Cmd:          cmd,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return "", "", fmt.Errorf("creating exec: %w", err)
	}

	attach, err := conn.Client.ContainerExecAttach(ctx, resp.ID, container.ExecAttachOptions{})
	if err != nil {
		return "", "", fmt.Errorf("attaching to exec: %w", err)
	}
	defer attach.Close()

	var outBuf, errBuf strings.Builder
	if _, err := stdcopy.StdCopy(&outBuf, &errBuf, attach.Reader); err != nil && err != io.EOF {
		return "", "", fmt.Errorf("demuxing exec output: %w", err)
	}
	return outBuf.String(), errBuf.String(), nil
}
