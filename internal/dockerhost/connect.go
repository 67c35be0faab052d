package dockerhost

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/docker/client"
	"github.com/dtop/dtop/internal/core"
	"golang.org/x/sync/errgroup"
)

// HostConfig is one entry of the configured fleet: a connection spec plus
// the optional container-list filters scoped to that host.
type HostConfig struct {
	Spec    string
	Filters map[string][]string
}

// Connection is an established, pinged engine client ready to back a
// container manager.
type Connection struct {
	HostID  core.HostID
	Client  *client.Client
	Filters map[string][]string
}

// connectTimeout bounds a single host's Docker ping; an SSH dial has its
// own sshDialTimeout.
const connectTimeout = 10 * time.Second

// firstHostTimeout bounds how long EstablishConnections waits for at least
// one host to come up before giving the caller something to render.
const firstHostTimeout = 30 * time.Second

// connectDocker dials the engine named by hostSpec, dispatching on its
// scheme: "local" for the default local socket, "ssh://" for a tunneled
// connection, "tls://" for a cert-verified TCP connection, "tcp://" for a
// plain TCP connection.
func connectDocker(hostSpec string) (*client.Client, error) {
	switch {
	case hostSpec == "local":
		return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	case hasScheme(hostSpec, "ssh://"):
		return dialSSH(hostSpec)
	case hasScheme(hostSpec, "tls://"):
		return dialTLS(hostSpec)
	case hasScheme(hostSpec, "tcp://"):
		return client.NewClientWithOpts(
			client.WithHost(hostSpec),
			client.WithAPIVersionNegotiation(),
		)
	default:
		return nil, fmt.Errorf("invalid host format: %q. use 'local', 'ssh://user@host[:port]', 'tcp://host:port', or 'tls://host:port'", hostSpec)
	}
}

func hasScheme(spec, scheme string) bool {
	return len(spec) >= len(scheme) && spec[:len(scheme)] == scheme
}

// connectAndVerifyHost dials a host and confirms reachability with a
// bounded ping before handing a Connection, carrying the host's filters,
// back to the caller.
func connectAndVerifyHost(cfg HostConfig) (Connection, error) {
	cli, err := connectDocker(cfg.Spec)
	if err != nil {
		return Connection{}, fmt.Errorf("%s: %w", cfg.Spec, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if _, err := cli.Ping(ctx); err != nil {
		return Connection{}, fmt.Errorf("%s: ping failed: %w", cfg.Spec, err)
	}

	return Connection{
		HostID:  CreateHostID(cfg.Spec),
		Client:  cli,
		Filters: cfg.Filters,
	}, nil
}

// EstablishConnections dials every configured host concurrently. It returns
// as soon as the first host succeeds (or after firstHostTimeout elapses, or
// every host has failed), handing the caller a ready Connection plus a
// channel that delivers the remaining hosts' results as they complete, so
// the caller is never blocked waiting for a slow or unreachable host.
func EstablishConnections(ctx context.Context, hosts []HostConfig) (Connection, <-chan Connection, error) {
	if len(hosts) == 0 {
		return Connection{}, nil, fmt.Errorf("no hosts configured")
	}

	resultCh := make(chan connResult, len(hosts))

	for _, h := range hosts {
		h := h
		go func() {
			conn, err := connectAndVerifyHost(h)
			resultCh <- connResult{conn: conn, err: err}
		}()
	}

	remaining := make(chan Connection, len(hosts))
	var first Connection
	var firstErr error
	got := false

	timer := time.NewTimer(firstHostTimeout)
	defer timer.Stop()

	errs := 0
collectFirst:
	for i := 0; i < len(hosts); i++ {
		select {
		case r := <-resultCh:
			if r.err != nil {
				errs++
				firstErr = r.err
				if errs == len(hosts) {
					close(remaining)
					return Connection{}, nil, fmt.Errorf("failed to connect to any host: %w", firstErr)
				}
				continue
			}
			first = r.conn
			got = true
			go forwardRemaining(hosts, i+1-errs, errs, resultCh, remaining)
			break collectFirst
		case <-timer.C:
			close(remaining)
			return Connection{}, nil, fmt.Errorf("timed out waiting for the first host to connect")
		case <-ctx.Done():
			close(remaining)
			return Connection{}, nil, ctx.Err()
		}
	}

	if !got {
		close(remaining)
		return Connection{}, nil, fmt.Errorf("failed to connect to any host: %w", firstErr)
	}
	return first, remaining, nil
}

// forwardRemaining drains the shared result channel for the hosts that
// weren't the first to answer, forwarding every success onto remaining and
// dropping failures. alreadyReceived counts the successes and alreadyFailed
// the failures taken from resultCh before it started. No ConnectionError
// event is emitted for a host that fails here or before the first success.
type connResult struct {
	conn Connection
	err  error
}

func forwardRemaining(hosts []HostConfig, alreadyReceived, alreadyFailed int, resultCh chan connResult, remaining chan Connection) {
	defer close(remaining)
	want := len(hosts) - alreadyReceived - alreadyFailed
	for i := 0; i < want; i++ {
		r := <-resultCh
		if r.err == nil {
			remaining <- r.conn
		}
	}
}

// dialAll connects every host up front with simple all-or-nothing errgroup
// semantics, without the first-host fast path. Nothing in this module
// calls it.
func dialAll(ctx context.Context, hosts []HostConfig) ([]Connection, error) {
	conns := make([]Connection, len(hosts))
	g, _ := errgroup.WithContext(ctx)
	for i, h := range hosts {
		i, h := i, h
		g.Go(func() error {
			conn, err := connectAndVerifyHost(h)
			if err != nil {
				return err
			}
			conns[i] = conn
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return conns, nil
}
