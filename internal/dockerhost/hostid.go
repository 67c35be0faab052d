// Package dockerhost owns every engine-facing I/O concern: connecting to one
// or more Docker hosts, translating engine events into core.AppEvent values,
// and carrying out container actions, log tails, and interactive shells.
package dockerhost

import (
	"net/url"

	"github.com/dtop/dtop/internal/core"
)

// CreateHostID derives the identifier used to group and display containers
// from a connection spec. "local" is kept verbatim; a parseable URL
// contributes its host portion (so "ssh://user@box:22" becomes "box"); a
// spec that is neither is kept as-is so the host still shows up in the UI
// under the string the user typed.
func CreateHostID(hostSpec string) core.HostID {
	if hostSpec == "local" {
		return core.HostID("local")
	}
	if u, err := url.Parse(hostSpec); err == nil {
		if h := u.Hostname(); h != "" {
			return core.HostID(h)
		}
	}
	return core.HostID(hostSpec)
}
