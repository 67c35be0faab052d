package config

// CLIOverrides holds the subset of flags that may override the config
// file. A flag is only applied when its "set" companion is true, so an
// unset flag never clobbers a value the config file provided.
type CLIOverrides struct {
	Hosts               []string
	HostsSet            bool
	Filters             []string
	LogsBufferLength    int
	LogsBufferLengthSet bool
	ShowAll             bool
	ShowAllSet          bool
	IconSet             string
	IconSetSet          bool
}

// Merge applies CLI overrides on top of a loaded Config, following the
// precedence the original CLI documented: flags win over the config file,
// the config file wins over built-in defaults. --host may be repeated on
// the command line; when present it replaces the file's host list
// entirely rather than appending to it, since mixing the two would make it
// unclear which filters apply to which host.
func Merge(cfg Config, cli CLIOverrides) Config {
	out := cfg

	if cli.HostsSet {
		out.Hosts = make([]HostEntry, 0, len(cli.Hosts))
		for _, h := range cli.Hosts {
			out.Hosts = append(out.Hosts, HostEntry{Host: h, Filters: cli.Filters})
		}
	} else if len(cli.Filters) > 0 {
		for i := range out.Hosts {
			out.Hosts[i].Filters = cli.Filters
		}
	}

	if cli.LogsBufferLengthSet {
		out.LogsBufferLength = cli.LogsBufferLength
	}
	if cli.ShowAllSet {
		out.ShowAll = cli.ShowAll
	}
	if cli.IconSetSet {
		out.IconSet = cli.IconSet
	}

	return out
}
