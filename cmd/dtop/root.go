package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dtop/dtop/internal/config"
	"github.com/dtop/dtop/internal/core"
	"github.com/dtop/dtop/internal/crashlog"
	"github.com/dtop/dtop/internal/dockerhost"
	"github.com/dtop/dtop/internal/logging"
	"github.com/dtop/dtop/internal/tui"
	"github.com/spf13/cobra"
)

var (
	flagHosts            []string
	flagFilters          []string
	flagAll              bool
	flagIcons            string
	flagSort             string
	flagLogsBufferLength int
	flagConfigPath       string
)

var rootCmd = &cobra.Command{
	Use:   "dtop",
	Short: "A terminal UI for monitoring Docker containers across one or more hosts",
	Long: `dtop watches one or more Docker engines - local, over SSH, or over TLS -
and renders their running containers as a live, sortable, searchable list
with per-container stats, logs, and lifecycle actions.`,
	RunE: runDtop,
}

func init() {
	rootCmd.Flags().StringArrayVarP(&flagHosts, "host", "H", nil, "Docker host to monitor (repeatable); local, ssh://, tls://, or tcp://")
	rootCmd.Flags().StringArrayVarP(&flagFilters, "filter", "f", nil, "container list filter, e.g. label=com.example=true (repeatable)")
	rootCmd.Flags().BoolVarP(&flagAll, "all", "a", false, "show stopped containers as well as running ones")
	rootCmd.Flags().StringVarP(&flagIcons, "icons", "i", "unicode", "icon set to use: unicode or nerd")
	rootCmd.Flags().StringVarP(&flagSort, "sort", "s", "", "initial sort field: name, cpu, mem, uptime")
	rootCmd.Flags().IntVar(&flagLogsBufferLength, "logs-buffer-length", 0, "maximum log lines kept per container")
	rootCmd.Flags().StringVarP(&flagConfigPath, "config", "c", "", "explicit path to a config.yaml file")
}

// ExecuteContext runs the root command under ctx, returning any error from
// the command's RunE (not printing or exiting itself, so main stays in
// charge of process exit codes).
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runDtop(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.New()

	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = config.Merge(cfg, config.CLIOverrides{
		Hosts:               flagHosts,
		HostsSet:            cmd.Flags().Changed("host"),
		Filters:             flagFilters,
		LogsBufferLength:    flagLogsBufferLength,
		LogsBufferLengthSet: cmd.Flags().Changed("logs-buffer-length"),
		ShowAll:             flagAll,
		ShowAllSet:          cmd.Flags().Changed("all"),
		IconSet:             flagIcons,
		IconSetSet:          cmd.Flags().Changed("icons"),
	})

	hosts := make([]dockerhost.HostConfig, 0, len(cfg.Hosts))
	for _, h := range cfg.Hosts {
		filters, err := dockerhost.ParseFilters(h.Filters)
		if err != nil {
			return fmt.Errorf("parsing filters for host %q: %w", h.Host, err)
		}
		hosts = append(hosts, dockerhost.HostConfig{Spec: h.Host, Filters: filters})
	}

	first, remaining, err := dockerhost.EstablishConnections(ctx, hosts)
	if err != nil {
		return fmt.Errorf("connecting to docker: %w", err)
	}

	bus := make(chan core.AppEvent, 1000)
	conns := map[core.HostID]dockerhost.Connection{first.HostID: first}
	refresh := time.Duration(cfg.RefreshSeconds) * time.Second

	state := core.NewAppState()
	state.ShowAll = cfg.ShowAll
	state.MaxLogEntries = cfg.LogsBufferLength
	if flagSort != "" {
		if field, ok := parseSortField(flagSort); ok {
			state.SortState = core.NewSortState(field)
		}
	}

	crashlog.SafeGo("dockerhost-manager:"+string(first.HostID), func() {
		dockerhost.NewManager(first, bus).WithPollInterval(refresh).Run(ctx)
	})

	model := tui.New(state, bus, conns, cfg, log)
	program := tea.NewProgram(model, tea.WithAltScreen())

	// Additional hosts arrive asynchronously once the first has connected;
	// they are handed to the running program via Send, bubbletea's only
	// goroutine-safe way to mutate Model state from outside Update.
	crashlog.SafeGo("dockerhost-remaining-connections", func() {
		for conn := range remaining {
			program.Send(tui.NewConnectionMsg{Connection: conn})
			c := conn
			crashlog.SafeGo("dockerhost-manager:"+string(c.HostID), func() {
				dockerhost.NewManager(c, bus).WithPollInterval(refresh).Run(ctx)
			})
		}
	})

	_, err = program.Run()
	return err
}

func parseSortField(s string) (core.SortField, bool) {
	switch s {
	case "name":
		return core.SortName, true
	case "cpu":
		return core.SortCPU, true
	case "mem", "memory":
		return core.SortMemory, true
	case "uptime":
		return core.SortUptime, true
	default:
		return 0, false
	}
}
