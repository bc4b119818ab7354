package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ticker-search/api"
	"ticker-search/credentials"
	"ticker-search/logger"
	"ticker-search/search"
	"ticker-search/tui"
)

func newTUICmd(a *app) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive ticker autocomplete",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The program owns the terminal; keep log lines out of it.
			logger.FileOnly(a.loggerConfig())

			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}

			var pulse api.PulseFetcher
			if !offline && a.cfg.Pulse.BaseURL != "" {
				pulse = api.NewPulseClient(a.cfg.Pulse.BaseURL, a.cfg.Pulse.Timeout, credentials.NewEnvProvider())
			}

			m := tui.New(search.NewMatcher(cat), pulse, a.cfg.Pulse.Timeout)
			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "resolve tickers without calling the sentiment backend")
	return cmd
}
