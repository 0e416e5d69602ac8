package main

import (
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/evergreen/config"
)

var version = "dev"

// app carries state shared by every subcommand
type app struct {
	configPath string
	verbose    bool
	cfg        config.Config
}

// level is the effective log level: --verbose wins over log.level
func (a *app) level() charmlog.Level {
	if a.verbose {
		return charmlog.DebugLevel
	}
	return a.cfg.LogLevel()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "evergreen",
		Short:        "A decorated tree that scatters and reassembles",
		Long:         `Evergreen renders a 3D ornamental tree in the terminal. Space, a hand gesture or a script scatters it into a drifting cloud and pulls it back into shape.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, a.level())))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "TOML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newSimulateCmd(a))
	root.AddCommand(newConfigCmd(a))
	return root
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.cfg.Encode(cmd.OutOrStdout())
		},
	}
}
