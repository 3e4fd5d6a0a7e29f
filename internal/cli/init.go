package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/flatshare/internal/paths"
	"github.com/mesh-intelligence/flatshare/pkg/sqlite"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config file and the local database",
		Long:  "Write a default config.yaml if missing, then create the data directory and database schema.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}

	// Only persist data_dir when it was given explicitly.
	dataDir := ""
	if flags.dataDir != "" {
		dataDir = s.DataDir
	}
	created, err := writeConfigIfMissing(paths.ConfigFile(s.ConfigDir), dataDir)
	if err != nil {
		return sysErrorf("write config: %w", err)
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(s.Remote); err != nil {
		return sysErrorf("initialize storage: %w", err)
	}
	if err := backend.Detach(); err != nil {
		return sysErrorf("finalize storage: %w", err)
	}

	out := cmd.OutOrStdout()
	if created {
		fmt.Fprintf(out, "wrote %s\n", paths.ConfigFile(s.ConfigDir))
	}
	fmt.Fprintf(out, "flatshare initialized in %s\n", s.DataDir)
	return nil
}
