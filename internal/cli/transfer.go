package cli

import (
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write the remote tree as one JSONL file per collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				if err := a.engine.Flush(cmd.Context()); err != nil {
					return sysErrorf("flush mirror: %w", err)
				}
				n, err := a.backend.Export(cmd.Context(), args[0])
				if err != nil {
					return sysErrorf("export: %w", err)
				}
				return done(cmd, map[string]int{"records": n}, "exported %d records to %s", n, args[0])
			})
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Replace the remote tree with the JSONL files in dir",
		Long:  "Replace the remote tree with the JSONL files in dir. Malformed lines are skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				if err := a.engine.Flush(cmd.Context()); err != nil {
					return sysErrorf("flush mirror: %w", err)
				}
				n, err := a.backend.Import(cmd.Context(), args[0])
				if err != nil {
					return sysErrorf("import: %w", err)
				}
				return done(cmd, map[string]int{"records": n}, "imported %d records from %s", n, args[0])
			})
		},
	}
}
