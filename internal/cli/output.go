package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// render prints v as indented JSON under --json, otherwise calls text.
func render(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	out := cmd.OutOrStdout()
	if flags.jsonMode {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	text(out)
	return nil
}

// table writes tab-aligned rows under a header.
func table(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// done prints a confirmation line unless --json is set, in which case v is
// printed instead.
func done(cmd *cobra.Command, v any, format string, args ...any) error {
	return render(cmd, v, func(w io.Writer) { fmt.Fprintf(w, format+"\n", args...) })
}
