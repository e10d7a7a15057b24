package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/rgonek/lark-block-converter/blocks"
	"github.com/spf13/cobra"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List recognised code block languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			aliases := map[string][]string{}
			for alias, name := range blocks.LanguageAliases() {
				aliases[name] = append(aliases[name], alias)
			}

			languages := blocks.Languages()
			names := make([]string, 0, len(languages))
			for name := range languages {
				names = append(names, name)
			}
			sort.Strings(names)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCODE\tALIASES")
			for _, name := range names {
				sort.Strings(aliases[name])
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, languages[name], strings.Join(aliases[name], ", "))
			}
			return w.Flush()
		},
	}
}
