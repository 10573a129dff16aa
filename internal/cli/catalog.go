package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ssdcollector/internal/catalog"
)

// CatalogCmd lists the built-in test batteries
func CatalogCmd(cat *catalog.Catalog) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect test batteries and protocols",
	}

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List test batteries",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tLANGUAGE\tPROTOCOLS\tWORDS")
			fmt.Fprintln(w, "--\t----\t--------\t---------\t-----")
			for _, b := range cat.Batteries() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", b.ID, b.Name, b.Language, len(b.Protocols), b.TotalWords())
			}
			return w.Flush()
		},
	})

	catalogCmd.AddCommand(&cobra.Command{
		Use:   "show [battery-id]",
		Short: "Show a battery's protocols and words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := cat.Battery(args[0])
			if err != nil {
				return fmt.Errorf("battery %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Battery: %s (%s)\n", b.Name, b.ID)
			if b.FullName != "" {
				fmt.Fprintf(out, "Full name: %s\n", b.FullName)
			}
			fmt.Fprintf(out, "Language: %s\n", b.Language)
			if b.TargetAgeYears != "" {
				fmt.Fprintf(out, "Target age: %s years\n", b.TargetAgeYears)
			}
			if b.AdministrationTimeMinutes > 0 {
				fmt.Fprintf(out, "Administration: ~%d min\n", b.AdministrationTimeMinutes)
			}

			for _, p := range b.Protocols {
				fmt.Fprintf(out, "\n%s [%s] %d words\n", p.Name, p.ID, len(p.Words))
				words := make([]string, 0, len(p.Words))
				for _, word := range p.Words {
					words = append(words, word.Word)
				}
				fmt.Fprintf(out, "  %s\n", strings.Join(words, ", "))
			}
			return nil
		},
	})

	return catalogCmd
}
