package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ticker-search/catalog"
	"ticker-search/loader"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate or export instrument catalogs",
	}
	cmd.AddCommand(newCatalogValidateCmd(), newCatalogExportCmd(a))
	return cmd
}

func newCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a catalog file for dangling aliases and bad symbols",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cat, err := loader.LoadCatalog(args[0])
			if err != nil {
				var cfgErr *catalog.ConfigError
				if errors.As(err, &cfgErr) {
					for _, p := range cfgErr.Problems {
						fmt.Fprintf(out, "  - %s\n", p)
					}
					return fmt.Errorf("%s: %d problem(s)", args[0], len(cfgErr.Problems))
				}
				return err
			}
			fmt.Fprintf(out, "%s: ok (%d instruments, %d aliases)\n", args[0], cat.Len(), len(cat.Aliases()))
			return nil
		},
	}
}

func newCatalogExportCmd(a *app) *cobra.Command {
	var (
		format  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active catalog as YAML or CSV",
		Long: `Write the active catalog (CATALOG_PATH, --catalog, or the builtin one).

With --format csv and --out, the aliases are written next to the CSV file
as aliases.json so the pair loads back with --catalog.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "yaml", "yml":
				return loader.WriteCatalogYAML(w, cat)
			case "csv":
				if err := loader.WriteInstrumentsCSV(w, cat); err != nil {
					return err
				}
				if outPath == "" {
					return nil
				}
				af, err := os.Create(filepath.Join(filepath.Dir(outPath), loader.AliasFile))
				if err != nil {
					return err
				}
				defer af.Close()
				return loader.WriteAliasesJSON(af, cat)
			default:
				return fmt.Errorf("unsupported format %q (want yaml or csv)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or csv")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}
