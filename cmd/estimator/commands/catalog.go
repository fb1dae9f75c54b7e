package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"Estimator/internal/calc/microgreens"
	"Estimator/internal/calc/premium/importer"
	"Estimator/internal/repo"
)

func (a *app) catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the plant catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.catalog.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				pterm.Warning.Println("catalog is empty")
				return nil
			}
			out, err := catalogTable(entries)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.AddCommand(a.importCmd())
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import <workbook.xlsx>",
		Short: "Import catalog rows from a spreadsheet into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "opening workbook")
			}
			defer f.Close()

			entries, skipped, err := importer.ParseCatalog(f)
			if err != nil {
				return err
			}
			for _, row := range skipped {
				pterm.Warning.Printfln("row %d skipped", row)
			}
			if dryRun {
				out, err := catalogTable(entries)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			db, err := a.database()
			if err != nil {
				return err
			}
			if err := repo.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			n, err := repo.NewPostgresCatalogDB(db).Import(cmd.Context(), entries)
			if err != nil {
				return err
			}
			pterm.Success.Printfln("%d catalog entries imported", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the parsed rows without writing them")
	return cmd
}

func catalogTable(entries []microgreens.Entry) (string, error) {
	data := pterm.TableData{{"Part", "Name", "Seeds g", "Yield oz", "Days", "Price/25lb", "EUR/kg"}}
	for _, e := range entries {
		data = append(data, []string{
			e.PartNumber,
			e.Name,
			formatFloat(e.SeedsGPerTray),
			formatFloat(e.YieldOzPerTray),
			formatFloat(e.DaysPerTray),
			formatFloat(e.SeedPricePer25Lb),
			fmt.Sprintf("%.2f", e.Microgreen().Price.MustIn(microgreens.EURPerKilogram).Value()),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
