package commands

import (
	"encoding/json"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"Estimator/internal/calc/report"
	"Estimator/internal/calc/tools"
)

// reportCommand maps a subcommand onto a report source. Positional numbers
// fill the input list named by key.
type reportCommand struct {
	use   string
	tool  string
	key   string
	short string
}

var reportCommands = []reportCommand{
	{"atmosphere [metres...]", "atmosphere", "altitudes_m", "Air temperature, pressure and density by altitude"},
	{"hydrogen [litres...]", "hydrogen", "volumes_l", "Energy of compressed and liquid hydrogen by tank volume"},
	{"compress", "compress", "", "Hydrogen mass held in a pressure vessel"},
	{"quadcopter", "quadcopter", "", "Power, flight time and energy of a quad-copter cruise flight"},
	{"sweep [metres...]", "altitude-sweep", "altitudes_m", "Quad-copter flight budget across altitudes"},
	{"solar", "solar", "", "Area, peak power and daily output of a solar panel"},
	{"container", "container", "", "Racks, lighting and cooling of a grow container"},
	{"microgreens", "microgreens", "", "Yield and profit of the catalog plants in a container"},
	{"harvest", "harvest", "", "Economics of a single tray harvest"},
}

func (a *app) reportCmd(rc reportCommand) *cobra.Command {
	var input string
	cmd := &cobra.Command{
		Use:   rc.use,
		Short: rc.short,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := commandInput(rc, input, args)
			if err != nil {
				return err
			}
			src, ok := a.sources[rc.tool]
			if !ok {
				return errors.Newf("unknown tool %q", rc.tool)
			}
			doc, err := src(raw)
			if err != nil {
				return errors.Wrapf(err, "%s report", rc.tool)
			}
			return a.print(cmd, doc)
		},
	}
	if rc.key == "" {
		cmd.Args = cobra.NoArgs
	}
	cmd.Flags().StringVar(&input, "input", "", "JSON input, or @file to read it from a file")
	return cmd
}

func (a *app) allCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Combined overview of every tool with default inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := tools.All(a.sources)
			if err != nil {
				return err
			}
			return a.print(cmd, doc)
		},
	}
}

// commandInput resolves the source input from --input or the positional
// numbers. Both at once are rejected.
func commandInput(rc reportCommand, input string, args []string) (json.RawMessage, error) {
	if input == "" {
		return tools.ListInput(rc.key, args)
	}
	if len(args) > 0 {
		return nil, errors.New("use either --input or positional values, not both")
	}
	raw := []byte(input)
	if input[0] == '@' {
		var err error
		if raw, err = os.ReadFile(input[1:]); err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
	}
	if !json.Valid(raw) {
		return nil, errors.New("input is not valid JSON")
	}
	return raw, nil
}

func (a *app) print(cmd *cobra.Command, doc report.Document) error {
	if err := report.WriteText(cmd.OutOrStdout(), doc); err != nil {
		return err
	}
	if a.pdfPath == "" {
		return nil
	}
	f, err := os.Create(a.pdfPath)
	if err != nil {
		return errors.Wrap(err, "creating PDF")
	}
	meta := report.Meta{Project: a.project, Author: a.author, Date: time.Now()}
	if err := report.WritePDF(f, doc, meta); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "writing PDF")
	}
	pterm.Success.Printfln("PDF written to %s", a.pdfPath)
	return nil
}
