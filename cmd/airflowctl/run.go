package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"Airflow/internal/calc/premium/importer"
	"Airflow/internal/calc/premium/recommend"
	"Airflow/internal/calc/report"
	"Airflow/internal/calc/summary"
	"Airflow/internal/calc/template"
	"Airflow/internal/calc/volume"
)

type globalOptions struct {
	templatesPath string
}

// sourceOptions selects where a layout comes from.
type sourceOptions struct {
	template string
	xlsx     string
	liters   float64
	m3       float64
}

func (s *sourceOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.template, "template", "t", "", "template name")
	cmd.Flags().StringVar(&s.xlsx, "xlsx", "", "workbook to import instead of a template")
	cmd.Flags().Float64Var(&s.liters, "liters", 0, "enclosure volume in liters")
	cmd.Flags().Float64Var(&s.m3, "m3", 0, "enclosure volume in cubic meters")
	cmd.MarkFlagsMutuallyExclusive("template", "xlsx")
	cmd.MarkFlagsMutuallyExclusive("liters", "m3")
}

type reportOptions struct {
	out     string
	project string
	author  string
	notes   string
}

func (g *globalOptions) catalog() (*template.Catalog, error) {
	if g.templatesPath == "" {
		return template.Default()
	}
	return template.LoadFile(g.templatesPath)
}

// input resolves the layout and volume. Row problems in a workbook are
// returned alongside a usable layout.
func (s sourceOptions) input(g *globalOptions) (summary.Input, []importer.RowError, error) {
	var in summary.Input
	var rowErrs []importer.RowError

	switch {
	case s.xlsx != "":
		f, err := excelize.OpenFile(s.xlsx)
		if err != nil {
			return in, nil, fmt.Errorf("opening workbook: %w", err)
		}
		defer f.Close()
		wb, err := importer.Read(f)
		if err != nil {
			return in, nil, fmt.Errorf("%s: %w", s.xlsx, err)
		}
		in.Layout, rowErrs = wb.Layout, wb.Errors
	case s.template != "":
		c, err := g.catalog()
		if err != nil {
			return in, nil, err
		}
		if !known(c, s.template) {
			return in, nil, fmt.Errorf("unknown template %q", s.template)
		}
		in.Layout = c.Load(s.template)
	default:
		return in, nil, errors.New("one of --template or --xlsx is required")
	}

	var e volume.Edit
	if s.m3 != 0 {
		e.M3 = &s.m3
	} else {
		e.Liters = &s.liters
	}
	v, err := e.Apply()
	if err != nil {
		return in, nil, err
	}
	in.Volume = v
	return in, rowErrs, nil
}

// known accepts catalog names and None, which always loads the empty layout.
func known(c *template.Catalog, name string) bool {
	return name == template.None || c.Has(name)
}

func runTemplates(w io.Writer, g *globalOptions) error {
	c, err := g.catalog()
	if err != nil {
		return err
	}
	for _, name := range c.Names() {
		fmt.Fprintln(w, name)
	}
	return nil
}

type calcOutput struct {
	Summary        summary.Summary     `json:"summary"`
	Recommendation recommend.Result    `json:"recommendation"`
	RowErrors      []importer.RowError `json:"row_errors,omitempty"`
}

func runCalc(w io.Writer, g *globalOptions, src sourceOptions, strategy string, asJSON bool) error {
	st, err := recommend.ParseStrategy(strategy)
	if err != nil {
		return err
	}
	in, rowErrs, err := src.input(g)
	if err != nil {
		return err
	}
	s := summary.Calculate(in)
	rec, err := recommend.Advise(recommend.Input{Strategy: st, Summary: s})
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(calcOutput{Summary: s, Recommendation: rec, RowErrors: rowErrs})
	}
	printRowErrors(w, rowErrs)
	printSummary(w, s)
	printRecommendation(w, rec)
	return nil
}

func runExport(w io.Writer, g *globalOptions, name, out string) error {
	c, err := g.catalog()
	if err != nil {
		return err
	}
	if !known(c, name) {
		return fmt.Errorf("unknown template %q", name)
	}
	f, err := importer.Export(c.Load(name))
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(out); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(w, "Wrote %s (%s)\n", out, name)
	return nil
}

func runReport(w io.Writer, g *globalOptions, src sourceOptions, opts reportOptions) error {
	in, rowErrs, err := src.input(g)
	if err != nil {
		return err
	}
	printRowErrors(w, rowErrs)

	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	doc := report.Document{
		Project: opts.project,
		Author:  opts.author,
		Notes:   opts.notes,
		Input:   in,
	}
	if err := report.Write(f, doc, time.Now()); err != nil {
		f.Close()
		return fmt.Errorf("rendering report: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s (%d fans)\n", opts.out, in.Layout.Len())
	return nil
}
