package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts globalOptions

	root := &cobra.Command{
		Use:          "airflowctl",
		Short:        "Enclosure airflow calculator",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.templatesPath, "templates", "", "external template catalog (YAML)")

	root.AddCommand(templatesCmd(&opts))
	root.AddCommand(calcCmd(&opts))
	root.AddCommand(exportCmd(&opts))
	root.AddCommand(reportCmd(&opts))
	return root
}

func templatesCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the available templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTemplates(cmd.OutOrStdout(), g)
		},
	}
}

func calcCmd(g *globalOptions) *cobra.Command {
	var src sourceOptions
	var strategy string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the airflow summary for a template or workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd.OutOrStdout(), g, src, strategy, asJSON)
		},
	}
	src.bind(cmd)
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "auto", "pressure strategy: auto, negative, positive, neutral")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func exportCmd(g *globalOptions) *cobra.Command {
	var name, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a template to an xlsx workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.OutOrStdout(), g, name, out)
		},
	}
	cmd.Flags().StringVarP(&name, "template", "t", "", "template name")
	cmd.Flags().StringVarP(&out, "out", "o", "airflow.xlsx", "output file")
	cmd.MarkFlagRequired("template")
	return cmd
}

func reportCmd(g *globalOptions) *cobra.Command {
	var src sourceOptions
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF report for a template or workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.OutOrStdout(), g, src, opts)
		},
	}
	src.bind(cmd)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "airflow-report.pdf", "output file")
	cmd.Flags().StringVar(&opts.project, "project", "", "project name")
	cmd.Flags().StringVar(&opts.author, "author", "", "author")
	cmd.Flags().StringVar(&opts.notes, "notes", "", "free text notes")
	return cmd
}
