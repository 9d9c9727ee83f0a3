package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func historyCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "list saved runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := store().List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no saved runs")
				return nil
			}
			if limit > 0 && len(runs) > limit {
				runs = runs[:limit]
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCALCULATOR\tTIME\tINPUTS")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					r.ID, r.Calculator, r.Timestamp.Format("2006-01-02 15:04:05"), len(r.Inputs))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n runs")
	return cmd
}

func showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, res, err := store().LoadResult(args[0])
			if err != nil {
				return err
			}
			fmt.Println(dimStyle.Render(fmt.Sprintf("%s  %s", meta.ID, meta.Timestamp.Format("2006-01-02 15:04:05"))))
			return printResult(res)
		},
	}
}

func exportCSVCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run's quantities as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store().ExportCSV(os.Stdout, args[0])
		},
	}
}

func exportJSONCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store().ExportJSON(os.Stdout, args[0])
		},
	}
}
