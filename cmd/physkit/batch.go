package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/physkit/internal/config"
	"github.com/san-kum/physkit/internal/report"
	"github.com/san-kum/physkit/internal/server"
	"github.com/san-kum/physkit/internal/worksheet"
)

func loadWorksheet(path string) (*worksheet.Worksheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return worksheet.LoadXLSX(path)
	case ".yaml", ".yml":
		return worksheet.Load(path)
	default:
		return nil, fmt.Errorf("unsupported worksheet format: %s (use .yaml or .xlsx)", path)
	}
}

func worksheetCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "worksheet [file]",
		Short: "run a batch of calculations from yaml or xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorksheet(args[0])
			if err != nil {
				return err
			}

			runner := &worksheet.Runner{Registry: registry, Logger: logger}
			entries, err := runner.Run(cmd.Context(), ws)
			if err != nil {
				return err
			}

			if ws.Name != "" {
				fmt.Println(titleStyle.Render(ws.Name))
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, e := range entries {
				label := e.Step.Label
				if label == "" {
					label = e.Step.Calculator
				}
				if e.Err != nil {
					fmt.Fprintf(w, "%d\t%s\terror: %v\n", e.Index+1, label, e.Err)
					continue
				}
				for _, q := range e.Result.Quantities {
					fmt.Fprintf(w, "%d\t%s\t%s\t%.6g\t%s\n", e.Index+1, label, q.Label, q.Value, q.Unit)
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if save {
				st := store()
				if err := st.Init(); err != nil {
					return err
				}
				for _, e := range entries {
					if e.Err != nil {
						continue
					}
					if _, err := st.Save(e.Result); err != nil {
						return err
					}
				}
			}

			if out != "" {
				if err := worksheet.WriteXLSX(out, entries); err != nil {
					return err
				}
				fmt.Printf("\nwritten: %s\n", out)
			}

			if n := worksheet.Failed(entries); n > 0 {
				return fmt.Errorf("%d of %d steps failed", n, len(entries))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write results to an xlsx file")
	return cmd
}

func sweepCommand() *cobra.Command {
	var (
		name, param, output, out string
		from, to                 float64
		steps                    int
		plot                     bool
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "vary one parameter and record an output",
		Example: `  physkit sweep --calc buoyancy --param mass --min 1 --max 30 --output weight --plot
  physkit sweep --calc projectile --param v0 --min 5 --max 30 --set x=8 --set y=2 --output "low angle"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := registry.ParseAssignments(name, assignments)
			if err != nil {
				return err
			}
			sw := &worksheet.Sweep{
				Calculator: name,
				Param:      param,
				Min:        from,
				Max:        to,
				Steps:      steps,
				Base:       base,
				Output:     output,
			}
			points, err := worksheet.RunSweep(cmd.Context(), sw, registry)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(param), strings.ToUpper(output))
			for _, p := range points {
				if p.Err != nil {
					fmt.Fprintf(w, "%g\terror: %v\n", p.Value, p.Err)
					continue
				}
				fmt.Fprintf(w, "%g\t%.6g %s\n", p.Value, p.Output, p.Unit)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if plot {
				if ys := worksheet.Outputs(points); len(ys) > 1 {
					fmt.Println()
					fmt.Println(asciigraph.Plot(ys,
						asciigraph.Height(cfg.Plot.Height),
						asciigraph.Width(cfg.Plot.Width),
						asciigraph.Caption(fmt.Sprintf("%s vs %s [%g, %g]", output, param, from, to)),
					))
				}
			}

			if out != "" {
				if err := worksheet.WriteSweepXLSX(out, sw, points); err != nil {
					return err
				}
				fmt.Printf("\nwritten: %s\n", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "calc", "", "calculator name")
	cmd.Flags().StringVar(&param, "param", "", "parameter to vary")
	cmd.Flags().Float64Var(&from, "min", 0, "start value")
	cmd.Flags().Float64Var(&to, "max", 1, "end value")
	cmd.Flags().IntVar(&steps, "steps", 20, "number of points")
	cmd.Flags().StringVar(&output, "output", "", "quantity label to record (default: first)")
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "fixed parameter as key=value")
	cmd.Flags().BoolVar(&plot, "plot", false, "plot the output")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write points to an xlsx file")
	cmd.MarkFlagRequired("calc")
	cmd.MarkFlagRequired("param")
	return cmd
}

func reportCommand() *cobra.Command {
	var out, title, author, project, notes string
	cmd := &cobra.Command{
		Use:   "report [calculator]",
		Short: "run a calculator and write a PDF report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := registry.ParseAssignments(args[0], assignments)
			if err != nil {
				return err
			}
			res, err := registry.Run(args[0], params)
			if err != nil {
				return err
			}

			if out == "" {
				out = args[0] + ".pdf"
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			meta := report.Meta{Title: title, Author: author, Project: project, Notes: notes, Date: time.Now()}
			if err := report.Render(f, res, meta); err != nil {
				return err
			}
			logger.Info("report written", zap.String("calculator", args[0]), zap.String("path", out))
			fmt.Printf("written: %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "parameter as key=value")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default <calculator>.pdf)")
	cmd.Flags().StringVar(&title, "title", "", "report title")
	cmd.Flags().StringVar(&author, "author", "", "author")
	cmd.Flags().StringVar(&project, "project", "", "project name")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	return cmd
}

func serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "serve calculators over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(registry, server.Options{
				RateLimit: cfg.Server.RateLimit,
				Burst:     cfg.Server.Burst,
			}, logger)
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	return cmd
}
