package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/physkit/internal/calc"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func printResult(res *calc.Result) error {
	fmt.Println(titleStyle.Render(res.Calculator))

	names := make([]string, 0, len(res.Inputs))
	for k := range res.Inputs {
		names = append(names, k)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, k := range names {
		fmt.Fprintf(w, "  %s\t%g\n", dimStyle.Render(k), res.Inputs[k])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, q := range res.Quantities {
		fmt.Fprintf(w, "  %s\t%.6g\t%s\n", q.Label, q.Value, q.Unit)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, n := range res.Notes {
		fmt.Println(noteStyle.Render("  › " + n))
	}
	return nil
}

// runAndPrint runs a calculator, prints it and saves it when --save is set.
func runAndPrint(name string, params map[string]float64) (*calc.Result, error) {
	res, err := registry.Run(name, params)
	if err != nil {
		logger.Debug("calculation failed", zap.String("calculator", name), zap.Error(err))
		return nil, err
	}
	if err := printResult(res); err != nil {
		return nil, err
	}

	if save {
		st := store()
		if err := st.Init(); err != nil {
			return nil, err
		}
		id, err := st.Save(res)
		if err != nil {
			return nil, err
		}
		logger.Info("saved", zap.String("run_id", id))
		fmt.Printf("\nsaved: %s\n", id)
	}
	return res, nil
}
