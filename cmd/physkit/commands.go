package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/physkit/internal/calc"
	"github.com/san-kum/physkit/internal/config"
	"github.com/san-kum/physkit/internal/export"
	"github.com/san-kum/physkit/internal/optics"
	"github.com/san-kum/physkit/internal/projectile"
)

var assignments []string

func calcCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc [calculator]",
		Short: "run any calculator with key=value parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := registry.ParseAssignments(args[0], assignments)
			if err != nil {
				return err
			}
			_, err = runAndPrint(args[0], params)
			return err
		},
	}
	cmd.Flags().StringArrayVar(&assignments, "set", nil, "parameter as key=value (repeatable)")
	return cmd
}

func listCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list calculators",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range registry.List() {
				c, err := registry.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\n", name, c.Description)
				if !verbose {
					continue
				}
				for _, p := range c.Params {
					def := strconv.FormatFloat(p.Default, 'g', -1, 64)
					if len(p.Choices) > 0 {
						def = fmt.Sprintf("%s (%s)", def, strings.Join(p.Choices, "|"))
					}
					fmt.Fprintf(w, "  %s\t%s %s\t%s\n", p.Name, def, p.Unit, p.Help)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show parameters")
	return cmd
}

// fluidDensity resolves --fluid (a preset name) over --fluid-density.
func fluidDensity(preset string, density float64) (float64, error) {
	if preset == "" {
		return density, nil
	}
	p := config.GetPreset("fluid", preset)
	if p == nil {
		return 0, fmt.Errorf("unknown fluid: %s (available: %v)", preset, config.ListPresets("fluid"))
	}
	return p.Value, nil
}

func buoyancyCommand() *cobra.Command {
	var (
		mode         string
		fluid        string
		mass, volume float64
		massB, volB  float64
		rhoFluid, g  float64
	)

	cmd := &cobra.Command{
		Use:   "buoyancy",
		Short: "float or sink, added-mass limit, two-material objects",
		RunE: func(cmd *cobra.Command, args []string) error {
			rho := cfg.FluidDensity
			if cmd.Flags().Changed("fluid-density") {
				rho = rhoFluid
			}
			rho, err := fluidDensity(fluid, rho)
			if err != nil {
				return err
			}
			grav := cfg.Gravity
			if cmd.Flags().Changed("g") {
				grav = g
			}

			switch mode {
			case "single":
				_, err = runAndPrint("buoyancy", map[string]float64{
					"mass": mass, "volume": volume, "fluid_density": rho, "g": grav,
				})
			case "added":
				_, err = runAndPrint("added_mass", map[string]float64{
					"mass": mass, "volume": volume, "fluid_density": rho,
				})
			case "composite":
				_, err = runAndPrint("composite", map[string]float64{
					"mass_a": mass, "volume_a": volume, "mass_b": massB, "volume_b": volB,
					"fluid_density": rho, "g": grav,
				})
			default:
				err = fmt.Errorf("unknown mode: %s (single, added, composite)", mode)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "single", "single, added or composite")
	cmd.Flags().Float64Var(&mass, "mass", 10, "object mass (kg)")
	cmd.Flags().Float64Var(&volume, "volume", 0.02, "object volume (m³)")
	cmd.Flags().Float64Var(&massB, "mass-b", 2, "second material mass (composite)")
	cmd.Flags().Float64Var(&volB, "volume-b", 0.001, "second material volume (composite)")
	cmd.Flags().Float64Var(&rhoFluid, "fluid-density", config.DefaultFluidDensity, "fluid density (kg/m³)")
	cmd.Flags().StringVar(&fluid, "fluid", "", "fluid preset (fresh_water, sea_water, oil, ethanol)")
	cmd.Flags().Float64Var(&g, "g", config.DefaultGravity, "gravitational acceleration (m/s²)")
	return cmd
}

// parseElement reads "kind:value" or "n:n1:n2" element specs, for example
// "d:0.1", "f:0.05", "n:1.0:1.5".
func parseElement(spec string, i int, params map[string]float64) error {
	parts := strings.Split(spec, ":")
	kind, err := optics.ParseElementKind(parts[0])
	if err != nil {
		return err
	}
	params[fmt.Sprintf("type_%d", i)] = float64(kind)

	nums := make([]float64, 0, 2)
	for _, p := range parts[1:] {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		nums = append(nums, v)
	}

	switch kind {
	case optics.KindFlatInterface:
		if len(nums) != 2 {
			return fmt.Errorf("element %d: interface needs n1:n2", i)
		}
		params[fmt.Sprintf("n1_%d", i)] = nums[0]
		params[fmt.Sprintf("n2_%d", i)] = nums[1]
	default:
		if len(nums) != 1 {
			return fmt.Errorf("element %d: %s needs one value", i, kind)
		}
		params[fmt.Sprintf("value_%d", i)] = nums[0]
	}
	return nil
}

func opticsCommand() *cobra.Command {
	var (
		elements []string
		y0, th0  float64
	)
	cmd := &cobra.Command{
		Use:   "optics",
		Short: "ray-transfer matrix of an optical system",
		Example: `  physkit optics --element d:0.1 --element f:0.05
  physkit optics --element n:1.0:1.5 --element d:0.2 --y0 0.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(elements) == 0 {
				elements = []string{"d:0.1"}
			}
			if len(elements) > calc.MaxOpticsElements {
				return fmt.Errorf("at most %d elements", calc.MaxOpticsElements)
			}
			params := map[string]float64{"y0": y0, "theta0": th0, "elements": float64(len(elements))}
			for i, spec := range elements {
				if err := parseElement(spec, i+1, params); err != nil {
					return err
				}
			}
			_, err := runAndPrint("optics", params)
			return err
		},
	}
	cmd.Flags().StringArrayVar(&elements, "element", nil, "element in traversal order: d:<dist>, f:<focal>, n:<n1>:<n2>")
	cmd.Flags().Float64Var(&y0, "y0", 1, "input ray height (m)")
	cmd.Flags().Float64Var(&th0, "theta0", 0, "input ray angle (rad)")
	return cmd
}

func projectileCommand() *cobra.Command {
	var (
		v0, g, x, y, slope float64
		plot               bool
		svg                string
	)
	cmd := &cobra.Command{
		Use:   "projectile",
		Short: "launch angles to hit a target, optimal angle up a slope",
		RunE: func(cmd *cobra.Command, args []string) error {
			grav := cfg.Gravity
			if cmd.Flags().Changed("g") {
				grav = g
			}
			res, err := runAndPrint("projectile", map[string]float64{"v0": v0, "g": grav, "x": x, "y": y})
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("slope") {
				fmt.Println()
				if _, err := runAndPrint("slope", map[string]float64{"slope": slope}); err != nil {
					return err
				}
			}

			if !plot && svg == "" {
				return nil
			}
			paths, err := trajectories(res, v0, grav)
			if err != nil {
				return err
			}
			if plot {
				plotTrajectories(paths)
			}
			if svg != "" {
				return writeTrajectorySVG(svg, paths, x, y)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&v0, "v0", 10, "launch speed (m/s)")
	cmd.Flags().Float64Var(&g, "g", config.DefaultGravity, "gravitational acceleration (m/s²)")
	cmd.Flags().Float64Var(&x, "x", 8, "target horizontal distance (m)")
	cmd.Flags().Float64Var(&y, "y", 2, "target height (m)")
	cmd.Flags().Float64Var(&slope, "slope", 0, "hill inclination (degrees)")
	cmd.Flags().BoolVar(&plot, "plot", false, "plot both trajectories")
	cmd.Flags().StringVar(&svg, "svg", "", "write both trajectories to an SVG file")
	return cmd
}

// trajectories samples the flight path of each solved launch angle.
func trajectories(res *calc.Result, v0, g float64) ([]export.Path, error) {
	strokes := map[string]string{"low angle": "#5fd7ff", "high angle": "#d7af00"}
	paths := make([]export.Path, 0, 2)
	for _, label := range []string{"low angle", "high angle"} {
		q, ok := res.Quantity(label)
		if !ok {
			continue
		}
		if q.Value <= 0 {
			fmt.Println(noteStyle.Render(fmt.Sprintf("  › %s %.1f° launches at or below the horizon, not plotted", label, q.Value)))
			continue
		}
		pts, err := projectile.Trajectory(v0, g, q.Value, cfg.Plot.Width)
		if err != nil {
			return nil, err
		}
		paths = append(paths, export.Path{
			Label:  fmt.Sprintf("%s %.1f°", label, q.Value),
			Points: pts,
			Stroke: strokes[label],
		})
	}
	return paths, nil
}

func plotTrajectories(paths []export.Path) {
	if len(paths) == 0 {
		return
	}
	series := make([][]float64, len(paths))
	for i, p := range paths {
		series[i] = projectile.Heights(p.Points)
	}

	fmt.Println()
	fmt.Println(asciigraph.PlotMany(series,
		asciigraph.Height(cfg.Plot.Height),
		asciigraph.Width(cfg.Plot.Width),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Goldenrod),
		asciigraph.Caption("height (m) over flight time: low and high launch"),
	))
}

func writeTrajectorySVG(path string, paths []export.Path, x, y float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.TrajectorySVG(f, paths, x, y, 640, 360); err != nil {
		return err
	}
	fmt.Printf("written: %s\n", path)
	return nil
}

func relativityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relativity",
		Short: "collider energy and relativistic Doppler shift",
	}

	var (
		mass, energy float64
		setupName    string
		particle     string
	)
	collider := &cobra.Command{
		Use:   "collider",
		Short: "centre-of-mass energy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if particle != "" {
				p := config.GetPreset("particle", particle)
				if p == nil {
					return fmt.Errorf("unknown particle: %s (available: %v)", particle, config.ListPresets("particle"))
				}
				mass = p.Value
			}
			setup, err := registry.ParseValue("collider", "setup", setupName)
			if err != nil {
				return err
			}
			_, err = runAndPrint("collider", map[string]float64{"mass": mass, "energy": energy, "setup": setup})
			return err
		},
	}
	collider.Flags().Float64Var(&mass, "mass", 0.000511, "rest mass (GeV/c²)")
	collider.Flags().Float64Var(&energy, "energy", 209, "beam energy (GeV)")
	collider.Flags().StringVar(&setupName, "setup", "fixed_target", "fixed_target or collider")
	collider.Flags().StringVar(&particle, "particle", "", "particle preset (electron, proton, muon)")

	var emitted, observed float64
	doppler := &cobra.Command{
		Use:   "doppler",
		Short: "source velocity from a wavelength shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runAndPrint("doppler", map[string]float64{"lambda_emitted": emitted, "lambda_observed": observed})
			return err
		},
	}
	doppler.Flags().Float64Var(&emitted, "emitted", 600, "emitted wavelength (nm)")
	doppler.Flags().Float64Var(&observed, "observed", 670, "observed wavelength (nm)")

	cmd.AddCommand(collider, doppler)
	return cmd
}

func thermoCommand() *cobra.Command {
	var (
		p1, v1, t1, gamma, value float64
		process, target, gas     string
	)
	cmd := &cobra.Command{
		Use:   "thermo",
		Short: "ideal-gas process: final state and work",
		RunE: func(cmd *cobra.Command, args []string) error {
			gm := cfg.Gamma
			if cmd.Flags().Changed("gamma") {
				gm = gamma
			}
			if gas != "" {
				p := config.GetPreset("gas", gas)
				if p == nil {
					return fmt.Errorf("unknown gas: %s (available: %v)", gas, config.ListPresets("gas"))
				}
				gm = p.Value
			}

			proc, err := registry.ParseValue("thermo", "process", process)
			if err != nil {
				return err
			}
			tgt, err := registry.ParseValue("thermo", "target", target)
			if err != nil {
				return err
			}

			_, err = runAndPrint("thermo", map[string]float64{
				"p1": p1, "v1": v1, "t1": t1, "gamma": gm,
				"process": proc, "target": tgt, "value": value,
			})
			return err
		},
	}
	cmd.Flags().Float64Var(&p1, "p1", 101325, "initial pressure (Pa)")
	cmd.Flags().Float64Var(&v1, "v1", 1, "initial volume (m³)")
	cmd.Flags().Float64Var(&t1, "t1", 298, "initial temperature (K)")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "adiabatic index")
	cmd.Flags().StringVar(&gas, "gas", "", "gas preset (monatomic, diatomic, polyatomic)")
	cmd.Flags().StringVar(&process, "process", "isothermal", "isothermal, adiabatic, isobaric, isochoric")
	cmd.Flags().StringVar(&target, "target", "volume", "volume, pressure or temperature")
	cmd.Flags().Float64Var(&value, "value", 0.5, "target value")
	return cmd
}

func poleCommand() *cobra.Command {
	var (
		width float64
		sig   int
	)
	cmd := &cobra.Command{
		Use:   "pole",
		Short: "pole radius for a tethered mower",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runAndPrint("pole", map[string]float64{"cut_width": width, "sig_figs": float64(sig)})
			return err
		},
	}
	cmd.Flags().Float64Var(&width, "width", 0.75, "cutting width (m)")
	cmd.Flags().IntVar(&sig, "sig", 2, "significant figures")
	return cmd
}

func presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [kind]",
		Short: "list reference values (fluid, gas, particle)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Printf("kinds: %s\n", strings.Join(config.Kinds(), ", "))
				return nil
			}
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for kind: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, n := range names {
				p := config.GetPreset(args[0], n)
				fmt.Fprintf(w, "  %s\t%g\t%s\n", p.Name, p.Value, p.Unit)
			}
			return w.Flush()
		},
	}
}
