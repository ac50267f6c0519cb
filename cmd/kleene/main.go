package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/geange/kleene"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type solveFlags struct {
	config   string
	format   string
	notation string
	trace    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "kleene",
		Short:        "Convert finite automata to regular expressions",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newSolveCmd(), newNotationsCmd())
	return rootCmd
}

func newSolveCmd() *cobra.Command {
	flags := &solveFlags{}
	cmd := &cobra.Command{
		Use:   "solve [file]",
		Short: "Eliminate every state of an automaton and print the resulting expression",
		Long: `Reads an automaton description from file, or stdin when file is omitted.

The text format is one line of state names, one line holding the initial
state, one line of accept states, then one "from to [symbol]" line per
transition. A transition without a symbol is an epsilon transition.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "YAML config file")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "input format: text or yaml")
	cmd.Flags().StringVarP(&flags.notation, "notation", "n", "", "output notation, see kleene notations")
	cmd.Flags().BoolVar(&flags.trace, "trace", false, "log every elimination step")
	return cmd
}

func newNotationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notations",
		Short: "List the output notations",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, n := range kleene.Notations() {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
		},
	}
}

func runSolve(cmd *cobra.Command, args []string, flags *solveFlags) error {
	cfg, err := LoadConfig(flags.config)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = flags.format
	}
	if cmd.Flags().Changed("notation") {
		cfg.Notation = flags.notation
	}
	if flags.trace {
		cfg.LogLevel = slog.LevelDebug.String()
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	notation, _ := cfg.notation()
	level, _ := cfg.level()
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	} else if interactive(in) {
		return errors.New("no automaton given: pass a file or pipe a description on stdin")
	}

	def, err := readDefinition(in, cfg.Format)
	if err != nil {
		return err
	}
	a, err := kleene.Build(def, kleene.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("solving automaton",
		slog.Int("states", a.GetNumStates()),
		slog.Int("transitions", a.GetNumTransitions()))

	p, err := a.Solve()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), p.Render(notation))
	return err
}

func interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func readDefinition(r io.Reader, format string) (*kleene.Definition, error) {
	if format == formatYAML {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		return kleene.ParseYAML(data)
	}
	return kleene.ParseText(r)
}
