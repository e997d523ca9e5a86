// Command yamlsort sorts and formats YAML files.
//
// # Usage
//
//	yamlsort sort [flags] [file|directory|-] ...
//	yamlsort format [flags] [file|directory|-] ...
//	yamlsort validate [flags] [file|directory|-] ...
//	yamlsort config show [flags]
//	yamlsort config schema
//	yamlsort version
//
// Directories are searched recursively for .yaml and .yml files. With no
// arguments, input is read from stdin. Results are written to stdout unless
// -w or -l is given.
//
// # Settings
//
// Settings are read from defaults, the file passed with --settings (or
// .yamlsort.yaml in the working directory), YAMLSORT__ environment
// variables, and finally explicitly set flags. For example,
// YAMLSORT__INDENT=4 is equivalent to --indent=4.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"go.jacobcolvin.com/yamlsort"
	"go.jacobcolvin.com/yamlsort/log"
	"go.jacobcolvin.com/yamlsort/profile"
	"go.jacobcolvin.com/yamlsort/version"
)

const stdinPath = "-"

var (
	// ErrNoInput indicates that no files were given and stdin is a terminal.
	ErrNoInput = errors.New("no input")
	// ErrFailed indicates that at least one input could not be processed.
	ErrFailed = errors.New("failed")
)

func main() {
	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		setDefaultLogger: true,
	}

	err := a.execute(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

type app struct {
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func() bool

	// setDefaultLogger also routes library logs through the configured
	// handler.
	setDefaultLogger bool

	cfg      *yamlsort.Config
	logCfg   *log.Config
	logger   *slog.Logger
	profiler *profile.Profiler
}

// execute runs the command line args and writes any requested profiles.
func (a *app) execute(args []string) error {
	root := a.newRootCmd()
	root.SetArgs(args)

	err := root.Execute()

	stopErr := a.profiler.Stop()
	if stopErr != nil {
		err = errors.Join(err, fmt.Errorf("profile: %w", stopErr))
	}

	return err
}

// fileOptions controls where results go.
type fileOptions struct {
	lines yamlsort.LineRange
	write bool
	list  bool
}

func (o *fileOptions) register(flags *pflag.FlagSet) {
	flags.BoolVarP(&o.write, "write", "w", false,
		"write results back to the source files")
	flags.BoolVarP(&o.list, "list", "l", false,
		"only list files whose content would change")
	flags.Var(&o.lines, "range",
		"only process lines START:END (1-based, inclusive)")
}

func (a *app) newRootCmd() *cobra.Command {
	a.cfg = yamlsort.NewConfig()
	a.logCfg = log.NewConfig()
	profileCfg := profile.NewConfig()
	a.profiler = profileCfg.NewProfiler()

	root := &cobra.Command{
		Use:   "yamlsort",
		Short: "Sort and format YAML files",
		Long: `yamlsort sorts mapping keys in YAML files and normalizes their formatting.
Full-line comments move together with the line below them, and inline arrays,
template expressions and octal-looking numbers can be kept verbatim.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			h, err := a.logCfg.NewHandler(a.stderr)
			if err != nil {
				return err
			}

			a.logger = slog.New(h)
			if a.setDefaultLogger {
				slog.SetDefault(a.logger)
			}

			return a.profiler.Start()
		},
	}

	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	a.logCfg.RegisterFlags(root.PersistentFlags())
	profileCfg.RegisterFlags(root.PersistentFlags())

	completionErr := errors.Join(
		a.logCfg.RegisterCompletions(root),
		profileCfg.RegisterCompletions(root),
	)
	if completionErr != nil {
		fmt.Fprintf(a.stderr, "register completions: %v\n", completionErr)
	}

	root.AddCommand(
		a.newSortCmd(),
		a.newFormatCmd(),
		a.newValidateCmd(),
		a.newConfigCmd(),
		a.newVersionCmd(),
	)

	return root
}

// addSettingsFlags registers the sorter settings flags on cmd.
func (a *app) addSettingsFlags(cmd *cobra.Command) {
	a.cfg.RegisterFlags(cmd.Flags())

	err := a.cfg.RegisterCompletions(cmd)
	if err != nil {
		fmt.Fprintf(a.stderr, "register completions: %v\n", err)
	}
}

func (a *app) newSortCmd() *cobra.Command {
	var (
		opts   fileOptions
		custom int
	)

	cmd := &cobra.Command{
		Use:   "sort [flags] [file|directory|-] ...",
		Short: "Sort mapping keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			sorter, err := a.cfg.NewSorter(cmd.Flags())
			if err != nil {
				return err
			}

			return a.rewrite(args, opts, func(text string) (string, error) {
				if !opts.lines.IsZero() {
					return sorter.SortLines(text, opts.lines, custom)
				}

				return sorter.Sort(text, custom)
			})
		},
	}

	cmd.Flags().IntVarP(&custom, "custom", "c", 0,
		"custom keyword order to apply at the top level, 1 to 3 (0 sorts by locale)")
	opts.register(cmd.Flags())
	a.addSettingsFlags(cmd)

	return cmd
}

func (a *app) newFormatCmd() *cobra.Command {
	var opts fileOptions

	cmd := &cobra.Command{
		Use:   "format [flags] [file|directory|-] ...",
		Short: "Normalize formatting without reordering keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			sorter, err := a.cfg.NewSorter(cmd.Flags())
			if err != nil {
				return err
			}

			return a.rewrite(args, opts, func(text string) (string, error) {
				if !opts.lines.IsZero() {
					return sorter.FormatLines(text, opts.lines)
				}

				return sorter.Format(text)
			})
		},
	}

	opts.register(cmd.Flags())
	a.addSettingsFlags(cmd)

	return cmd
}

func (a *app) newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [flags] [file|directory|-] ...",
		Short: "Check that inputs can be sorted",
		RunE: func(cmd *cobra.Command, args []string) error {
			sorter, err := a.cfg.NewSorter(cmd.Flags())
			if err != nil {
				return err
			}

			return a.each(args, func(path, text string) error {
				err := sorter.Validate(text)
				if err != nil {
					return err
				}

				a.logger.Debug("valid", slog.String("path", path))

				return nil
			})
		},
	}

	a.addSettingsFlags(cmd)

	return cmd
}

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect settings",
	}

	show := &cobra.Command{
		Use:   "show [flags]",
		Short: "Print the effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := a.cfg.NewLoader(cmd.Flags())
			if err != nil {
				return err
			}

			err = l.DumpYAML(a.stdout)
			if err != nil {
				return fmt.Errorf("%w: %w", yamlsort.ErrWriteOutput, err)
			}

			return nil
		},
	}

	a.addSettingsFlags(show)

	schema := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the settings file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := yamlsort.SettingsSchema()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return fmt.Errorf("%w: %w", yamlsort.ErrWriteOutput, err)
			}

			out = append(out, '\n')

			_, err = a.stdout.Write(out)
			if err != nil {
				return fmt.Errorf("%w: %w", yamlsort.ErrWriteOutput, err)
			}

			return nil
		},
	}

	cmd.AddCommand(show, schema)

	return cmd
}

func (a *app) newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			info := version.Get()

			if asJSON {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")

				return enc.Encode(info)
			}

			_, err := fmt.Fprintln(a.stdout, info.String())

			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

// rewrite applies fn to every input and emits the result according to opts.
func (a *app) rewrite(args []string, opts fileOptions, fn func(string) (string, error)) error {
	return a.each(args, func(path, text string) error {
		out, err := fn(text)
		if err != nil {
			return err
		}

		changed := out != text
		a.logger.Debug("processed", slog.String("path", path), slog.Bool("changed", changed))

		switch {
		case opts.list:
			if changed {
				_, err = fmt.Fprintln(a.stdout, path)
			}

		case opts.write && path != stdinPath:
			if changed {
				err = replaceFile(path, out)
				if err == nil {
					a.logger.Info("rewrote file", slog.String("path", path))
				}
			}

		default:
			_, err = io.WriteString(a.stdout, out)
		}

		if err != nil {
			return fmt.Errorf("%w: %w", yamlsort.ErrWriteOutput, err)
		}

		return nil
	})
}

// input is one file to process, or the reason an argument could not be
// expanded into files.
type input struct {
	err  error
	path string
}

// each reads every input and calls fn with its content. A failing input is
// logged and the remaining inputs are still processed.
func (a *app) each(args []string, fn func(path, text string) error) error {
	inputs, err := a.inputs(args)
	if err != nil {
		return err
	}

	failed := 0

	for _, in := range inputs {
		err := in.err
		if err == nil {
			err = a.process(in.path, fn)
		}

		if err != nil {
			a.logger.Error("process input", slog.String("path", in.path), slog.Any("error", err))

			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d inputs", ErrFailed, failed, len(inputs))
	}

	return nil
}

func (a *app) process(path string, fn func(path, text string) error) error {
	var (
		data []byte
		err  error
	)

	if path == stdinPath {
		data, err = io.ReadAll(a.stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", yamlsort.ErrReadInput, err)
	}

	return fn(path, string(data))
}

// inputs expands args into the inputs to process. An argument that cannot
// be stat'ed or walked becomes a failed input instead of stopping the batch.
func (a *app) inputs(args []string) ([]input, error) {
	if len(args) == 0 {
		if a.isTerminal() {
			return nil, fmt.Errorf("%w: pass files or pipe YAML to stdin", ErrNoInput)
		}

		return []input{{path: stdinPath}}, nil
	}

	var inputs []input

	for _, arg := range args {
		if arg == stdinPath {
			inputs = append(inputs, input{path: arg})

			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			inputs = append(inputs, input{path: arg, err: fmt.Errorf("%w: %w", yamlsort.ErrReadInput, err)})

			continue
		}

		if !info.IsDir() {
			inputs = append(inputs, input{path: arg})

			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				inputs = append(inputs, input{path: path, err: fmt.Errorf("%w: %w", yamlsort.ErrReadInput, err)})

				if d != nil && d.IsDir() {
					return fs.SkipDir
				}

				return nil
			}

			if !d.IsDir() && isYAML(path) {
				inputs = append(inputs, input{path: path})
			}

			return nil
		})
		if err != nil {
			inputs = append(inputs, input{path: arg, err: fmt.Errorf("%w: %w", yamlsort.ErrReadInput, err)})
		}
	}

	return inputs, nil
}

// replaceFile replaces the content of the existing file at path, keeping its
// permissions.
func replaceFile(path, content string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	return os.WriteFile(path, []byte(content), info.Mode().Perm())
}

func isYAML(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}

	return false
}
