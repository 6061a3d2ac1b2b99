package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is the application version, set via ldflags.
var version string = "dev"

// newRootCmd builds the command tree with its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "linecount",
		Short: "A CLI tool for counting lines of code in your projects.",
		Long: `linecount walks a directory tree, selects files by extension while
honoring ignore globs, and reports line counts as a total, per file, or per
directory.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile, newLogger(cmd.ErrOrStderr(), v.GetBool("verbose")))
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/linecount/config.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print diagnostic messages to stderr")
	v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(newCountLinesCmd(v))
	return rootCmd
}

// newCountLinesCmd builds the `cl` subcommand.
func newCountLinesCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cl",
		Short: "Count lines of code in the specified directory.",
		Long: `Count lines of code in the specified directory.

Only files ending in one of the --extensions are counted; with no extension
nothing is selected. --ignore globs are matched against the full resolved path
of each file, and '*' as well as '**' match across '/', so '**/venv/**'
ignores every path containing a venv directory.

Without --file-wise or --directory-wise the grand total is printed. Either flag
replaces the total with the corresponding table; both may be combined.

Every flag can also be set as LINECOUNT_<FLAG> in the environment or in
~/.config/linecount/config.toml. LINECOUNT_EXTENSIONS and LINECOUNT_IGNORE
take comma separated lists, e.g. LINECOUNT_EXTENSIONS=py,js.`,
		Example: `  linecount cl -e go
  linecount cl -d ./src -e py -e js -i '**/node_modules/**' -f
  linecount cl -e go -D --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLineCount(cmd.Context(), loadOptions(v), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringP("root-dir", "d", ".", "Root directory to analyze")
	flags.StringArrayP("extensions", "e", nil, "File extensions to count, without the dot (e.g. -e py -e js)")
	flags.StringArrayP("ignore", "i", nil, "Glob patterns to ignore (e.g. -i '**/venv/**' -i '**/.git/**')")
	flags.BoolP("file-wise", "f", false, "Count lines per file")
	// -d belongs to --root-dir.
	flags.BoolP("directory-wise", "D", false, "Count lines per directory")
	flags.IntP("threads", "t", 0, "Number of files counted in parallel (0 for auto)")
	flags.StringP("format", "o", formatTable, "Output format: table, json or yaml")
	flags.Bool("gitignore", false, "Also skip paths matched by the root's .gitignore")
	flags.BoolP("clipboard", "c", false, "Copy output to clipboard")
	flags.String("pdf", "", "Also save the report as PDF")
	flags.Bool("interactive", false, "Pick extensions with a fuzzy finder when -e is not given")
	flags.Bool("no-progress", false, "Disable the progress bar")

	for key, name := range map[string]string{
		"root_dir":       "root-dir",
		"extensions":     "extensions",
		"ignore":         "ignore",
		"file_wise":      "file-wise",
		"directory_wise": "directory-wise",
		"threads":        "threads",
		"format":         "format",
		"gitignore":      "gitignore",
		"clipboard":      "clipboard",
		"pdf":            "pdf",
		"interactive":    "interactive",
		"no_progress":    "no-progress",
	} {
		v.BindPFlag(key, flags.Lookup(name))
	}
	setDefaults(v)

	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		renderError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
