package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into paths, search, display, and utility.
// Negated flags (e.g. --no-fast-path) are applied after Parse so Config defaults hold unless set.

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, missing positional arg).
func ParseFlags(cfg *Config, version string) error {
	return ParseArgs(cfg, os.Args[1:], version)
}

// ParseArgs is ParseFlags over an explicit argument list.
func ParseArgs(cfg *Config, args []string, version string) error {
	fs := flag.NewFlagSet("spinefit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printUsage(os.Stderr, version) }

	var negated negatedFlags

	definePathFlags(fs, cfg)
	defineSearchFlags(fs, cfg, &negated)
	defineDisplayFlags(fs, cfg, &negated)
	defineUtilityFlags(fs, &negated)

	if err := fs.Parse(reorderArgs(fs, args)); err != nil {
		if err == flag.ErrHelp {
			printUsage(os.Stderr, version)
			os.Exit(0)
		}
		return err
	}

	applyNegatedFlags(cfg, &negated)

	if negated.showHelp {
		printUsage(os.Stderr, version)
		os.Exit(0)
	}
	if negated.showVersion {
		fmt.Fprintln(os.Stdout, "spinefit v"+version)
		os.Exit(0)
	}

	return parsePositionalArgs(fs, cfg)
}

// negatedFlags holds boolean flags that are applied after Parse.
type negatedFlags struct {
	noFastPath  bool
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// definePathFlags registers --output, --export_json, --spine_exec, --tmp-dir.
func definePathFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.OutputDir, "output", "", "Output folder (created if missing)")
	fs.StringVar(&cfg.OutputDir, "o", "", "Same as --output")
	fs.StringVar(&cfg.ExportJSON, "export_json", cfg.ExportJSON, "Path to the export.json template")
	fs.StringVar(&cfg.SpineExec, "spine_exec", cfg.SpineExec, "Path to the Spine executable")
	fs.StringVar(&cfg.TempDir, "tmp-dir", "", "Parent folder for per-job workspaces")
}

// defineSearchFlags registers --threads, --min-scale, --max-scale, --no-fast-path.
func defineSearchFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.IntVar(&cfg.Threads, "threads", cfg.Threads, "Number of projects exported in parallel")
	fs.IntVar(&cfg.Threads, "j", cfg.Threads, "Same as --threads")
	fs.IntVar(&cfg.MinScale, "min-scale", cfg.MinScale, "Smallest scale to try, in percent")
	fs.IntVar(&cfg.MaxScale, "max-scale", cfg.MaxScale, "Largest scale to try, in percent")
	fs.BoolVar(&n.noFastPath, "no-fast-path", false, "Do not try the largest scale before searching")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVar(&n.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&n.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output (log every probe)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, n *negatedFlags) {
	fs.BoolVar(&n.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&n.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&n.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&n.showHelp, "h", false, "Same as --help")
}

// applyNegatedFlags copies negated and override flag values into cfg.
func applyNegatedFlags(cfg *Config, n *negatedFlags) {
	if n.noFastPath {
		cfg.TryMaxFirst = false
	}
	if n.noColor {
		cfg.ColorMode = ColorNever
	} else if n.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets Input from the single positional arg when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 1 {
		return fmt.Errorf("need exactly one input (a .spine file or a folder)")
	}
	cfg.Input = NormalizeDirArg(args[0])
	return nil
}

// reorderArgs moves positional arguments behind the flags so that
// "spinefit ./projects --threads 4" parses the same as the flag-first form.
// The stdlib parser stops at the first non-flag argument otherwise.
func reorderArgs(fs *flag.FlagSet, args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			positional = append(positional, a)
			continue
		}
		flags = append(flags, a)
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil || isBoolFlag(f) {
			continue
		}
		if i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	return append(flags, positional...)
}

func isBoolFlag(f *flag.Flag) bool {
	bf, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && bf.IsBoolFlag()
}

// printUsage writes the help text to w. Column-aligned for readability.
func printUsage(w io.Writer, version string) {
	const col1 = 28 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "spinefit v" + version + " - export Spine projects at the largest scale that fits one page"},
		{"", ""},
		{"  spinefit [OPTIONS] <input.spine|folder>", ""},
		{"", ""},
		{"Paths", ""},
		{"  -o, --output <dir>", "Output folder (default: <name>_export next to each project)"},
		{"  --export_json <path>", "export.json template (default: export.json)"},
		{"  --spine_exec <path>", "Spine executable"},
		{"  --tmp-dir <dir>", "Parent folder for job workspaces (default: system temp)"},
		{"", ""},
		{"Search", ""},
		{"  -j, --threads <n>", "Projects exported in parallel (default: CPU count)"},
		{"  --min-scale <pct>", "Smallest scale to try (default: 10)"},
		{"  --max-scale <pct>", "Largest scale to try (default: 100)"},
		{"  --no-fast-path", "Search without trying the largest scale first"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"  -v, --verbose", "Log every probe"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (Spine, export.json)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(w)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(w, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(w, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(w, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}
