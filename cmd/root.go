package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dirscout/dirscout/internal/config"
	"github.com/dirscout/dirscout/internal/runner"
	"github.com/dirscout/dirscout/pkg/version"
)

var (
	opts        config.Options
	headerFlags []string
	timeoutSecs int
)

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"TARGET", []string{"url", "wordlist"}},
	{"MATCHERS", []string{"status-codes", "min-size", "max-size"}},
	{"RATE-LIMIT", []string{"threads", "timeout", "rate"}},
	{"HTTP", []string{"header", "user-agents"}},
	{"OUTPUT", []string{"output", "quiet", "no-color"}},
}

var rootCmd = &cobra.Command{
	Use:     "dirscout [target] [wordlist] [flags]",
	Short:   "Concurrent web path discovery tool",
	Version: version.Version,
	Long: `dirscout discovers accessible paths on a web server by probing
candidate path segments from a wordlist across a bounded pool of
concurrent workers. Responses are matched against a configurable
status-code set and content-length bounds.`,
	Example: `  dirscout https://example.com wordlists/common.txt
  dirscout -u example.com -w common.txt -t 50
  dirscout -u https://example.com -w common.txt -s 200,403 --min-size 100
  dirscout -u https://example.com -w common.txt -o auto
  dirscout -u https://example.com -w common.txt -q -o results.json`,
	Args: cobra.MaximumNArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Positional target and wordlist; explicit flags take precedence.
		if len(args) > 0 && !cmd.Flags().Changed("url") {
			opts.URL = args[0]
		}
		if len(args) > 1 && !cmd.Flags().Changed("wordlist") {
			opts.WordlistPath = args[1]
		}
		if opts.URL == "" {
			_ = cmd.Help()
			fmt.Fprintln(os.Stderr)
			return fmt.Errorf("target required: pass it as the first argument or with -u")
		}
		if opts.WordlistPath == "" {
			return fmt.Errorf("wordlist required: pass it as the second argument or with -w")
		}
		if opts.Threads < 1 {
			return fmt.Errorf("--threads must be at least 1")
		}
		if timeoutSecs < 1 {
			return fmt.Errorf("--timeout must be at least 1 second")
		}
		opts.Timeout = time.Duration(timeoutSecs) * time.Second

		headers, err := parseHeaders(headerFlags)
		if err != nil {
			return err
		}
		opts.Headers = headers
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return runner.Run(ctx, &opts)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()

	// Target
	f.StringVarP(&opts.URL, "url", "u", "", "Target URL (overrides positional argument)")
	f.StringVarP(&opts.WordlistPath, "wordlist", "w", "", "Wordlist path (overrides positional argument)")

	// Matchers
	f.VarP(&intSliceValue{target: &opts.StatusCodes}, "status-codes", "s", "Accepted status codes (default 200,301,302,403,401)")
	f.Int64Var(&opts.MinSize, "min-size", 0, "Minimum response size in bytes")
	f.Int64Var(&opts.MaxSize, "max-size", 0, "Maximum response size in bytes (0 = unlimited)")

	// Performance
	f.IntVarP(&opts.Threads, "threads", "t", 20, "Number of concurrent probes")
	f.IntVar(&timeoutSecs, "timeout", 10, "Per-request timeout in seconds")
	f.Float64Var(&opts.Rate, "rate", 0, "Max requests per second (0 = unlimited)")

	// HTTP
	f.StringSliceVarP(&headerFlags, "header", "H", nil, "Custom headers (Key: Value)")
	f.StringVar(&opts.UserAgentsPath, "user-agents", "", "File with one User-Agent per line (default: built-in browser set)")

	// Output
	f.StringVarP(&opts.OutputFile, "output", "o", "", "JSON report path, or \"auto\" for results/<host>_<time>.json")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress banner and progress (results still print)")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")

	// Custom help: categorized flags like httpx.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		w := os.Stderr
		fmt.Fprint(w, helpBanner(cmd.Version))
		fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n", cmd.Long, cmd.UseLine())
		fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
		fmt.Fprintf(w, "\nFlags:\n")
		for _, g := range helpGroups {
			fmt.Fprintf(w, "\n%s:\n", g.title)
			for _, name := range g.flags {
				if f := cmd.Flags().Lookup(name); f != nil {
					fmt.Fprintln(w, formatFlag(f))
				}
			}
		}
		fmt.Fprintln(w)
	})
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseHeaders turns repeated "Key: Value" flags into a header map.
func parseHeaders(headers []string) (map[string]string, error) {
	if len(headers) == 0 {
		return nil, nil
	}
	m := make(map[string]string, len(headers))
	for _, h := range headers {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid header format %q, expected 'Key: Value'", h)
		}
		m[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return m, nil
}

// intSliceValue implements pflag.Value for comma-separated int slices.
type intSliceValue struct {
	target *[]int
}

func (v *intSliceValue) String() string {
	if v.target == nil || len(*v.target) == 0 {
		return ""
	}
	parts := make([]string, len(*v.target))
	for i, val := range *v.target {
		parts[i] = strconv.Itoa(val)
	}
	return strings.Join(parts, ",")
}

func (v *intSliceValue) Set(s string) error {
	parts := strings.Split(s, ",")
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid status code %q: %w", p, err)
		}
		*v.target = append(*v.target, n)
	}
	return nil
}

func (v *intSliceValue) Type() string { return "ints" }

func formatFlag(f *pflag.Flag) string {
	var left string
	if f.Shorthand != "" {
		left = fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	} else {
		left = fmt.Sprintf("    --%s", f.Name)
	}

	typ := f.Value.Type()
	if typ != "bool" {
		left += " " + typ
	}

	// Pad to fixed column width for aligned descriptions.
	const col = 32
	for len(left) < col {
		left += " "
	}

	right := f.Usage
	// Show default for non-zero values.
	def := f.DefValue
	if def != "" && def != "false" && def != "0" && def != "[]" {
		right += fmt.Sprintf(" (default %s)", def)
	}

	return "   " + left + right
}

func helpBanner(ver string) string {
	if ver != "dev" && ver != "" && !strings.HasPrefix(ver, "v") {
		ver = "v" + ver
	}
	return fmt.Sprintf(`
     ___                          __
  __/ (_)______________  __ _____/ /_
 / _  / / __(_-< __/ _ \/ // /  __/
 \_,_/_/_/ /___|__/\___/\_,_/\__/    %s

`, ver)
}
