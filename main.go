package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
	"gopkg.in/yaml.v3"

	"purls/internal/config"
	"purls/internal/log"
	"purls/internal/model"
	"purls/internal/trace"
	"purls/internal/tui"
	"purls/internal/web"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      "purls",
		Repository: "purls",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		log.Debug("update check failed: %v", err)
		return
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Println("👉 Download it from https://github.com/purls/purls/releases")
	} else if pflag.Lookup("update").Changed {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: purls [options] [URL...]\n\n")
		fmt.Fprintf(os.Stderr, "purls edits URL query parameters and checks which of them survive\n")
		fmt.Fprintf(os.Stderr, "the redirect chain.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  %s_PORT, %s_MAX_REDIRECTS, %s_HOP_TIMEOUT, %s_USER_AGENT, %s_LOG_LEVEL, %s_CONCURRENCY\n",
			config.Prefix, config.Prefix, config.Prefix, config.Prefix, config.Prefix, config.Prefix)
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  purls 'https://e.com/?utm_source=x'      # Edit the URL in the TUI\n")
		fmt.Fprintf(os.Stderr, "  purls -r 'https://e.com/?utm_source=x'   # Print a redirect report\n")
		fmt.Fprintf(os.Stderr, "  purls -r -i urls.txt -o report.txt       # Check a list of URLs\n")
		fmt.Fprintf(os.Stderr, "  purls --json URL                         # Output reports as JSON\n")
		fmt.Fprintf(os.Stderr, "  purls --web -p 9000                      # Start the web editor\n")
	}

	jsonFlag := pflag.BoolP("json", "j", false, "Output reports as JSON")
	yamlFlag := pflag.Bool("yaml", false, "Output reports as YAML")
	reportFlag := pflag.BoolP("report", "r", false, "Print a redirect report for each URL (CLI mode)")
	outputFlag := pflag.StringP("output", "o", "", "Save the output to the specified file")
	inputFlag := pflag.StringP("input", "i", "", "Read URLs from a file, one per line ('-' for stdin)")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Include every hop's status code in the report")
	maxFlag := pflag.IntP("max-redirects", "m", 0, "Maximum number of redirects to follow (default from config)")
	timeoutFlag := pflag.DurationP("timeout", "t", 0, "Timeout per request (default from config)")
	webFlag := pflag.BoolP("web", "w", false, "Start Web Mode")
	portFlag := pflag.IntP("port", "p", 0, "Port for Web Mode (default from config)")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for the latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("purls version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		log.Warn("ignoring log level %q: %v", cfg.LogLevel, err)
	}
	if pflag.Lookup("max-redirects").Changed {
		cfg.MaxRedirects = min(max(*maxFlag, 0), cfg.MaxRedirectsLimit)
	}
	if pflag.Lookup("timeout").Changed && *timeoutFlag > 0 {
		cfg.HopTimeout = *timeoutFlag
	}
	if pflag.Lookup("port").Changed {
		cfg.Port = *portFlag
	}

	client := trace.NewRestyClient(trace.ClientConfig{
		Timeout:   cfg.HopTimeout,
		UserAgent: cfg.UserAgent + "/" + model.Version,
	})

	if *webFlag {
		if err := web.StartServer(cfg, client); err != nil {
			log.Fatal("web server: %v", err)
		}
		return
	}

	urls := pflag.Args()
	if *inputFlag != "" {
		fromFile, err := model.ReadURLList(*inputFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		urls = append(urls, fromFile...)
	}

	batch := *reportFlag || *jsonFlag || *yamlFlag || *inputFlag != "" ||
		!isatty.IsTerminal(os.Stdout.Fd())
	if !batch {
		first := ""
		if len(urls) > 0 {
			first = urls[0]
		}
		runTuiMode(cfg, client, first)
		return
	}

	if len(urls) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no URLs given\n\n")
		pflag.Usage()
		os.Exit(2)
	}

	format := formatText
	switch {
	case *jsonFlag:
		format = formatJSON
	case *yamlFlag:
		format = formatYAML
	}
	if err := runReportMode(cfg, client, urls, format, *outputFlag, *verboseFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type outputFormat int

const (
	formatText outputFormat = iota
	formatJSON
	formatYAML
)

func runReportMode(cfg *config.Config, client trace.Client, urls []string, format outputFormat, outputFile string, verbose bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	checker := trace.NewChecker(trace.NewTracer(client))
	reports := checker.CheckAll(ctx, urls, cfg.MaxRedirects, cfg.Concurrency)

	var out strings.Builder
	if err := writeReports(&out, urls, reports, format, verbose); err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(out.String()), 0644); err != nil {
			return fmt.Errorf("writing report to %s: %w", outputFile, err)
		}
		fmt.Printf("Report saved to %s\n", outputFile)
		return nil
	}
	fmt.Print(out.String())
	return nil
}

// writeReports renders reports in the chosen format. JSON and YAML always
// produce a list, with null entries for inputs that had nothing to check.
func writeReports(w io.Writer, urls []string, reports []*model.Report, format outputFormat, verbose bool) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := io.WriteString(w, trace.GenerateBatchReport(urls, reports, verbose))
		return err
	}
}

func runTuiMode(cfg *config.Config, client trace.Client, rawURL string) {
	// logrus would draw over the alternate screen
	log.SetOutput(io.Discard)

	checker := trace.NewChecker(trace.NewTracer(client))
	m := tui.InitialModel(checker, rawURL, cfg.MaxRedirects)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
