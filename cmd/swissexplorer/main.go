package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/probeops/swisskit/cmd/swissexplorer/logger"
	"github.com/probeops/swisskit/pkg/memimage"
	"github.com/probeops/swisskit/swiss"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first (before positional args)
	args := os.Args[1:]
	debugMode := false
	cfg := swiss.DefaultConfig()

	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		switch {
		case arg == "--debug" || arg == "-d":
			debugMode = true
		case strings.HasPrefix(arg, "--root-ns="):
			cfg.RootNamespace = strings.TrimPrefix(arg, "--root-ns=")
		case strings.HasPrefix(arg, "--version-ns="):
			cfg.InlineNamespace = strings.TrimPrefix(arg, "--version-ns=")
		case strings.HasPrefix(arg, "--entry-symbol="):
			cfg.EntrySymbol = strings.TrimPrefix(arg, "--entry-symbol=")
		default:
			filteredArgs = append(filteredArgs, arg)
		}
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if len(filteredArgs) < 1 {
		printUsage()
		os.Exit(1)
	}

	if filteredArgs[0] == "--help" || filteredArgs[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if filteredArgs[0] == "--version" || filteredArgs[0] == "-v" {
		fmt.Printf("swissexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	bundlePath := filteredArgs[0]
	logger.Info("starting swissexplorer", "path", bundlePath, "debug", debugMode)

	b, err := memimage.LoadBundle(bundlePath)
	if err != nil {
		logger.Error("failed to load bundle", "path", bundlePath, "error", err)
		fmt.Fprintf(os.Stderr, "Error: failed to load bundle: %v\n", err)
		os.Exit(1)
	}

	m, err := NewModel(b, bundlePath, cfg)
	if err != nil {
		b.Close()
		logger.Error("failed to build model", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	if cerr := b.Close(); cerr != nil {
		logger.Warn("error closing bundle", "error", cerr)
	}
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	logger.Info("swissexplorer exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: swissexplorer [options] <bundle.json>\n")
	fmt.Fprintf(os.Stderr, "Try 'swissexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("swissexplorer - Interactive TUI for SwissTable capture bundles")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  swissexplorer [options] <bundle.json>")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Launches an interactive terminal UI over a capture bundle. The left")
	fmt.Println("  pane lists the captured variables; the right pane reconstructs the")
	fmt.Println("  selected variable, element by element for recognized containers.")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/k, ↓/j    Move between variables / scroll elements")
	fmt.Println("    Tab         Switch between panes")
	fmt.Println("    Enter       Reconstruct the selected variable")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug          Enable debug logging to ~/.swissexplorer/logs/")
	fmt.Println("  --root-ns=NS         Container library root namespace (default absl::)")
	fmt.Println("  --version-ns=NS      Inline version namespace of the inspected build")
	fmt.Println("  --entry-symbol=SYM   Symbol anchoring the fallback lookup scope")
	fmt.Println("  -h, --help           Show this help message")
	fmt.Println("  -v, --version        Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  swissexplorer capture.json")
	fmt.Println("  swissexplorer capture.json --version-ns=lts_20230802")
	fmt.Println()
	fmt.Println("For non-interactive dumps, use the 'swissctl' command instead.")
}
