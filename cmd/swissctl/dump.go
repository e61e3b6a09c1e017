package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/probeops/swisskit/pkg/memimage"
	"github.com/probeops/swisskit/printer"
	"github.com/probeops/swisskit/swiss"
)

var (
	dumpRootNS    string
	dumpVersionNS string
	dumpEntrySym  string
	dumpMaxElems  int
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpRootNS, "root-ns", swiss.DefaultRootNamespace, "Container library root namespace")
	cmd.Flags().StringVar(&dumpVersionNS, "version-ns", swiss.DefaultInlineNamespace, "Inline version namespace of the inspected build")
	cmd.Flags().StringVar(&dumpEntrySym, "entry-symbol", swiss.DefaultEntrySymbol, "Symbol anchoring the fallback lookup scope")
	cmd.Flags().IntVar(&dumpMaxElems, "max-elems", 0, "Maximum elements per container (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <bundle.json> [variable...]",
		Short: "Reconstruct and print container variables from a capture bundle",
		Long: `The dump command loads a capture bundle and prints the named
variables. Container variables are reconstructed element by element; other
variables print through their plain value form. With no variable names, every
variable in the bundle is dumped.

Example:
  swissctl dump capture.json
  swissctl dump capture.json live_sessions
  swissctl dump capture.json --version-ns lts_20230802
  swissctl dump capture.json --max-elems 20 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	bundlePath := args[0]
	names := args[1:]

	printVerbose("Loading bundle: %s\n", bundlePath)

	b, err := memimage.LoadBundle(bundlePath)
	if err != nil {
		return fmt.Errorf("failed to load bundle: %w", err)
	}
	defer b.Close()

	res := swiss.NewResolver(b.Image, swiss.Config{
		RootNamespace:   dumpRootNS,
		InlineNamespace: dumpVersionNS,
		EntrySymbol:     dumpEntrySym,
	})
	reg, err := printer.DefaultRegistry(res)
	if err != nil {
		return fmt.Errorf("failed to build printer registry: %w", err)
	}

	opts := printer.DefaultOptions()
	opts.MaxElems = dumpMaxElems
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	r := printer.NewRenderer(reg, os.Stdout, opts)

	if len(names) == 0 {
		for _, sym := range b.Image.Symbols() {
			names = append(names, sym.Name)
		}
	}

	var failed int
	for _, name := range names {
		val, err := b.Image.Variable(name)
		if err != nil {
			printError("%s: %v\n", name, err)
			failed++
			continue
		}
		if err := r.Render(name, val); err != nil {
			return fmt.Errorf("failed to render %s: %w", name, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d variable(s) could not be read", failed)
	}
	return nil
}
