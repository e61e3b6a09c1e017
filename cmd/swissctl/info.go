package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/probeops/swisskit/pkg/memimage"
	"github.com/probeops/swisskit/printer"
	"github.com/probeops/swisskit/swiss"
)

var (
	infoRootNS    string
	infoVersionNS string
)

func init() {
	cmd := newInfoCmd()
	cmd.Flags().StringVar(&infoRootNS, "root-ns", swiss.DefaultRootNamespace, "Container library root namespace")
	cmd.Flags().StringVar(&infoVersionNS, "version-ns", swiss.DefaultInlineNamespace, "Inline version namespace of the inspected build")
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <bundle.json>",
		Short: "Report capture bundle metadata",
		Long: `The info command loads a capture bundle and reports its memory
region, type count, and captured variables, marking the ones a container
printer would claim.

Example:
  swissctl info capture.json
  swissctl info capture.json --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type variableInfo struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Addr      string `json:"addr"`
	Container bool   `json:"container"`
}

func runInfo(args []string) error {
	bundlePath := args[0]

	printVerbose("Loading bundle: %s\n", bundlePath)

	b, err := memimage.LoadBundle(bundlePath)
	if err != nil {
		return fmt.Errorf("failed to load bundle: %w", err)
	}
	defer b.Close()

	res := swiss.NewResolver(b.Image, swiss.Config{
		RootNamespace:   infoRootNS,
		InlineNamespace: infoVersionNS,
	})
	reg, err := printer.DefaultRegistry(res)
	if err != nil {
		return fmt.Errorf("failed to build printer registry: %w", err)
	}

	var vars []variableInfo
	containers := 0
	for _, sym := range b.Image.Symbols() {
		_, isContainer := reg.Match(sym.TypeName)
		if isContainer {
			containers++
		}
		vars = append(vars, variableInfo{
			Name:      sym.Name,
			Type:      sym.TypeName,
			Addr:      fmt.Sprintf("0x%x", sym.Addr),
			Container: isContainer,
		})
	}

	if jsonOut {
		result := map[string]interface{}{
			"bundle":     bundlePath,
			"base":       fmt.Sprintf("0x%x", b.Image.Base()),
			"size":       len(b.Image.Bytes()),
			"types":      len(b.Image.TypeNames()),
			"variables":  vars,
			"containers": containers,
		}
		return printJSON(result)
	}

	printInfo("\nBundle Information:\n")
	printInfo("  File: %s\n", bundlePath)
	printInfo("  Memory: 0x%x, %d bytes\n", b.Image.Base(), len(b.Image.Bytes()))
	printInfo("  Types: %d\n", len(b.Image.TypeNames()))
	printInfo("  Variables: %d (%d containers)\n", len(vars), containers)

	printInfo("\nVariables:\n")
	for _, v := range vars {
		marker := " "
		if v.Container {
			marker = "*"
		}
		printInfo("  %s %s %s @ %s\n", marker, v.Name, v.Type, v.Addr)
	}
	if containers > 0 {
		printInfo("\n(* = recognized container, see 'swissctl dump')\n")
	}

	return nil
}
