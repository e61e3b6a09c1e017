package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/probeops/swisskit/pkg/memimage"
)

var typesFilter string

func init() {
	cmd := newTypesCmd()
	cmd.Flags().StringVar(&typesFilter, "filter", "", "Show only type names containing this substring")
	rootCmd.AddCommand(cmd)
}

func newTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types <bundle.json>",
		Short: "List the type layouts a bundle carries",
		Long: `The types command lists every type name registered in a capture
bundle, which is useful for diagnosing version-namespace mismatches: if dump
fails to resolve a container, the bundle's actual spellings are here.

Example:
  swissctl types capture.json
  swissctl types capture.json --filter hash_set`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes(args)
		},
	}
	return cmd
}

func runTypes(args []string) error {
	bundlePath := args[0]

	b, err := memimage.LoadBundle(bundlePath)
	if err != nil {
		return fmt.Errorf("failed to load bundle: %w", err)
	}
	defer b.Close()

	names := b.Image.TypeNames()
	if typesFilter != "" {
		kept := names[:0]
		for _, name := range names {
			if strings.Contains(name, typesFilter) {
				kept = append(kept, name)
			}
		}
		names = kept
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"bundle": bundlePath,
			"types":  names,
		})
	}

	for _, name := range names {
		printInfo("%s\n", name)
	}
	return nil
}
