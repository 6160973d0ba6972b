// Command seedgen is the CLI entrypoint for the Ori and the Will of the
// Wisps randomizer logic/seed engine: it wires pkg/logiclang,
// pkg/seedcompile, pkg/simulate, pkg/visualize, and pkg/export together the
// way spec.md §6 reserves to "the external CLI". It does not implement
// placement (forward-filling item assignments) — that remains the
// out-of-scope driver spec.md names; seedgen only runs the engine this repo
// specifies and renders its output.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/oriwisp/seedgen/pkg/config"
	"github.com/oriwisp/seedgen/pkg/export"
	"github.com/oriwisp/seedgen/pkg/worldsettings"
)

const version = "0.1.0"

func main() {
	defaults := config.Load()
	logger := config.Logger(defaults)
	slog.SetDefault(logger)

	root := newRootCmd(defaults)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(defaults config.Defaults) *cobra.Command {
	var outputDir, areasPath, snippetsDir, entrySnippet string
	var verbose bool

	root := &cobra.Command{
		Use:     "seedgen",
		Short:   "Ori and the Will of the Wisps randomizer logic/seed engine",
		Version: version,
	}
	root.PersistentFlags().StringVar(&outputDir, "output", defaults.OutputDir, "Output directory for generated artifacts")
	root.PersistentFlags().StringVar(&areasPath, "areas", "areas.wotw", "Path to the Logic DSL source file")
	root.PersistentFlags().StringVar(&snippetsDir, "snippets-dir", "snippets", "Directory of .wotws Seed DSL snippet files")
	root.PersistentFlags().StringVar(&entrySnippet, "entry", "", "Entry snippet name (default: each world's first configured snippet)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", defaults.Verbose, "Enable verbose logging")

	inputs := func(universePath string) pipelineInputs {
		return pipelineInputs{
			UniversePath: universePath,
			AreasPath:    areasPath,
			SnippetsDir:  snippetsDir,
			EntrySnippet: entrySnippet,
		}
	}

	root.AddCommand(
		compileCmd(&outputDir, inputs, &verbose),
		validateCmd(),
		visualizeCmd(&outputDir, inputs),
		exportJSONCmd(&outputDir, inputs),
		simulateCmd(inputs),
	)
	return root
}

func compileCmd(outputDir *string, inputs func(string) pipelineInputs, verbose *bool) *cobra.Command {
	var watch bool
	var debounceMillis int
	cmd := &cobra.Command{
		Use:   "compile <universe>",
		Short: "Compile the logic graph and seed DSL snippets for every world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := inputs(args[0])
			run := func() error {
				_, results, err := runPipeline(in)
				if err != nil {
					return err
				}
				for _, wr := range results {
					if *verbose {
						slog.Info("compiled world",
							slog.Int("world", wr.WorldIndex),
							slog.Int("reached_nodes", len(wr.Reached)),
							slog.Int("total_nodes", len(wr.Graph.Nodes)))
					}
					if err := writeArtifacts(*outputDir, wr, false, false, export.SVGOptions{}); err != nil {
						return err
					}
				}
				return nil
			}
			if !watch {
				return run()
			}
			return watchAndCompile(slog.Default(), in, *outputDir, time.Duration(debounceMillis)*time.Millisecond, run)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "Recompile on every logic/snippet file change")
	cmd.Flags().IntVar(&debounceMillis, "debounce-ms", 200, "Debounce window for --watch, in milliseconds")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <universe>",
		Short: "Load and validate a universe settings preset without compiling anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := worldsettings.LoadUniverse(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("valid: %d world(s), seed=%q\n", len(u.WorldSettings), u.Seed)
			return nil
		},
	}
}

func visualizeCmd(outputDir *string, inputs func(string) pipelineInputs) *cobra.Command {
	return &cobra.Command{
		Use:   "visualize <universe>",
		Short: "Compile the logic graph and render it to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := inputs(args[0])
			_, results, err := runPipeline(in)
			if err != nil {
				return err
			}
			for _, wr := range results {
				if err := writeSVG(*outputDir, wr, export.DefaultSVGOptions()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func exportJSONCmd(outputDir *string, inputs func(string) pipelineInputs) *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "export-json <universe>",
		Short: "Compile and export the compiled artifact as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := inputs(args[0])
			_, results, err := runPipeline(in)
			if err != nil {
				return err
			}
			for _, wr := range results {
				if err := writeArtifacts(*outputDir, wr, compact, false, export.SVGOptions{}); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "Emit compact JSON instead of indented")
	return cmd
}

func simulateCmd(inputs func(string) pipelineInputs) *cobra.Command {
	var clientEvent string
	cmd := &cobra.Command{
		Use:   "simulate <universe>",
		Short: "Compile every world, dispatch a client event, and report reachability deltas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := inputs(args[0])
			_, results, err := runPipeline(in)
			if err != nil {
				return err
			}
			for _, wr := range results {
				if wr.Interp == nil {
					continue
				}
				before := len(wr.Reached)
				if clientEvent != "" {
					wr.Interp.DispatchClientEvent(clientEvent)
				}
				after := len(wr.Graph.Reachable())
				fmt.Printf("world %d: reached %d -> %d nodes\n", wr.WorldIndex, before, after)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&clientEvent, "event", "", "Client event name to dispatch before reporting reachability")
	return cmd
}
