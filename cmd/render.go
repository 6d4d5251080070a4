// File: cmd/render.go
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/quill/internal/browser"
	"github.com/xkilldash9x/quill/internal/observability"
	"github.com/xkilldash9x/quill/internal/rendertree"
)

// newRenderCmd creates and configures the `render` command.
func newRenderCmd() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Builds the render tree for a markup document",
		Long: `Parses a markup document, resolves its stylesheet and prints the
resulting render tree. The stylesheet comes from the document's first
<style> element unless --css supplies one externally. Pass "-" (or no
argument) to read the document from stdin.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags so they override config file and env values.
			if err := viper.BindPFlag("render.format", cmd.Flags().Lookup("format")); err != nil {
				return err
			}
			return viper.BindPFlag("parser.recovery", cmd.Flags().Lookup("recover"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			document, err := readInput(source)
			if err != nil {
				return fmt.Errorf("reading document: %w", err)
			}

			var opts []browser.Option
			if viper.GetBool("parser.recovery") {
				opts = append(opts, browser.WithRuleRecovery())
			}
			pipeline := browser.NewPipeline(opts...)

			cssFile, err := cmd.Flags().GetString("css")
			if err != nil {
				return err
			}

			var tree *rendertree.RenderObject
			if cssFile != "" {
				css, err := readInput(cssFile)
				if err != nil {
					return fmt.Errorf("reading stylesheet: %w", err)
				}
				tree, err = pipeline.RenderWithStylesheet(document, css)
				if err != nil {
					return err
				}
			} else {
				tree, err = pipeline.Render(document)
				if err != nil {
					return err
				}
			}

			if tree == nil {
				logger.Warn("nothing to render", zap.String("source", source))
				return nil
			}

			switch format := viper.GetString("render.format"); format {
			case "json":
				out, err := tree.EncodeJSON()
				if err != nil {
					return fmt.Errorf("encoding render tree: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			case "tree":
				fmt.Fprint(cmd.OutOrStdout(), tree.String())
			default:
				return fmt.Errorf("unknown output format %q", format)
			}
			return nil
		},
	}

	renderCmd.Flags().String("css", "", "stylesheet file overriding the document's <style> element")
	renderCmd.Flags().String("format", "tree", "output format: tree or json")
	renderCmd.Flags().Bool("recover", false, "skip malformed stylesheet rules instead of failing")

	return renderCmd
}

// readInput returns the contents of path, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func init() {
	rootCmd.AddCommand(newRenderCmd())
}
