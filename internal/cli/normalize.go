package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ouz-a/tern/internal/diagnostics"
	"github.com/ouz-a/tern/internal/fixture"
	"github.com/ouz-a/tern/internal/mir"
)

// NewNormalizeCommand creates the normalize command: run deref splitting on
// a fixture body and print the result.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	var verify bool
	var dumpTracker bool
	var outPath string

	cmd := &cobra.Command{
		Use:   "normalize <body.yaml>",
		Short: "Split embedded deref projections in a fixture body",
		Long: `Load a YAML body fixture, run the deref-splitting pass on it and print
the body before and after. Every place in the output has at most one deref
projection, at the front.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(rootOpts, cmd, args[0], verify, dumpTracker, outPath)
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "check the leading-deref invariant after the pass")
	cmd.Flags().BoolVar(&dumpTracker, "dump-tracker", false, "print the deref tracker side table")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "also write the normalized dump to a file")

	return cmd
}

func runNormalize(opts *RootOptions, cmd *cobra.Command, path string, verify, dumpTracker bool, outPath string) error {
	body, err := fixture.LoadBody(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.Verbose {
		fmt.Fprintf(out, "// before\n%s\n", mir.FormatBody(body))
	}

	bag := diagnostics.NewDiagnosticBag()
	ctx := mir.NewPassContext(bag)
	tracker := mir.SplitDerefs(ctx, body)

	if verify {
		mir.ValidateDerefs(ctx, body)
	}

	fmt.Fprintf(out, "%s", mir.FormatBody(body))

	if dumpTracker {
		fmt.Fprintf(out, "\n// tracker (%d temps)\n", tracker.Len())
		for _, temp := range tracker.Temps() {
			origin, _ := tracker.Origin(temp)
			fmt.Fprintf(out, "_%d <- %s\n", temp, origin)
		}
	}

	if outPath != "" {
		if err := mir.WriteBodyFile(body, outPath); err != nil {
			return fmt.Errorf("write dump: %w", err)
		}
	}

	return nil
}
