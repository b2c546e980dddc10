package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ouz-a/tern/internal/diagnostics"
	"github.com/ouz-a/tern/internal/fixture"
	"github.com/ouz-a/tern/internal/mir"
)

// NewMovesCommand creates the moves command: print the move accounting of
// a fixture body, optionally after deref splitting.
func NewMovesCommand(rootOpts *RootOptions) *cobra.Command {
	var split bool

	cmd := &cobra.Command{
		Use:   "moves <body.yaml>",
		Short: "Print the moved and copied places of a fixture body",
		Long: `Load a YAML body fixture and print its move accounting: every place the
body consumes (moves, drops) and every place it copies.

With --split the body is deref-split first and places are canonicalized
through the tracker; the printed sets must match the unsplit run.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMoves(rootOpts, cmd, args[0], split)
		},
	}

	cmd.Flags().BoolVar(&split, "split", false, "run deref splitting before gathering moves")

	return cmd
}

func runMoves(opts *RootOptions, cmd *cobra.Command, path string, split bool) error {
	body, err := fixture.LoadBody(path)
	if err != nil {
		return err
	}

	bag := diagnostics.NewDiagnosticBag()
	ctx := mir.NewPassContext(bag)

	var tracker *mir.DerefTracker
	if split {
		tracker = mir.SplitDerefs(ctx, body)
		if opts.Verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "split %d embedded derefs\n", tracker.Len())
		}
	}

	data := mir.GatherMoves(ctx, body, tracker)
	printMoves(cmd.OutOrStdout(), data)
	return nil
}

func printMoves(w io.Writer, data *mir.MoveData) {
	fmt.Fprintf(w, "moved (%d):\n", len(data.Moved))
	for _, p := range data.Moved {
		fmt.Fprintf(w, "  %s\n", p)
	}
	fmt.Fprintf(w, "copied (%d):\n", len(data.Copied))
	for _, p := range data.Copied {
		fmt.Fprintf(w, "  %s\n", p)
	}
}
