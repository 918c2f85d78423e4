package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gravitas-015/hexplane/pkg/hex"
)

// NewLocateCommand creates the locate command.
func NewLocateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "locate <x> <y>",
		Short: "Find the hexagon containing a world point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocate(rootOpts, args, cmd)
		},
	}
}

func runLocate(opts *RootOptions, args []string, cmd *cobra.Command) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q: %w", args[0], err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid coordinate %q: %w", args[1], err)
	}

	// ParseFloat accepts "NaN" and "Inf"; the mapping rejects them.
	a, err := hex.WorldToAddress(hex.WorldPoint{X: x, Y: y})
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		out := struct {
			I int64 `json:"i"`
			J int64 `json:"j"`
		}{a.I, a.J}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", a.I, a.J)
	return err
}
