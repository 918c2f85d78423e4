package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gravitas-015/hexplane/pkg/hex"
)

// NewOriginCommand creates the origin command.
func NewOriginCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "origin <i> <j>",
		Short: "Map a hexagon address to its world origin",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrigin(rootOpts, args, cmd)
		},
	}
}

func runOrigin(opts *RootOptions, args []string, cmd *cobra.Command) error {
	i, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid address component %q: %w", args[0], err)
	}
	j, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid address component %q: %w", args[1], err)
	}

	p, err := hex.AddressToWorld(hex.Address{I: i, J: j})
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		out := struct {
			X float64 `json:"x"`
			Y float64 `json:"y"`
		}{p.X, p.Y}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%g %g\n", p.X, p.Y)
	return err
}
