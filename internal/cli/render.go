package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitas-015/hexplane/internal/config"
	"github.com/gravitas-015/hexplane/internal/render"
	"github.com/gravitas-015/hexplane/pkg/hex"
	"github.com/gravitas-015/hexplane/pkg/hexcolor"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	ConfigPath string
	Output     string

	IMin, IMax int64
	JMin, JMax int64
	Disk       string // "i,j,radius"
	Size       float64
	Mode       string
	Scheme     string
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an address range of the grid as SVG",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path (default stdout)")
	cmd.Flags().Int64Var(&opts.IMin, "i-min", 0, "first column of the address range")
	cmd.Flags().Int64Var(&opts.IMax, "i-max", 11, "last column of the address range")
	cmd.Flags().Int64Var(&opts.JMin, "j-min", 0, "first row of the address range")
	cmd.Flags().Int64Var(&opts.JMax, "j-max", 11, "last row of the address range")
	cmd.Flags().StringVar(&opts.Disk, "disk", "", "disk region \"i,j,radius\" instead of a rectangle")
	cmd.Flags().Float64Var(&opts.Size, "size", 0, "world-to-output scale")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", "color mode (palette|hash)")
	cmd.Flags().StringVar(&opts.Scheme, "scheme", "", "colorscheme JSON path")

	return cmd
}

func runRender(opts *RenderOptions, cmd *cobra.Command) error {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags set on the command line win over the config file.
	flags := cmd.Flags()
	if flags.Changed("i-min") {
		cfg.Render.IMin = opts.IMin
	}
	if flags.Changed("i-max") {
		cfg.Render.IMax = opts.IMax
	}
	if flags.Changed("j-min") {
		cfg.Render.JMin = opts.JMin
	}
	if flags.Changed("j-max") {
		cfg.Render.JMax = opts.JMax
	}
	if flags.Changed("size") {
		cfg.Render.Size = opts.Size
	}
	if flags.Changed("mode") {
		cfg.Render.Mode = opts.Mode
	}
	if flags.Changed("scheme") {
		cfg.Render.Scheme = opts.Scheme
	}

	scheme := hexcolor.DefaultScheme()
	if cfg.Render.Scheme != "" {
		loaded, err := hexcolor.LoadScheme(cfg.Render.Scheme)
		if err != nil {
			return err
		}
		scheme = loaded
	}

	region := render.RectRegion(cfg.Render.IMin, cfg.Render.IMax, cfg.Render.JMin, cfg.Render.JMax)
	if opts.Disk != "" {
		var err error
		region, err = parseDiskRegion(opts.Disk)
		if err != nil {
			return err
		}
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.Output != "" && opts.Output != "-" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	renderer := render.New(render.Options{
		Size:   cfg.Render.Size,
		Mode:   cfg.Render.Mode,
		Scheme: scheme,
	})
	if err := renderer.Render(w, region); err != nil {
		return err
	}

	if opts.Verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "rendered %d hexagons\n", len(region.Addresses()))
	}
	return nil
}

func parseDiskRegion(spec string) (render.Region, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return render.Region{}, fmt.Errorf("invalid disk %q: want \"i,j,radius\"", spec)
	}
	i, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return render.Region{}, fmt.Errorf("invalid disk center %q: %w", parts[0], err)
	}
	j, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return render.Region{}, fmt.Errorf("invalid disk center %q: %w", parts[1], err)
	}
	radius, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || radius < 0 {
		return render.Region{}, fmt.Errorf("invalid disk radius %q", parts[2])
	}
	return render.DiskRegion(hex.Address{I: i, J: j}, radius), nil
}
