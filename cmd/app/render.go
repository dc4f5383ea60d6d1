package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"AstroChart/internal/di"
	"AstroChart/internal/services/payload"
	"AstroChart/pkg/config"
)

// maxPayloadBytes caps the payload read from disk or stdin.
const maxPayloadBytes = 1 << 20

type renderOptions struct {
	in         string
	out        string
	configPath string
}

// newRenderCommand draws a wheel from a saved model payload without calling
// the model. "-" selects stdin or stdout.
func newRenderCommand() *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a chart SVG from a saved JSON payload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.in, "in", "-", "payload JSON file")
	cmd.Flags().StringVar(&opts.out, "out", "-", "SVG output file")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "optional config file for the chart layout")
	return cmd
}

func runRender(stdin io.Reader, stdout io.Writer, opts renderOptions) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	var src io.Reader = stdin
	if opts.in != "-" {
		f, err := os.Open(opts.in)
		if err != nil {
			return fmt.Errorf("open payload: %w", err)
		}
		defer f.Close()
		src = f
	}
	raw, err := io.ReadAll(io.LimitReader(src, maxPayloadBytes+1))
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}
	if len(raw) > maxPayloadBytes {
		return fmt.Errorf("payload exceeds %d bytes", maxPayloadBytes)
	}

	snap, err := payload.Parse(raw)
	if err != nil {
		return err
	}
	svg, err := di.InitializeRenderer(cfg).RenderBytes(snap)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if opts.out == "-" {
		_, err = stdout.Write(svg)
		return err
	}
	return os.WriteFile(opts.out, svg, 0o644)
}
