package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/menta2k/card-overlay/internal/log"
	"github.com/menta2k/card-overlay/internal/utils"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		templatePath string
		outDir       string
		format       string
		width        float64
		height       float64
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render a debug image of the card with the photo box outlined",
		Example: `  card-overlay preview --template classic.json --out ./output --format webp`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := loadTemplate(templatePath)
			if err != nil {
				return err
			}

			p := a.cfg.Preview
			if cmd.Flags().Changed("out") {
				p.OutputDir = outDir
			}
			if cmd.Flags().Changed("format") {
				p.Format = format
			}
			if err := utils.EnsureDir(p.OutputDir); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			input := templatePath
			if input == "" {
				input = tpl.Name
			}
			path := utils.GenerateOutputFilename(input, p.OutputDir, p.Prefix, p.Suffix, p.Format)

			w, h := a.cardSize(cmd, width, height)
			params, err := a.overlay(cmd.ErrOrStderr()).SavePreview(tpl, w, h, path, p.Format, p.Quality, p.Lossless)
			if err != nil {
				return err
			}

			log.Debugf("preview for %s written to %s", tpl.Name, path)
			if err := printOverlay(cmd.OutOrStdout(), tpl.Name, params, false); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), fmt.Sprintf("wrote %s", path))
			return nil
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "template JSON file (defaults apply when omitted)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (config preview.output_dir)")
	cmd.Flags().StringVar(&format, "format", "", "png|jpg|webp (config preview.format)")
	cmd.Flags().Float64Var(&width, "width", 0, "card width in millimeters (config card.width_mm)")
	cmd.Flags().Float64Var(&height, "height", 0, "card height in millimeters (config card.height_mm)")
	return cmd
}
