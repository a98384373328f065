package cli

import (
	"github.com/spf13/cobra"
)

func newComputeCmd(a *app) *cobra.Command {
	var (
		templatePath string
		width        float64
		height       float64
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute pixel and millimeter photo placement for a template",
		Example: `  card-overlay compute --template classic.json --width 54 --height 86
  card-overlay compute --template classic.json --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tpl, err := loadTemplate(templatePath)
			if err != nil {
				return err
			}

			w, h := a.cardSize(cmd, width, height)
			params, err := a.overlay(cmd.ErrOrStderr()).ComputeOverlay(tpl, w, h)
			if err != nil {
				return err
			}
			return printOverlay(cmd.OutOrStdout(), tpl.Name, params, asJSON)
		},
	}

	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "template JSON file (defaults apply when omitted)")
	cmd.Flags().Float64Var(&width, "width", 0, "card width in millimeters (config card.width_mm)")
	cmd.Flags().Float64Var(&height, "height", 0, "card height in millimeters (config card.height_mm)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
