package cli

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/menta2k/card-overlay/internal/utils"
)

// imageMediaTypes maps image file extensions to their data URL media type
var imageMediaTypes = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"webp": "image/webp",
}

func newVerifyCmd(a *app) *cobra.Command {
	var (
		name         string
		photo        string
		templateName string
		decode       bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Report on the photo source a card would be exported with",
		Example: `  card-overlay verify --name Alice --payload @photo.txt --template-name Classic
  card-overlay verify --name Bob --payload @photo.png --decode
  card-overlay verify --name Carol --payload https://example.com/photo.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(photo)
			if err != nil {
				return err
			}
			if decode {
				a.cfg.Verify.DecodePayload = true
			}

			a.overlay(cmd.OutOrStdout()).VerifySource(name, payload, templateName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "display name of the card subject")
	cmd.Flags().StringVarP(&photo, "payload", "p", "", "photo payload, or @file to read it from a text or image file")
	cmd.Flags().StringVar(&templateName, "template-name", "", "template name shown in the report")
	cmd.Flags().BoolVar(&decode, "decode", false, "decode the embedded image header")
	return cmd
}

// readPayload returns arg, or the payload read from path when arg is @path.
// Image files are embedded as a base64 data URL, anything else is read as
// the payload text.
func readPayload(arg string) (string, error) {
	path, ok := strings.CutPrefix(arg, "@")
	if !ok {
		return arg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read payload file: %w", err)
	}
	if mediaType, ok := imageMediaTypes[utils.GetFileExtension(path)]; ok {
		return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
	}
	return strings.TrimSpace(string(data)), nil
}
