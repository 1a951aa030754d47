package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/decimalog/cmd"
	"github.com/thoreinstein/decimalog/internal/paths"
)

var (
	genDocDir    string
	genDocFormat string
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate reference documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		if genDocDir == "" {
			return errors.New("output directory is required")
		}

		if err := paths.EnsureDir(genDocDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}

		var err error
		switch genDocFormat {
		case "markdown", "md":
			err = doc.GenMarkdownTreeCustom(rootCmd, genDocDir, filePrepender, linkHandler)
		case "man":
			err = doc.GenManTree(rootCmd, &doc.GenManHeader{
				Title:   "DECIMALOG",
				Section: "1",
				Source:  "decimalog " + cmd.Version,
			}, genDocDir)
		default:
			return errors.Newf("unsupported format %q (use markdown or man)", genDocFormat)
		}
		if err != nil {
			return errors.Wrapf(err, "generating %s", genDocFormat)
		}

		fmt.Fprintf(c.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "output directory for documentation")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "markdown", "output format: markdown, man")
	rootCmd.AddCommand(genDocCmd)
}

// filePrepender adds front matter titled after the command path, so
// decimalog_config_set.md becomes "decimalog config set".
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	title := strings.ReplaceAll(strings.TrimSuffix(name, filepath.Ext(name)), "_", " ")

	return fmt.Sprintf(`---
title: "%s"
description: "Reference for %s"
---
`, title, title)
}

func linkHandler(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return "/docs/reference/" + strings.ToLower(base) + "/"
}
