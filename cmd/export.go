/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lexrev/internal/app"
	"github.com/eslsoft/lexrev/internal/exporter"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export a word list with its review state to a workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listID, _ := cmd.Flags().GetInt64("list")

		c, cleanup, err := app.Initialize()
		if err != nil {
			return err
		}
		defer cleanup()

		n, err := exporter.New(c.Vocab, c.Records).ExportList(cmd.Context(), listID, args[0])
		if err != nil {
			return err
		}

		c.Logger.WithField("file", args[0]).WithField("items", n).Info("export finished")
		fmt.Printf("Exported %d item(s) to %s.\n", n, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Int64P("list", "l", 1, "word list to export")
}
