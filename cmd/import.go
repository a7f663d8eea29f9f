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
	"github.com/eslsoft/lexrev/internal/importer"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import vocabulary from an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		listName, _ := cmd.Flags().GetString("list")
		sheet, _ := cmd.Flags().GetString("sheet")

		c, cleanup, err := app.Initialize()
		if err != nil {
			return err
		}
		defer cleanup()

		opts := importer.DefaultOptions()
		if sheet != "" {
			opts.SheetName = sheet
		}

		result, err := importer.New(c.Vocab).ImportFile(ctx, args[0], listName, opts)
		if err != nil {
			return err
		}

		c.Logger.WithField("file", args[0]).WithField("created", result.Created).Info("import finished")
		fmt.Printf("Processed %d row(s): %d created, %d skipped.\n",
			result.TotalProcessed, result.Created, result.Skipped)
		for _, rowErr := range result.Errors {
			fmt.Printf("  ! %s\n", rowErr)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("list", "l", "default", "word list to import into")
	importCmd.Flags().StringP("sheet", "s", "", "worksheet name (default: first sheet)")
}
