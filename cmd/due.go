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
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lexrev/internal/app"
	"github.com/eslsoft/lexrev/internal/srs"
)

// dueCmd represents the due command
var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List items due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		c, cleanup, err := app.Initialize()
		if err != nil {
			return err
		}
		defer cleanup()

		now := time.Now()
		ids, err := c.Review.SelectDue(ctx, now)
		if err != nil {
			return fmt.Errorf("select due items: %w", err)
		}
		if len(ids) == 0 {
			fmt.Println("Nothing due. Come back later.")
			return nil
		}

		fmt.Printf("%d item(s) due:\n", len(ids))
		for _, id := range ids {
			item, err := c.Vocab.GetByID(ctx, id)
			if err != nil {
				return err
			}
			rec, err := c.Records.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("  %-20s %-20s familiarity %d/5\n", item.Text, item.Translation, srs.Classify(rec.Ease))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dueCmd)
}
