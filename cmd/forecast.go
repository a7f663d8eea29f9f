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
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lexrev/internal/app"
)

// forecastCmd represents the forecast command
var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show upcoming review load per day",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		c, cleanup, err := app.Initialize()
		if err != nil {
			return err
		}
		defer cleanup()

		now := time.Now()
		counts, err := c.Review.Forecast(cmd.Context(), now, days)
		if err != nil {
			return fmt.Errorf("forecast: %w", err)
		}

		for i, count := range counts {
			day := now.AddDate(0, 0, i)
			label := day.Format("Mon 02 Jan")
			if i == 0 {
				label = "Today"
			}
			fmt.Printf("%-12s %3d %s\n", label, count, strings.Repeat("#", count))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(forecastCmd)

	forecastCmd.Flags().IntP("days", "d", 7, "forecast horizon in days")
}
