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

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study streaks, accuracy and time spent",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		window, _ := cmd.Flags().GetInt("window")

		c, cleanup, err := app.Initialize()
		if err != nil {
			return err
		}
		defer cleanup()

		now := time.Now()
		streaks, err := c.Stats.Streaks(ctx, now)
		if err != nil {
			return err
		}
		accuracy, err := c.Stats.Accuracy(ctx, now, window)
		if err != nil {
			return err
		}
		dist, err := c.Stats.QualityDistribution(ctx, now, window)
		if err != nil {
			return err
		}
		study, err := c.Stats.StudyTime(ctx, now, window)
		if err != nil {
			return err
		}

		fmt.Printf("Current streak:  %d day(s)\n", streaks.Current)
		fmt.Printf("Longest streak:  %d day(s)\n", streaks.Longest)
		if streaks.LastStudyDate != nil {
			fmt.Printf("Last studied:    %s\n", streaks.LastStudyDate.Format("2006-01-02"))
		}

		answers := 0
		for _, day := range accuracy.Daily {
			answers += day.Total
		}
		fmt.Printf("\nLast %d day(s):\n", window)
		fmt.Printf("Accuracy:        %.1f%% (%d answer(s))\n", accuracy.OverallPct, answers)
		fmt.Printf("Time studied:    %s total, %s per session\n",
			study.Total.Round(time.Second), study.PerSession.Round(time.Second))

		fmt.Println("\nGrade distribution:")
		max := 1
		for _, n := range dist {
			if n > max {
				max = n
			}
		}
		for grade := len(dist) - 1; grade >= 0; grade-- {
			bar := strings.Repeat("#", dist[grade]*40/max)
			fmt.Printf("  %d | %-40s %d\n", grade, bar, dist[grade])
		}

		fmt.Println("\nDaily accuracy:")
		for _, day := range accuracy.Daily {
			if day.Total == 0 {
				fmt.Printf("  %s      -\n", day.Day.Format("2006-01-02"))
				continue
			}
			fmt.Printf("  %s  %5.1f%% (%d/%d)\n",
				day.Day.Format("2006-01-02"), 100*float64(day.Correct)/float64(day.Total), day.Correct, day.Total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().IntP("window", "w", 7, "number of days to report on")
}
