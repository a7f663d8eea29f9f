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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"

	"github.com/eslsoft/lexrev/internal/app"
)

// remindCmd represents the remind command
var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the daily review reminder in the foreground",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, cleanup, err := app.Initialize()
		if err != nil {
			return err
		}
		defer cleanup()

		scheduler := gocron.NewScheduler(time.Local)
		at := fmt.Sprintf("%02d:00", c.Config.Remind.Hour)
		_, err = scheduler.Every(1).Day().At(at).Do(func() {
			reportDue(context.Background(), c)
		})
		if err != nil {
			return fmt.Errorf("schedule reminder: %w", err)
		}

		c.Logger.WithField("at", at).Info("reminder scheduled, press ctrl-c to stop")
		scheduler.StartAsync()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		scheduler.Stop()
		c.Logger.Info("reminder stopped")
		return nil
	},
}

func reportDue(ctx context.Context, c *app.Container) {
	now := time.Now()
	due, err := c.Review.SelectDue(ctx, now)
	if err != nil {
		c.Logger.WithError(err).Error("reminder: select due items")
		return
	}
	forecast, err := c.Review.Forecast(ctx, now, c.Config.Remind.ForecastDays)
	if err != nil {
		c.Logger.WithError(err).Error("reminder: forecast")
		return
	}

	upcoming := 0
	for day, n := range forecast {
		if day > 0 {
			upcoming += n
		}
	}
	c.Logger.WithField("due", len(due)).
		WithField("upcoming", upcoming).
		Info("time to review")
}

func init() {
	rootCmd.AddCommand(remindCmd)
}
