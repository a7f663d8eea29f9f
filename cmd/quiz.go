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
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eslsoft/lexrev/internal/app"
	"github.com/eslsoft/lexrev/internal/entity"
	"github.com/eslsoft/lexrev/internal/usecase"
)

// quizCmd represents the quiz command
var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Run an interactive review session to mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		listID, _ := cmd.Flags().GetInt64("list")
		modeName, _ := cmd.Flags().GetString("mode")
		limit, _ := cmd.Flags().GetInt("size")

		mode, err := entity.ParseQuizMode(modeName)
		if err != nil {
			return err
		}

		c, cleanup, err := app.Initialize()
		if err != nil {
			return err
		}
		defer cleanup()

		if limit <= 0 {
			limit = c.Config.Quiz.BatchSize
		}

		items, err := c.Review.BuildSample(ctx, listID, limit, time.Now())
		if err != nil {
			return fmt.Errorf("build sample: %w", err)
		}
		if len(items) == 0 {
			fmt.Println("The list has no items to study. Import some first.")
			return nil
		}

		session := c.NewSession()
		if err := session.Start(items, listID, mode); err != nil {
			return err
		}

		c.Logger.WithField("items", len(items)).WithField("mode", mode.String()).Info("session started")
		reader := bufio.NewReader(os.Stdin)
		if err := runQuizLoop(ctx, session, items, mode, reader); err != nil {
			return err
		}

		rec, err := session.Finish(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("\nDone! %d/%d correct on first attempt, %d answer(s) in %s.\n",
			rec.FirstAttemptCorrect, rec.TotalItems, len(rec.Answers), rec.Duration.Round(time.Second))
		return nil
	},
}

func runQuizLoop(ctx context.Context, session *usecase.LearningSession, items []entity.VocabularyItem, mode entity.QuizMode, reader *bufio.Reader) error {
	for !session.IsComplete() {
		current, err := session.Current()
		if err != nil {
			return err
		}

		var progress entity.WordProgress
		switch mode {
		case entity.ModeFlashcard:
			progress, err = askFlashcard(ctx, session, current, reader)
		case entity.ModeMultipleChoice:
			progress, err = askMultipleChoice(ctx, session, current, items, reader)
		case entity.ModeReverse:
			progress, err = askReverse(ctx, session, current, reader)
		default:
			return entity.ErrInvalidMode
		}
		if err != nil {
			return err
		}

		if progress.State == entity.WordGraduated {
			fmt.Printf("  ✓ %q mastered for today (%d left)\n\n", progress.Item.Text, session.Remaining())
		} else {
			fmt.Printf("  → %q comes back later\n\n", progress.Item.Text)
		}
	}
	return nil
}

func askFlashcard(ctx context.Context, session *usecase.LearningSession, current entity.WordProgress, reader *bufio.Reader) (entity.WordProgress, error) {
	fmt.Printf("%s\n(press enter to reveal)", current.Item.Text)
	if _, err := reader.ReadString('\n'); err != nil {
		return entity.WordProgress{}, err
	}
	fmt.Printf("= %s\n", current.Item.Translation)

	bucket, err := readBucket(reader)
	if err != nil {
		return entity.WordProgress{}, err
	}
	return session.SubmitBucket(ctx, bucket)
}

func askMultipleChoice(ctx context.Context, session *usecase.LearningSession, current entity.WordProgress, items []entity.VocabularyItem, reader *bufio.Reader) (entity.WordProgress, error) {
	options := buildOptions(current.Item, items, 4)
	fmt.Println(current.Item.Text)
	for i, option := range options {
		fmt.Printf("  %d) %s\n", i+1, option)
	}

	choice := 0
	for choice < 1 || choice > len(options) {
		fmt.Printf("answer [1-%d]: ", len(options))
		line, err := reader.ReadString('\n')
		if err != nil {
			return entity.WordProgress{}, err
		}
		fmt.Sscanf(strings.TrimSpace(line), "%d", &choice)
	}
	return session.SubmitChoice(ctx, options[choice-1])
}

func askReverse(ctx context.Context, session *usecase.LearningSession, current entity.WordProgress, reader *bufio.Reader) (entity.WordProgress, error) {
	fmt.Printf("%s\nword: ", current.Item.Translation)
	line, err := reader.ReadString('\n')
	if err != nil {
		return entity.WordProgress{}, err
	}
	answer := strings.TrimSpace(line)
	progress, err := session.SubmitChoice(ctx, answer)
	if err != nil {
		return entity.WordProgress{}, err
	}
	if !progress.LastGrade.Passed() {
		fmt.Printf("  correct answer: %s\n", current.Item.Text)
	}
	return progress, nil
}

func readBucket(reader *bufio.Reader) (entity.AnswerBucket, error) {
	for {
		fmt.Print("1) didn't know  2) not sure  3) knew it: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, err
		}
		switch strings.TrimSpace(line) {
		case "1":
			return entity.BucketUnknown, nil
		case "2":
			return entity.BucketUnsure, nil
		case "3":
			return entity.BucketKnown, nil
		}
	}
}

// buildOptions shuffles the correct translation among distractors drawn
// from the same sample.
func buildOptions(correct entity.VocabularyItem, items []entity.VocabularyItem, count int) []string {
	options := []string{correct.Translation}
	for _, idx := range rand.Perm(len(items)) {
		candidate := items[idx]
		if candidate.ID == correct.ID || candidate.Translation == correct.Translation {
			continue
		}
		options = append(options, candidate.Translation)
		if len(options) == count {
			break
		}
	}
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

func init() {
	rootCmd.AddCommand(quizCmd)

	quizCmd.Flags().Int64P("list", "l", 1, "word list to study")
	quizCmd.Flags().StringP("mode", "m", "flashcard", "quiz mode: flashcard, multiple_choice or reverse")
	quizCmd.Flags().IntP("size", "n", 0, "number of items to sample (0 = configured batch size)")
}
