// Package console plays quizzes in a terminal with a per-question countdown.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize/english"

	"quiz-timer-service/internal/app"
	"quiz-timer-service/internal/domain"
)

var errInputClosed = errors.New("input closed")

var presets = map[int]int{1: 5, 2: 10, 3: 15}

type Config struct {
	// TimeLimit overrides each question's own limit when positive.
	TimeLimit time.Duration
}

type console struct {
	service *app.QuizService
	out     io.Writer
	lines   <-chan string
	cfg     Config
}

// Run drives the menu until the user exits, input ends, or ctx is cancelled.
func Run(ctx context.Context, service *app.QuizService, in io.Reader, out io.Writer, cfg Config) error {
	if service.TotalQuestions() == 0 {
		return domain.ErrEmptyBank
	}
	c := &console{
		service: service,
		out:     out,
		lines:   readLines(ctx, in),
		cfg:     cfg,
	}

	fmt.Fprintln(out, "Welcome to Quiz Generator Console Edition!")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Loaded %s\n\n", english.Plural(service.TotalQuestions(), "question", ""))

	err := c.menu(ctx)
	if errors.Is(err, errInputClosed) {
		fmt.Fprintln(out, "\nInput closed. Goodbye!")
		return nil
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, "\nInterrupted. Goodbye!")
		return nil
	}
	return err
}

func (c *console) menu(ctx context.Context) error {
	for {
		fmt.Fprintln(c.out, "Choose an option:")
		fmt.Fprintln(c.out, "1. Quick Quiz (5 questions)")
		fmt.Fprintln(c.out, "2. Standard Quiz (10 questions)")
		fmt.Fprintln(c.out, "3. Challenge Quiz (15 questions)")
		fmt.Fprintln(c.out, "4. Custom Quiz")
		fmt.Fprintln(c.out, "5. Exit")
		fmt.Fprint(c.out, "Enter your choice (1-5): ")

		choice, err := c.readInt(ctx)
		if err != nil {
			return err
		}

		switch {
		case presets[choice] > 0:
			err = c.play(ctx, presets[choice])
		case choice == 4:
			err = c.custom(ctx)
		case choice == 5:
			fmt.Fprintln(c.out, "Thanks for playing! Goodbye!")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid choice. Please try again.")
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out)
	}
}

func (c *console) custom(ctx context.Context) error {
	total := c.service.TotalQuestions()
	fmt.Fprintf(c.out, "Enter number of questions (1-%d): ", total)
	count, err := c.readInt(ctx)
	if err != nil {
		return err
	}
	if count < 1 || count > total {
		fmt.Fprintln(c.out, "Invalid number of questions. Please try again.")
		return nil
	}
	return c.play(ctx, count)
}

func (c *console) play(ctx context.Context, count int) error {
	fmt.Fprintf(c.out, "\nStarting quiz with %s...\n", english.Plural(count, "question", ""))
	if c.cfg.TimeLimit > 0 {
		fmt.Fprintf(c.out, "Each question has a %s time limit.\n", english.Plural(int(c.cfg.TimeLimit/time.Second), "second", ""))
	}
	fmt.Fprintln(c.out, "Press Enter when ready to start...")
	if _, err := c.readLine(ctx); err != nil {
		return err
	}

	session := c.service.CreateSession(ctx, count)
	fmt.Fprintf(c.out, "Quiz session created: %s\n\n", session.ID())

	number := 1
	for {
		q, ok := session.CurrentQuestion()
		if !ok {
			break
		}
		limit := c.limitFor(q)

		fmt.Fprintf(c.out, "Question %d of %d\n", number, session.TotalQuestions())
		fmt.Fprintf(c.out, "Score: %d\n", session.Score())
		fmt.Fprintf(c.out, "Time remaining: %s\n", english.Plural(int(limit/time.Second), "second", ""))
		fmt.Fprintln(c.out, strings.Repeat("-", 50))
		fmt.Fprintln(c.out, q.Prompt)
		fmt.Fprintln(c.out)
		for i, option := range q.Options {
			fmt.Fprintf(c.out, "%d. %s\n", i+1, option)
		}
		fmt.Fprintln(c.out)

		selected, timedOut, err := c.askAnswer(ctx, q, limit)
		if err != nil {
			return err
		}

		if timedOut {
			fmt.Fprintln(c.out, "\nTime's up! No points awarded.")
			session.SubmitAnswer(-1)
		} else if session.SubmitAnswer(selected) {
			fmt.Fprintf(c.out, "Correct! +%d points\n", domain.PointsPerCorrectAnswer)
		} else {
			fmt.Fprintf(c.out, "Incorrect. The correct answer was: %d\n", q.CorrectAnswer+1)
		}

		fmt.Fprintf(c.out, "Current score: %d\n\n", session.Score())
		number++
	}

	c.showResults(session.Results())
	return nil
}

// askAnswer waits for a valid option number until the countdown fires.
// Invalid input reprompts without restarting the countdown.
func (c *console) askAnswer(ctx context.Context, q domain.Question, limit time.Duration) (int, bool, error) {
	timer := time.NewTimer(limit)
	defer timer.Stop()

	for {
		fmt.Fprintf(c.out, "Enter your answer (1-%d): ", len(q.Options))
		select {
		case <-ctx.Done():
			return 0, false, ctx.Err()
		case <-timer.C:
			return -1, true, nil
		case line, ok := <-c.lines:
			if !ok {
				return 0, false, errInputClosed
			}
			n, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				fmt.Fprintln(c.out, "Please enter a valid number.")
				continue
			}
			if n < 1 || n > len(q.Options) {
				fmt.Fprintf(c.out, "Invalid answer. Choose between 1 and %d.\n", len(q.Options))
				continue
			}
			return n - 1, false, nil
		}
	}
}

func (c *console) showResults(results domain.Results) {
	fmt.Fprintln(c.out, "Quiz completed!")
	fmt.Fprintln(c.out, strings.Repeat("=", 50))
	fmt.Fprintln(c.out, "Final Results:")
	fmt.Fprintf(c.out, "Total Questions: %d\n", results.TotalQuestions)
	fmt.Fprintf(c.out, "Correct Answers: %d\n", results.CorrectAnswers)
	fmt.Fprintf(c.out, "Final Score: %d\n", results.Score)
	fmt.Fprintf(c.out, "Accuracy: %d%%\n", results.AccuracyPercentage)
	fmt.Fprintf(c.out, "Total Time: %s\n", english.Plural(int(results.DurationSeconds), "second", ""))
	fmt.Fprintln(c.out, strings.Repeat("=", 50))
	fmt.Fprintln(c.out, feedback(domain.TierFor(results.AccuracyPercentage)))
}

func feedback(tier domain.Tier) string {
	switch tier {
	case domain.TierExceptional:
		return "Excellent! Outstanding performance!"
	case domain.TierGreat:
		return "Great job! Well done!"
	case domain.TierGood:
		return "Good work! Keep it up!"
	case domain.TierFair:
		return "Not bad! Room for improvement."
	default:
		return "Keep studying! Practice makes perfect!"
	}
}

func (c *console) limitFor(q domain.Question) time.Duration {
	if c.cfg.TimeLimit > 0 {
		return c.cfg.TimeLimit
	}
	return time.Duration(q.TimeLimit) * time.Second
}

func (c *console) readInt(ctx context.Context) (int, error) {
	for {
		line, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return n, nil
		}
		fmt.Fprint(c.out, "Please enter a valid number: ")
	}
}

func (c *console) readLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			return "", errInputClosed
		}
		return line, nil
	}
}

// readLines feeds input lines to a channel so reads can be raced against timers.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}
