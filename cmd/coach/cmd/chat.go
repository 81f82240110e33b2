package cmd

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/arthguru/finance-coach/internal/cli"
	"github.com/arthguru/finance-coach/internal/session"
)

var (
	chatInput  string
	chatSample bool
	chatSeed   int64
)

const (
	ownQuestionOption = "Ask my own question"
	exitOption        = "Exit"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask the advisor questions about an analyzed ledger",
	Long: `Chat loads a CSV ledger (or generates a sample one), runs the full
pipeline, and starts an interactive session with the advisor. Pick one
of the suggested questions, type your own, or exit.

Example:
  coach chat --input ledger.csv
  coach chat --sample --seed 42`,
	Run: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatInput, "input", "", "path to a CSV ledger")
	chatCmd.Flags().BoolVar(&chatSample, "sample", false, "chat over a generated sample ledger")
	chatCmd.Flags().Int64Var(&chatSeed, "seed", 0, "sample generation seed (0 = time-based)")
}

func runChat(cmd *cobra.Command, args []string) {
	ledger, rng, err := loadLedger(chatInput, chatSample, chatSeed)
	exitOnError(err, "failed to load ledger")

	sess := session.New(ledger, rng)
	exitOnError(sess.Run(), "analysis failed")

	metrics, err := sess.Metrics()
	exitOnError(err, "metrics unavailable")

	fmt.Println(cli.RenderTitle())
	fmt.Println()
	fmt.Println(cli.RenderMetrics(metrics))
	fmt.Println(cli.RenderChatIntro())
	fmt.Println()

	for {
		question, ok := nextQuestion(sess.Suggestions())
		if !ok {
			return
		}

		reply, err := sess.Ask(question)
		if err != nil {
			fmt.Println(cli.RenderError(err))
			continue
		}
		fmt.Println(cli.RenderAnswer(reply))
		fmt.Println()
	}
}

// nextQuestion prompts for the next question to ask. ok is false when
// the user exits or the prompt is interrupted.
func nextQuestion(suggestions []string) (string, bool) {
	options := make([]string, 0, len(suggestions)+2)
	options = append(options, suggestions...)
	options = append(options, ownQuestionOption, exitOption)

	var choice string
	prompt := &survey.Select{
		Message:  "What would you like to know?",
		Options:  options,
		PageSize: len(options),
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", false
	}

	switch choice {
	case exitOption:
		return "", false
	case ownQuestionOption:
		var question string
		input := &survey.Input{
			Message: "Your question:",
			Help:    "Ask about savings, spending, categories, or your plan",
		}
		if err := survey.AskOne(input, &question); err != nil {
			return "", false
		}
		if strings.TrimSpace(question) == "" {
			return nextQuestion(suggestions)
		}
		return question, true
	default:
		return choice, true
	}
}
