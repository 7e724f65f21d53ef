// Command scramble-cli plays one local game in the terminal.
// Progress is kept in the configured store (a SQLite file by default), so
// quitting and coming back resumes the same game.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/scramble/internal/config"
	"github.com/robalobadob/scramble/internal/game"
	"github.com/robalobadob/scramble/internal/store"
	"github.com/robalobadob/scramble/internal/words"
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "<word>    - guess the unscrambled word\n")
	io.WriteString(w, ":pass     - skip the current word (uses a pass)\n")
	io.WriteString(w, ":restart  - start a new game\n")
	io.WriteString(w, ":quit     - leave; progress is saved\n")
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(config.DriverSQLite)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(cfg.LogLevel)

	vocab, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load vocabulary")
	}

	ctx := context.Background()
	kv, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer store.CloseQuietly(kv)

	g, err := game.New(ctx, vocab, store.WithPrefix(kv, "local:"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start game")
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:              "\033[36mscramble>\033[0m ",
		EOFPrompt:           ":quit",
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("readline")
	}
	defer l.Close()

	fmt.Fprintln(l.Stdout(), "Welcome to Scramble.")
	render(l.Stdout(), g.View())

	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return
			}
			continue
		} else if errors.Is(err, io.EOF) {
			return
		}
		line = strings.TrimSpace(line)

		switch line {
		case "":
			continue
		case ":quit", "exit":
			return
		case "help":
			usage(l.Stderr())
			continue
		case ":pass":
			err = g.Pass(ctx)
		case ":restart":
			g.Restart(ctx)
		default:
			_, err = g.SubmitGuess(ctx, line)
		}
		switch {
		case errors.Is(err, game.ErrGameOver):
			fmt.Fprintln(l.Stdout(), "The game is over. Type :restart to play again.")
		case errors.Is(err, game.ErrNoPasses):
			fmt.Fprintln(l.Stdout(), "No passes left.")
		}
		render(l.Stdout(), g.View())
	}
}

// render prints the scoreboard, the last guess feedback and either the next
// scrambled word or the game-over message.
func render(w io.Writer, v game.View) {
	fmt.Fprintf(w, "\n%d POINTS   %d/%d STRIKES   %d PASSES\n", v.Points, v.Strikes, v.StrikeLimit, v.Passes)

	if v.Feedback.Visible {
		switch v.Feedback.Kind {
		case game.FeedbackCorrect:
			fmt.Fprintln(w, "Correct, good job! Next word.")
		case game.FeedbackIncorrect:
			fmt.Fprintln(w, "That's incorrect. Let's try again!")
		}
	}

	switch v.Phase {
	case game.PhaseLost:
		fmt.Fprintln(w, "Game over. You received the maximum number of strikes. Type :restart.")
	case game.PhaseWon:
		fmt.Fprintln(w, "Congratulations! You completed all the words. Type :restart.")
	default:
		fmt.Fprintf(w, "\n    %s\n\n", strings.ToUpper(v.Scrambled))
	}
}
