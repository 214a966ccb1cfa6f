package main

import (
	"context"
	"fmt"
	"os"

	"docchat/llm/engine"
	"docchat/tui/chat"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if exists
	_ = godotenv.Load()
}

func main() {
	ctx := context.Background()

	eng, err := engine.Setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer eng.Close(ctx)

	model := chat.InitialModel(eng)
	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	// A document given on the command line is ingested in the background
	// while the UI comes up; the result lands in the transcript like a
	// /load would.
	if len(os.Args) > 1 {
		path := os.Args[1]
		go func() {
			result, err := eng.Ingest(ctx, path)
			program.Send(chat.IngestDoneMsg{Result: result, Err: err})
		}()
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ui error: %v\n", err)
		os.Exit(1)
	}
}
