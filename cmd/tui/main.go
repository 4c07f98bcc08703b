package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Varun5711/bookmarkd/cmd/tui/client"
	"github.com/Varun5711/bookmarkd/cmd/tui/ui"
)

func main() {
	defaultAddr := os.Getenv("BOOKMARKD_URL")
	if defaultAddr == "" {
		defaultAddr = "http://localhost:4000"
	}
	addr := flag.String("addr", defaultAddr, "base URL of the bookmarkd API")
	flag.Parse()

	p := tea.NewProgram(
		ui.NewModel(client.New(*addr)),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
