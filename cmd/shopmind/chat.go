package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"shopmind/internal/config"
	"shopmind/internal/engine"
)

// =============================================================================
// INTERACTIVE CHAT
// =============================================================================

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	metaStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("245"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("36"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// runInteractiveChat starts the REPL with an in-session guest profile so the
// style model adapts across turns.
func runInteractiveChat(ctx context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	eng, source, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}

	sessionProfile := profileID
	if sessionProfile == "" {
		sessionProfile = uuid.NewString()
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		renderer = nil
	}

	fmt.Println(titleStyle.Render("shopmind") + metaStyle.Render("  knowledge: "+source.Name()))
	fmt.Println(metaStyle.Render("Type a message, or /quit to exit."))
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("you> "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		resp, err := eng.Respond(ctx, engine.Request{Message: line, ProfileID: sessionProfile})
		if err != nil {
			fmt.Println(errorStyle.Render("error: " + err.Error()))
			continue
		}

		printResponse(renderer, resp)
	}

	return scanner.Err()
}

func printResponse(renderer *glamour.TermRenderer, resp engine.Response) {
	if renderer != nil {
		if rendered, err := renderer.Render(resp.Reply); err == nil {
			fmt.Print(rendered)
		} else {
			fmt.Println(resp.Reply)
		}
	} else {
		fmt.Println(resp.Reply)
	}

	if len(resp.QuickLinks) > 0 {
		var parts []string
		for _, link := range resp.QuickLinks {
			parts = append(parts, fmt.Sprintf("%s (%s)", link.Label, link.Href))
		}
		fmt.Println(linkStyle.Render("  links: " + strings.Join(parts, "  ·  ")))
	}

	if len(resp.Suggestions) > 0 {
		fmt.Println(metaStyle.Render("  try: " + strings.Join(resp.Suggestions, " | ")))
	}

	fmt.Println(metaStyle.Render(fmt.Sprintf("  [%s %.0f%% | %d products | %s]",
		resp.Intent, resp.Confidence*100, len(resp.Products), resp.Metadata.Mode)))
	fmt.Println()
}
