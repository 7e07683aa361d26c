package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"coverchat/internal/session"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	assistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E5E7EB"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#374151"))
)

func printTitle(text string) {
	fmt.Println(titleStyle.Render(text))
}

func printHeader(text string) {
	fmt.Println(headerStyle.Render(text))
}

func printSuccess(text string) {
	fmt.Println(successStyle.Render("✅ " + text))
}

func printError(err error) {
	fmt.Println(errorStyle.Render("❌ " + err.Error()))
}

func printMuted(text string) {
	fmt.Println(mutedStyle.Render(text))
}

func printDivider() {
	fmt.Println(dividerStyle.Render(strings.Repeat("─", 64)))
}

// printTurn renders one transcript message with the role's style.
func printTurn(msg session.Message) {
	switch msg.Role {
	case session.RoleUser:
		fmt.Println(userStyle.Render("You: ") + msg.Content)
	default:
		fmt.Println(assistantStyle.Render(msg.Content))
	}
	fmt.Println()
}

// printTranscript re-renders a whole conversation, oldest first.
func printTranscript(messages []session.Message) {
	for _, msg := range messages {
		printTurn(msg)
	}
}
