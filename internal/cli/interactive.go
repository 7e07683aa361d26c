package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"coverchat/internal/chatbot"
	"coverchat/internal/session"
)

// welcomeMessage seeds the individual chat the first time it is opened.
const welcomeMessage = `Hello! I'm here to help you understand your health insurance options.

I can help you with:
- Understanding different plan types (HMO, PPO, etc.)
- Coverage details and benefits
- Cost comparisons
- Finding in-network providers
- Claims and enrollment processes

So, how can I help?`

// App is the interactive flow controller: it renders the current state,
// reads user input, calls the chatbot and re-renders. One outbound call at
// a time; a failed call is reported where it happened and the user decides
// whether to retry.
type App struct {
	bot    *chatbot.Chatbot
	log    *zap.Logger
	reader *bufio.Reader
}

func NewApp(bot *chatbot.Chatbot, log *zap.Logger) *App {
	return &App{
		bot:    bot,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
	}
}

// Run starts the main menu loop.
func (a *App) Run(ctx context.Context) error {
	printTitle("Hi! I am an expert on health insurance.")

	if err := a.ensureSession(ctx); err != nil {
		printError(err)
		return err
	}

	for {
		choice, err := promptMainMenu()
		if err != nil {
			// survey returns ErrInterrupt on ctrl-c
			return nil
		}

		switch choice {
		case choiceIndividual:
			a.enterFlow(ctx, session.FlowIndividual)
		case choiceBusiness:
			a.enterFlow(ctx, session.FlowBusiness)
		case choiceSessionInfo:
			a.showSessionInfo(ctx)
		case choiceStartOver:
			a.startOver(ctx)
		case choiceAbout:
			a.showAbout()
		case choiceExit:
			printMuted("Goodbye! Take care of yourself and your coverage.")
			return nil
		}
		fmt.Println()
	}
}

// ensureSession creates the backend session up front so the first chat turn
// is not slowed down by it.
func (a *App) ensureSession(ctx context.Context) error {
	if a.bot.HasActiveSession() {
		return nil
	}
	id, err := a.bot.EnsureSession(ctx)
	if err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Session initialized: %s", id))
	return nil
}

// enterFlow enforces the one-time flow choice before dispatching.
func (a *App) enterFlow(ctx context.Context, flow session.Flow) {
	state := a.bot.State()
	if state.Flow() != session.FlowUnset && state.Flow() != flow {
		printMuted("You already started a different consultation. Pick \"Start a new consultation\" to switch.")
		return
	}
	state.Select(flow)

	switch flow {
	case session.FlowIndividual:
		a.runIndividualChat(ctx)
	case session.FlowBusiness:
		a.runBusinessFlow(ctx)
	}
}

// runIndividualChat is the Q&A loop backed by the RAG chat endpoint.
func (a *App) runIndividualChat(ctx context.Context) {
	printHeader("Individual Insurance Consultation")
	printMuted("Ask me anything about health insurance options. /clear empties the chat, /back returns to the menu.")
	fmt.Println()

	state := a.bot.State()
	if len(state.IndividualTranscript()) == 0 {
		state.AppendIndividual(session.RoleAssistant, welcomeMessage)
	}
	printTranscript(state.IndividualTranscript())

	for {
		line, ok := a.readLine("💬 You> ")
		if !ok {
			return
		}

		switch line {
		case "":
			continue
		case "/back", "/menu":
			return
		case "/clear":
			state.ClearIndividualTranscript()
			printMuted("Chat history cleared.")
			continue
		}

		printMuted("Thinking...")
		answer, err := a.bot.Chat(ctx, line)
		if err != nil {
			printError(err)
			continue
		}
		fmt.Println(assistantStyle.Render(answer))
		fmt.Println()
	}
}

// runBusinessFlow runs plan discovery until the backend reports the profile
// complete, then moves to the recommendations view.
func (a *App) runBusinessFlow(ctx context.Context) {
	printHeader("Business Insurance Plan Discovery")

	if a.bot.State().Phase() == session.PhaseAnalyzed {
		a.showRecommendations(ctx)
		return
	}

	printMuted("Let me help you find the right insurance plan for your business. I'll need to gather some information about your company first. /back returns to the menu.")
	fmt.Println()
	printTranscript(a.bot.State().BusinessTranscript())

	for {
		line, ok := a.readLine("🏢 You> ")
		if !ok {
			return
		}

		switch line {
		case "":
			continue
		case "/back", "/menu":
			return
		}

		printMuted("Processing your request...")
		result, err := a.bot.Discover(ctx, line)
		if err != nil {
			printError(err)
			continue
		}
		fmt.Println(assistantStyle.Render(result.Response))
		fmt.Println()

		if result.Complete {
			printSuccess("Your business profile is now complete! Let me analyze the best insurance plans for you...")
			a.showRecommendations(ctx)
			return
		}
	}
}

// showRecommendations fetches and renders the plan analysis. The result is
// deliberately not kept in state: choosing "view again" re-fetches so the
// analysis always reflects the backend's current profile.
func (a *App) showRecommendations(ctx context.Context) {
	for {
		printHeader("Recommended Insurance Plans")
		printMuted("Analyzing the best insurance plans for your business...")

		analysis, err := a.bot.Recommendations(ctx)
		if err != nil {
			printError(err)
			choice, promptErr := promptAfterAnalysisError()
			if promptErr != nil {
				return
			}
			switch choice {
			case analysisTryAgain:
				continue
			case analysisStartOver:
				a.startOver(ctx)
				return
			default:
				return
			}
		}

		printDivider()
		fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d eligible plans for your business", analysis.EligiblePlansCount)))
		printDivider()
		fmt.Println(assistantStyle.Render(analysis.Analysis))
		printDivider()

		choice, err := promptAfterAnalysis()
		if err != nil {
			return
		}
		switch choice {
		case analysisRefresh:
			continue
		case analysisStartOver:
			a.startOver(ctx)
			return
		default:
			return
		}
	}
}

// showSessionInfo dumps the backend's view of the active session.
func (a *App) showSessionInfo(ctx context.Context) {
	info, err := a.bot.Status(ctx)
	if err != nil {
		printError(err)
		return
	}

	printHeader("Session")
	for key, value := range info {
		fmt.Printf("  %s: %v\n", key, value)
	}
}

// startOver clears every tracked key and creates a fresh session.
func (a *App) startOver(ctx context.Context) {
	confirmed, err := promptConfirmReset()
	if err != nil || !confirmed {
		return
	}

	a.bot.Reset()
	a.log.Debug("session reset")

	if err := a.ensureSession(ctx); err != nil {
		printError(err)
	}
}

func (a *App) showAbout() {
	printHeader("About")
	fmt.Println(`coverchat is a terminal client for a health-insurance chatbot service.

Individuals can ask open questions about plan types, coverage and costs.
Business owners answer a short guided discovery, and once the profile is
complete the service recommends the plans that fit their company.`)
}

// readLine reads one trimmed input line. ok is false on EOF.
func (a *App) readLine(prompt string) (string, bool) {
	fmt.Print(prompt)
	line, err := a.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			printError(fmt.Errorf("error reading input: %w", err))
		}
		return "", false
	}
	return strings.TrimSpace(line), true
}
