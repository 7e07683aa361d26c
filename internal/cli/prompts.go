package cli

import (
	"github.com/AlecAivazis/survey/v2"
)

// menuChoice is one entry of the main menu.
type menuChoice string

const (
	choiceIndividual  menuChoice = "Individual consultation"
	choiceBusiness    menuChoice = "Business plan discovery"
	choiceSessionInfo menuChoice = "Session info"
	choiceStartOver   menuChoice = "Start a new consultation"
	choiceAbout       menuChoice = "About"
	choiceExit        menuChoice = "Exit"
)

// promptMainMenu asks the user what best describes them, or which utility
// action to take.
func promptMainMenu() (menuChoice, error) {
	var selected string
	prompt := &survey.Select{
		Message: "I am...",
		Options: []string{
			string(choiceIndividual),
			string(choiceBusiness),
			string(choiceSessionInfo),
			string(choiceStartOver),
			string(choiceAbout),
			string(choiceExit),
		},
		Help: "Individual: learn about health insurance options for yourself and your family.\nBusiness: find the right insurance plans for your employees.",
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return menuChoice(selected), nil
}

// analysisChoice is what the user can do from the recommendations view.
type analysisChoice string

const (
	analysisRefresh   analysisChoice = "View recommendations again"
	analysisTryAgain  analysisChoice = "Try again"
	analysisStartOver analysisChoice = "Start a new consultation"
	analysisBack      analysisChoice = "Back to menu"
)

// promptAfterAnalysis is shown after recommendations rendered successfully.
func promptAfterAnalysis() (analysisChoice, error) {
	var selected string
	prompt := &survey.Select{
		Message: "What would you like to do next?",
		Options: []string{
			string(analysisRefresh),
			string(analysisStartOver),
			string(analysisBack),
		},
		Default: string(analysisBack),
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return analysisChoice(selected), nil
}

// promptAfterAnalysisError is shown when fetching recommendations failed.
func promptAfterAnalysisError() (analysisChoice, error) {
	var selected string
	prompt := &survey.Select{
		Message: "Fetching recommendations failed. What would you like to do?",
		Options: []string{
			string(analysisTryAgain),
			string(analysisStartOver),
			string(analysisBack),
		},
		Default: string(analysisTryAgain),
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return analysisChoice(selected), nil
}

// promptConfirmReset double-checks before dropping the whole consultation.
func promptConfirmReset() (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: "This forgets your session, profile and chat history. Continue?",
		Default: false,
	}
	err := survey.AskOne(prompt, &confirmed)
	return confirmed, err
}
