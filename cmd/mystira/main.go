package main

import (
	"fmt"
	"os"

	"github.com/phoenixvc/mystira-client/pkg/cli"
)

// version metadata populated via -ldflags at build time
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	if len(os.Args) < 2 {
		showHelp()
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "version":
		fmt.Printf("mystira %s", version)
		if commit != "" {
			fmt.Printf(" (commit %s)", commit)
		}
		if date != "" {
			fmt.Printf(" built %s", date)
		}
		fmt.Println()

	case "auth":
		cli.HandleAuthCommand(args)

	case "characters":
		cli.HandleCharactersCommand(args)

	case "scenarios":
		cli.HandleScenariosCommand(args)

	case "bundles":
		cli.HandleBundlesCommand(args)

	case "profiles":
		cli.HandleProfilesCommand(args)

	case "help", "-h", "--help":
		showHelp()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showHelp()
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Printf("Mystira CLI - story content and account client\n\n")
	fmt.Printf("Usage: mystira <command> [arguments]\n\n")
	fmt.Printf("Commands:\n")
	fmt.Printf("  auth <subcommand>       - Sign up, sign in, sign out\n")
	fmt.Printf("  characters [list|get]   - Browse the character catalog\n")
	fmt.Printf("  scenarios [list|get|scenes] - Browse scenarios and scenes\n")
	fmt.Printf("  bundles [list|get|download] - Work with content bundles\n")
	fmt.Printf("  profiles                - List profiles of the signed-in account\n")
	fmt.Printf("  version                 - Show version information\n\n")
	fmt.Printf("Environment Variables:\n")
	fmt.Printf("  MYSTIRA_API_URL - API endpoint (default %s)\n", cli.DefaultEndpoint)
	fmt.Printf("\nRun 'mystira-stub' to start a local development backend.\n")
}
