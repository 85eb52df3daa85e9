package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/phoenixvc/mystira-client/pkg/credentials"
)

// HandleAuthCommand handles authentication commands
func HandleAuthCommand(args []string) {
	if len(args) == 0 {
		showAuthHelp()
		return
	}

	switch args[0] {
	case "signup":
		handleAuthLogin(true)
	case "login":
		handleAuthLogin(false)
	case "logout":
		handleAuthLogout()
	case "whoami":
		handleAuthWhoami()
	default:
		fmt.Fprintf(os.Stderr, "Unknown auth command: %s\n", args[0])
		showAuthHelp()
		os.Exit(1)
	}
}

func showAuthHelp() {
	fmt.Printf("🔐 Authentication Commands\n\n")
	fmt.Printf("Usage: mystira auth <subcommand>\n\n")
	fmt.Printf("Subcommands:\n")
	fmt.Printf("  signup     - Create an account with a verification code sent by email\n")
	fmt.Printf("  login      - Sign in to an existing account\n")
	fmt.Printf("  logout     - Revoke tokens and clear stored credentials\n")
	fmt.Printf("  whoami     - Show the signed-in account\n\n")
	fmt.Printf("Environment Variables:\n")
	fmt.Printf("  MYSTIRA_API_URL - API endpoint (default %s)\n\n", DefaultEndpoint)
	fmt.Printf("Flow:\n")
	fmt.Printf("  1. Run 'mystira auth login' (or signup)\n")
	fmt.Printf("  2. Enter your email address when prompted\n")
	fmt.Printf("  3. Enter the verification code from your inbox\n")
	fmt.Printf("  4. Tokens are saved to ~/.mystira/credentials.json\n")
}

func handleAuthLogin(signup bool) {
	client, _ := newClient()
	endpoint := Endpoint()
	fmt.Printf("🔐 Authenticating with: %s\n", endpoint)

	email := prompt("Email address: ")
	if email == "" {
		fail("Email is required")
	}

	ctx, cancel := commandContext()
	defer cancel()

	if signup {
		displayName := prompt("Display name: ")
		challenge, err := client.Auth().RequestSignup(ctx, email, displayName)
		if err != nil {
			fail("Signup request failed: %v", err)
		}
		announceChallenge(challenge.Delivery, challenge.DebugCode)
	} else {
		challenge, err := client.Auth().RequestSignin(ctx, email)
		if err != nil {
			fail("Signin request failed: %v", err)
		}
		announceChallenge(challenge.Delivery, challenge.DebugCode)
	}

	code := prompt("Verification code: ")
	if code == "" {
		fail("Verification code is required")
	}

	pair, err := client.Auth().Verify(ctx, email, code)
	if err != nil {
		fail("Verification failed: %v", err)
	}

	account, err := client.Accounts().Me(ctx)
	if err != nil {
		fail("Failed to fetch account: %v", err)
	}

	store, err := credentials.Load()
	if err != nil {
		fail("Failed to load credentials: %v", err)
	}
	now := time.Now()
	store.SetForEndpoint(endpoint, &credentials.Credentials{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Email:        account.Email,
		AccountID:    account.ID,
		ExpiresAt:    now.Add(time.Duration(pair.ExpiresIn) * time.Second),
		IssuedAt:     now,
	})
	if err := store.Save(); err != nil {
		fail("Failed to save credentials: %v", err)
	}

	credsPath, _ := credentials.Path()
	fmt.Printf("✅ Signed in as %s (%s)\n", account.DisplayName, account.Email)
	fmt.Printf("📁 Credentials saved to: %s\n", credsPath)
}

func announceChallenge(delivery, debugCode string) {
	fmt.Printf("📧 A verification code has been sent via %s\n", delivery)
	if debugCode != "" {
		// Local dev stub hands the code back directly.
		fmt.Printf("🔑 Dev code: %s\n", debugCode)
	}
}

func handleAuthLogout() {
	endpoint := Endpoint()

	store, err := credentials.Load()
	if err != nil {
		fail("Failed to load credentials: %v", err)
	}

	creds, ok := store.ForEndpoint(endpoint)
	if ok && creds.RefreshToken != "" {
		client, _ := newClient()
		ctx, cancel := commandContext()
		defer cancel()
		// Best effort: clear local state even if the backend is down.
		if err := client.Auth().Logout(ctx, creds.RefreshToken); err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Token revocation failed: %v\n", err)
		}
	}

	store.RemoveForEndpoint(endpoint)
	if err := store.Save(); err != nil {
		fail("Failed to save credentials: %v", err)
	}
	fmt.Println("✅ Logged out")
}

func handleAuthWhoami() {
	client, creds := newClient()
	if creds == nil {
		fmt.Println("Not signed in. Run 'mystira auth login' first.")
		return
	}

	ctx, cancel := commandContext()
	defer cancel()

	account, err := client.Accounts().Me(ctx)
	if err != nil {
		fail("Failed to fetch account (try 'mystira auth login' again): %v", err)
	}

	fmt.Printf("👤 %s\n", account.DisplayName)
	fmt.Printf("   Email: %s\n", account.Email)
	fmt.Printf("   Account ID: %s\n", account.ID)
	fmt.Printf("   Endpoint: %s\n", Endpoint())
}
