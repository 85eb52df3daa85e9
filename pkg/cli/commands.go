// Package cli implements the mystira command line client. Commands talk
// to the backend through the SDK and keep tokens in
// ~/.mystira/credentials.json.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/phoenixvc/mystira-client/pkg/api"
	"github.com/phoenixvc/mystira-client/pkg/credentials"
)

// DefaultEndpoint is used when neither MYSTIRA_API_URL nor a stored
// endpoint is available. It matches the dev stub's default listen
// address.
const DefaultEndpoint = "http://127.0.0.1:6780"

const commandTimeout = 30 * time.Second

// Endpoint resolves the API endpoint for this invocation
func Endpoint() string {
	if v := strings.TrimSpace(os.Getenv("MYSTIRA_API_URL")); v != "" {
		return strings.TrimRight(v, "/")
	}
	return DefaultEndpoint
}

// newClient builds an SDK client for the resolved endpoint, installing
// stored tokens when present.
func newClient() (api.Client, *credentials.Credentials) {
	endpoint := Endpoint()

	cfg := api.DefaultClientConfig(endpoint)
	cfg.QuietMode = true
	if id, err := credentials.DeviceID(); err == nil {
		cfg.DeviceID = id
	}

	client, err := api.NewClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to create API client: %v\n", err)
		os.Exit(1)
	}

	var creds *credentials.Credentials
	if store, err := credentials.Load(); err == nil {
		if c, ok := store.ForEndpoint(endpoint); ok {
			creds = c
			client.SetTokens(&api.TokenPair{
				AccessToken:  c.AccessToken,
				RefreshToken: c.RefreshToken,
				TokenType:    "Bearer",
			})
		}
	}

	return client, creds
}

// commandContext returns the context used for a single CLI command
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

// prompt reads a single trimmed line from stdin
func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// fail prints an error and exits
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "❌ "+format+"\n", args...)
	os.Exit(1)
}
