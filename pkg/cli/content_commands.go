package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// HandleCharactersCommand handles character catalog commands
func HandleCharactersCommand(args []string) {
	if len(args) == 0 || args[0] == "list" {
		client, _ := newClient()
		ctx, cancel := commandContext()
		defer cancel()

		characters, err := client.Characters().List(ctx)
		if err != nil {
			fail("Failed to list characters: %v", err)
		}
		if len(characters) == 0 {
			fmt.Println("No characters available.")
			return
		}
		fmt.Printf("🎭 Characters (%d)\n\n", len(characters))
		for _, c := range characters {
			fmt.Printf("  %-16s %s\n", c.ID, c.Name)
			if c.Description != "" {
				fmt.Printf("  %-16s %s\n", "", c.Description)
			}
		}
		return
	}

	if args[0] == "get" && len(args) > 1 {
		client, _ := newClient()
		ctx, cancel := commandContext()
		defer cancel()

		c, err := client.Characters().Get(ctx, args[1])
		if err != nil {
			fail("Failed to get character: %v", err)
		}
		fmt.Printf("🎭 %s\n", c.Name)
		fmt.Printf("   ID: %s\n", c.ID)
		fmt.Printf("   Description: %s\n", c.Description)
		if len(c.Traits) > 0 {
			fmt.Printf("   Traits: %s\n", strings.Join(c.Traits, ", "))
		}
		return
	}

	fmt.Fprintln(os.Stderr, "Usage: mystira characters [list|get <id>]")
	os.Exit(1)
}

// HandleScenariosCommand handles scenario catalog commands
func HandleScenariosCommand(args []string) {
	if len(args) == 0 || args[0] == "list" {
		client, _ := newClient()
		ctx, cancel := commandContext()
		defer cancel()

		scenarios, err := client.Scenarios().List(ctx)
		if err != nil {
			fail("Failed to list scenarios: %v", err)
		}
		if len(scenarios) == 0 {
			fmt.Println("No scenarios available.")
			return
		}
		fmt.Printf("📖 Scenarios (%d)\n\n", len(scenarios))
		for _, s := range scenarios {
			fmt.Printf("  %-20s %s (%d scenes)\n", s.ID, s.Title, s.SceneCount)
		}
		return
	}

	switch args[0] {
	case "get":
		if len(args) < 2 {
			fail("Usage: mystira scenarios get <id>")
		}
		client, _ := newClient()
		ctx, cancel := commandContext()
		defer cancel()

		s, err := client.Scenarios().Get(ctx, args[1])
		if err != nil {
			fail("Failed to get scenario: %v", err)
		}
		fmt.Printf("📖 %s\n", s.Title)
		fmt.Printf("   ID: %s\n", s.ID)
		fmt.Printf("   Summary: %s\n", s.Summary)
		fmt.Printf("   Scenes: %d\n", s.SceneCount)
		if len(s.Tags) > 0 {
			fmt.Printf("   Tags: %s\n", strings.Join(s.Tags, ", "))
		}

	case "scenes":
		if len(args) < 2 {
			fail("Usage: mystira scenarios scenes <id>")
		}
		client, _ := newClient()
		ctx, cancel := commandContext()
		defer cancel()

		scenes, err := client.Scenarios().Scenes(ctx, args[1])
		if err != nil {
			fail("Failed to list scenes: %v", err)
		}
		fmt.Printf("🎬 Scenes (%d)\n\n", len(scenes))
		for _, sc := range scenes {
			fmt.Printf("  %2d. %-16s %s\n", sc.Order, sc.ID, sc.Title)
		}

	default:
		fmt.Fprintln(os.Stderr, "Usage: mystira scenarios [list|get <id>|scenes <id>]")
		os.Exit(1)
	}
}

// HandleBundlesCommand handles content bundle commands
func HandleBundlesCommand(args []string) {
	if len(args) == 0 || args[0] == "list" {
		client, _ := newClient()
		ctx, cancel := commandContext()
		defer cancel()

		bundles, err := client.Bundles().List(ctx)
		if err != nil {
			fail("Failed to list bundles: %v", err)
		}
		if len(bundles) == 0 {
			fmt.Println("No bundles available.")
			return
		}
		fmt.Printf("📦 Bundles (%d)\n\n", len(bundles))
		for _, b := range bundles {
			fmt.Printf("  %-16s %s v%s (%d bytes)\n", b.ID, b.Name, b.Version, b.Size)
		}
		return
	}

	switch args[0] {
	case "get":
		if len(args) < 2 {
			fail("Usage: mystira bundles get <id>")
		}
		client, _ := newClient()
		ctx, cancel := commandContext()
		defer cancel()

		b, err := client.Bundles().Get(ctx, args[1])
		if err != nil {
			fail("Failed to get bundle: %v", err)
		}
		fmt.Printf("📦 %s v%s\n", b.Manifest.Name, b.Manifest.Version)
		fmt.Printf("   ID: %s\n", b.Manifest.ID)
		fmt.Printf("   Size: %d bytes\n", b.Manifest.Size)
		fmt.Printf("   Scenarios: %s\n", strings.Join(b.ScenarioIDs, ", "))
		fmt.Printf("   Characters: %s\n", strings.Join(b.CharacterIDs, ", "))

	case "download":
		if len(args) < 2 {
			fail("Usage: mystira bundles download <id> [output-file]")
		}
		client, _ := newClient()
		ctx, cancel := commandContext()
		defer cancel()

		rc, err := client.Bundles().Download(ctx, args[1])
		if err != nil {
			fail("Failed to download bundle: %v", err)
		}
		defer rc.Close()

		outPath := args[1] + ".bundle"
		if len(args) > 2 {
			outPath = args[2]
		}
		out, err := os.Create(outPath)
		if err != nil {
			fail("Failed to create %s: %v", outPath, err)
		}
		defer out.Close()

		n, err := io.Copy(out, rc)
		if err != nil {
			fail("Download failed: %v", err)
		}
		fmt.Printf("✅ Downloaded %d bytes to %s\n", n, outPath)

	default:
		fmt.Fprintln(os.Stderr, "Usage: mystira bundles [list|get <id>|download <id>]")
		os.Exit(1)
	}
}

// HandleProfilesCommand shows the signed-in account's profiles
func HandleProfilesCommand(args []string) {
	client, creds := newClient()
	if creds == nil {
		fail("Not signed in. Run 'mystira auth login' first.")
	}

	ctx, cancel := commandContext()
	defer cancel()

	profiles, err := client.Accounts().Profiles(ctx)
	if err != nil {
		fail("Failed to list profiles: %v", err)
	}
	fmt.Printf("👥 Profiles (%d)\n\n", len(profiles))
	for _, p := range profiles {
		fmt.Printf("  %-16s %s\n", p.ID, p.Name)
	}
}
