package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/skridlevsky/pkmthulhu/client"
	"github.com/skridlevsky/pkmthulhu/tools"
)

const commandTimeout = 30 * time.Second

// runCommand dispatches CLI subcommands that query the live Logseq API and
// print markdown to stdout.
func runCommand(args []string, c *client.Client) {
	switch args[0] {
	case "page":
		runPage(args[1:], c)
	case "notes":
		runNotes(args[1:], c)
	case "guide":
		runGuide(c)
	default:
		fmt.Fprintf(os.Stderr, "pkmthulhu: unknown command %q (try page, notes or guide)\n", args[0])
		os.Exit(2)
	}
}

// runPage prints a single page as markdown.
func runPage(args []string, c *client.Client) {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: pkmthulhu page NAME\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	md, err := tools.NewNotes(c).PageMarkdown(ctx, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "pkmthulhu page: %v\n", err)
		os.Exit(1)
	}
	if md == "" {
		fmt.Fprintf(os.Stderr, "pkmthulhu page: no such page %q\n", args[0])
		os.Exit(1)
	}

	fmt.Println(md)
}

// runNotes prints notes on the given topics as markdown.
func runNotes(args []string, c *client.Client) {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: pkmthulhu notes TOPIC...\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	md, err := tools.NewNotes(c).TopicMarkdown(ctx, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pkmthulhu notes: %v\n", err)
		os.Exit(1)
	}
	if md == "" {
		fmt.Fprintf(os.Stderr, "no notes found for %v\n", args)
		os.Exit(1)
	}

	fmt.Println(md)
}

// runGuide prints the knowledge base usage guide.
func runGuide(c *client.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	md, err := tools.NewNotes(c).Guide(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pkmthulhu guide: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(md)
}
