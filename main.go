package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/skridlevsky/pkmthulhu/client"
	"github.com/skridlevsky/pkmthulhu/logger"
)

var version = "dev"

func main() {
	flags := pflag.NewFlagSet("pkmthulhu", pflag.ExitOnError)
	logLevel := flags.String("log-level", os.Getenv("PKMTHULHU_LOG"), "Log level: trace, debug, info, warn, error")
	apiURL := flags.String("api-url", "", "Logseq API URL (default: LOGSEQ_URL or http://127.0.0.1:12315)")
	token := flags.String("token", "", "Logseq API token (default: LOGSEQ_API_KEY)")
	showVersion := flags.BoolP("version", "V", false, "Print version and exit")
	flags.SetInterspersed(false)
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pkmthulhu [flags] [command]\n\n")
		fmt.Fprintf(os.Stderr, "Without a command, runs the MCP server on stdio.\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  page NAME       Print a page as markdown\n")
		fmt.Fprintf(os.Stderr, "  notes TOPIC...  Print notes on the given topics as markdown\n")
		fmt.Fprintf(os.Stderr, "  guide           Print the knowledge base usage guide\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if *showVersion {
		fmt.Println(version)
		return
	}

	log := logger.New(*logLevel)
	lsClient := client.New(*apiURL, *token, log)

	if args := flags.Args(); len(args) > 0 {
		runCommand(args, lsClient)
		return
	}

	warnIfUnreachable(lsClient, log)

	srv := newServer(lsClient)
	if err := srv.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// warnIfUnreachable pings the Logseq API on startup. Best-effort: the server
// still starts, tools report the failure per call.
func warnIfUnreachable(c *client.Client, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("logseq API unreachable; enable the HTTP API server in Logseq settings")
	}
}
