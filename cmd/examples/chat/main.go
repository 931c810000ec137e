// Command chat demonstrates a minimal terminal chat loop on top of the
// conversation engine: submit a line, render streamed blocks as they
// arrive, and print the finalized conversation log.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/conneroisu/convo/pkg/convo"
	"github.com/conneroisu/convo/pkg/convo/adapters/memstore"
	"github.com/conneroisu/convo/pkg/convo/messages"
	"github.com/conneroisu/convo/pkg/convo/options"
	"github.com/conneroisu/convo/pkg/convo/ports"
)

func main() {
	opts, err := options.LoadConfig(configPath())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	client := convo.NewClient(opts, convo.Config{
		Store:     memstore.NewStore(),
		Notifier:  terminalNotifier{},
		Clarifier: terminalClarifier{},
	})

	fmt.Println("convo chat. /mode <name> switches modes, /quit exits.")
	runLoop(client)
}

// configPath resolves the settings file next to the user's config dir.
func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "convo.yaml"
	}

	return dir + "/convo/settings.yaml"
}

// runLoop reads lines from stdin and drives the client.
func runLoop(client *convo.Client) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s] > ", client.Mode())
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return
		case strings.HasPrefix(line, "/mode "):
			client.SetMode(convo.Mode(strings.TrimPrefix(line, "/mode ")))
			continue
		}

		submitAndRender(client, line)
	}
}

// submitAndRender sends one turn and streams its progress to the terminal.
func submitAndRender(client *convo.Client, text string) {
	ok, err := client.Submit(context.Background(), text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "submit failed: %v\n", err)

		return
	}
	if !ok {
		fmt.Println("a request is already in flight")

		return
	}

	done := client.Done()
	for {
		select {
		case <-client.Updates():
			renderLive(client.StreamingState())
		case <-done:
			fmt.Println()
			renderLast(client.Messages())

			return
		}
	}
}

// renderLive prints a one-line progress summary of the in-flight turn.
func renderLive(state convo.StreamingState) {
	if !state.IsStreaming {
		return
	}
	fmt.Printf("\r... %d blocks", len(state.Blocks))
}

// renderLast prints the newest assistant message, block by block.
func renderLast(msgs []convo.Message) {
	if len(msgs) == 0 {
		return
	}
	last := msgs[len(msgs)-1]
	if last.Role != messages.RoleAssistant {
		return
	}

	blocks, ok := last.Content.(messages.BlockListContent)
	if !ok {
		fmt.Println(last.Text())

		return
	}
	for _, block := range blocks {
		printBlock(block)
	}
}

func printBlock(block convo.ContentBlock) {
	switch b := block.(type) {
	case messages.TextBlock:
		fmt.Println(b.Text)
	case messages.MermaidBlock:
		fmt.Printf("[diagram]\n%s\n", b.Source)
	case messages.ToolCallBlock:
		fmt.Printf("[tool %s: %s]\n", b.Name, b.Status)
	case messages.ToolResultBlock:
		fmt.Printf("[%s -> %s]\n", b.ToolName, b.Output)
	case messages.PhaseResultBlock:
		fmt.Printf("== %s ==\n%s\n", b.Title, b.Content)
	}
}

// terminalNotifier prints turn outcomes to stderr.
type terminalNotifier struct{}

func (terminalNotifier) Notify(_ context.Context, n ports.Notification) {
	suffix := ""
	if n.Retryable {
		suffix = " (retry available)"
	}
	fmt.Fprintf(os.Stderr, "\n[%s] %s%s\n", n.Severity, n.Message, suffix)
}

// terminalClarifier prints design-mode questions.
type terminalClarifier struct{}

func (terminalClarifier) RequestClarification(_ context.Context, q string) {
	fmt.Printf("\nclarification needed: %s\n", q)
}
