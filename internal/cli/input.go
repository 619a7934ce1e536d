// Package cli is an interactive prompt for trying queries against a loaded dictionary.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bastiangx/anagramserve/internal/utils"
	"github.com/bastiangx/anagramserve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/term"
)

const (
	quitCommand  = ":q"
	wordsCommand = ":words"
)

var (
	phraseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// WordLister lists dictionary words by prefix.
type WordLister interface {
	Words(prefix string, limit int) []string
}

// InputHandler reads one query per line and prints its anagram phrases.
type InputHandler struct {
	service     *server.Service
	words       WordLister
	limit       int
	in          io.Reader
	out         io.Writer
	interactive bool
}

// NewInputHandler uses stdin and stdout. The prompt is shown only when stdin is a terminal.
func NewInputHandler(service *server.Service, words WordLister, limit int) *InputHandler {
	h := NewInputHandlerWithIO(service, words, limit, os.Stdin, os.Stdout)
	h.interactive = term.IsTerminal(int(os.Stdin.Fd()))
	return h
}

// NewInputHandlerWithIO reads from in and writes results to out, without a prompt.
func NewInputHandlerWithIO(service *server.Service, words WordLister, limit int, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		service: service,
		words:   words,
		limit:   limit,
		in:      in,
		out:     out,
	}
}

// Start runs the loop until :q or the end of input.
func (h *InputHandler) Start(ctx context.Context) error {
	if h.interactive {
		fmt.Fprintln(h.out, headerStyle.Render("AnagramServe CLI"))
		fmt.Fprintln(h.out, dimStyle.Render("type a word or phrase, :words <prefix> to browse, :q to quit"))
	}

	scanner := bufio.NewScanner(h.in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		h.prompt()
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == quitCommand:
			return nil
		case line == wordsCommand || strings.HasPrefix(line, wordsCommand+" "):
			h.listWords(strings.TrimSpace(strings.TrimPrefix(line, wordsCommand)))
		default:
			h.handleInput(ctx, line)
		}
	}
}

func (h *InputHandler) prompt() {
	if h.interactive {
		fmt.Fprint(h.out, "> ")
	}
}

// handleInput prints the numbered phrases of one query.
func (h *InputHandler) handleInput(ctx context.Context, query string) {
	result, err := h.service.Anagrams(ctx, query, h.limit)
	if err != nil {
		if errors.Is(err, server.ErrQueryTooLong) {
			log.Errorf("Query too long: %s", query)
			return
		}
		log.Errorf("Query %q: %v", query, err)
		return
	}

	if len(result.Phrases) == 0 {
		fmt.Fprintf(h.out, "No anagrams for '%s'\n", query)
		return
	}

	fmt.Fprintf(h.out, "Found %s anagrams for '%s' in %s:\n",
		utils.FormatWithCommas(len(result.Phrases)), query, utils.FormatElapsed(result.Elapsed))
	for i, phrase := range result.Phrases {
		fmt.Fprintf(h.out, "%3d. %s\n", i+1, phraseStyle.Render(phrase))
	}
}

func (h *InputHandler) listWords(prefix string) {
	if h.words == nil {
		log.Warn("Word listing is not available")
		return
	}
	words := h.words.Words(prefix, h.limit)
	if len(words) == 0 {
		fmt.Fprintf(h.out, "No words starting with '%s'\n", prefix)
		return
	}
	for i, w := range words {
		fmt.Fprintf(h.out, "%3d. %s\n", i+1, w)
	}
}
