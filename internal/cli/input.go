// Package cli handles interactive input and the stdin filter mode.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spellserve/spellserve/internal/utils"
	"github.com/spellserve/spellserve/pkg/checker"
)

// InputHandler reads tokens from stdin one line at a time and reports
// the verdict with suggestions. Meant for poking at a dictionary and
// trying policy settings before wiring the tool into anything.
type InputHandler struct {
	checker      *checker.Checker
	maxTokenLen  int
	requestCount int
	noFilter     bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(chk *checker.Checker, maxTokenLen int, noFilter bool) *InputHandler {
	return &InputHandler{
		checker:     chk,
		maxTokenLen: maxTokenLen,
		noFilter:    noFilter,
	}
}

// Start begins the interface loop on stdin.
// It continuously prompts for input, reads a line,
// and passes the trimmed input to handleInput() for processing.
// A closed stream (Ctrl+D) ends the loop cleanly.
func (h *InputHandler) Start() error {
	return h.run(os.Stdin)
}

func (h *InputHandler) run(r io.Reader) error {
	log.Print("spellserve interactive mode")
	reader := bufio.NewReader(r)
	log.Print("type a word and press Enter to check it (Ctrl+C to exit):")

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			h.handleInput(trimmed)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// handleInput checks a single token and prints the verdict
// and any suggestions with timing.
func (h *InputHandler) handleInput(raw string) {
	h.requestCount++

	token := utils.NormalizeToken(raw)
	if token == "" {
		log.Errorf("Nothing left of %q after normalization", raw)
		return
	}
	if len(token) > h.maxTokenLen {
		log.Errorf("Token too long: %s", token)
		return
	}

	if !h.noFilter && !utils.IsCheckable(token) {
		log.Infof("Token %q skipped by input filtering", token)
		return
	}

	start := time.Now()
	known := h.checker.Known(token)
	if known {
		log.Printf("'%s' is in the dictionary", token)
		log.Debugf("Took [ %v ]", time.Since(start))
		return
	}

	suggestions, err := h.checker.Suggest(token)
	elapsed := time.Since(start)
	if err != nil {
		log.Warnf("Suggestion search for %q: %v", token, err)
	}
	log.Debugf("Took [ %v ] for token '%s'", elapsed, token)

	if len(suggestions) == 0 {
		log.Warnf("'%s' not found, no suggestions in range", token)
		return
	}

	log.Printf("'%s' not found. Did you mean:", token)
	for i, s := range suggestions {
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s)
		log.Printf("%2d. %s", i+1, clWord)
	}
}
