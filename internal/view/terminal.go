package view

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TerminalNotifier prints notifications as prefixed lines.
type TerminalNotifier struct {
	Out io.Writer
}

func (n TerminalNotifier) Success(text string) { fmt.Fprintln(n.Out, "ok:", text) }
func (n TerminalNotifier) Error(text string)   { fmt.Fprintln(n.Out, "error:", text) }
func (n TerminalNotifier) Notify(text string)  { fmt.Fprintln(n.Out, text) }

// PromptConfirmer asks on Out and reads the answer from In. Only "y" and
// "yes" (any case) count as consent. AssumeYes skips the question.
type PromptConfirmer struct {
	In        io.Reader
	Out       io.Writer
	AssumeYes bool

	reader *bufio.Reader
}

func (p *PromptConfirmer) Confirm(prompt string) bool {
	if p.AssumeYes {
		return true
	}
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	fmt.Fprintf(p.Out, "%s [y/N] ", prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.Out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
