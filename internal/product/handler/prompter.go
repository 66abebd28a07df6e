package handler

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInterrupted is returned by Ask once the prompter has been closed.
var ErrInterrupted = errors.New("input interrupted")

type answer struct {
	line string
	err  error
}

// Prompter reads answers line by line. It is shared between the command
// loop and the delete confirmation so both consume the same input.
// Reading happens on a background goroutine so Close can unblock a
// pending Ask.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	start     sync.Once
	closeOnce sync.Once
	lines     chan answer
	done      chan struct{}
	err       error
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:    bufio.NewReader(in),
		out:   out,
		lines: make(chan answer),
		done:  make(chan struct{}),
	}
}

// Ask prints prompt and returns the trimmed answer. io.EOF is returned only
// when the input ends before any text.
func (p *Prompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if p.err != nil {
		return "", p.err
	}
	p.start.Do(func() { go p.readLines() })

	select {
	case <-p.done:
		return "", ErrInterrupted
	case a := <-p.lines:
		if a.err != nil {
			p.err = a.err
			if a.err != io.EOF || a.line == "" {
				return "", a.err
			}
		}
		return strings.TrimSpace(a.line), nil
	}
}

// Confirm is the synchronous yes/no gate; anything but y/yes is a no.
func (p *Prompter) Confirm(prompt string) bool {
	answer, err := p.Ask(prompt + " [y/N] ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Close makes every pending and future Ask return ErrInterrupted.
func (p *Prompter) Close() {
	p.closeOnce.Do(func() { close(p.done) })
}

func (p *Prompter) readLines() {
	for {
		line, err := p.in.ReadString('\n')
		select {
		case p.lines <- answer{line: line, err: err}:
		case <-p.done:
			return
		}
		if err != nil {
			return
		}
	}
}
