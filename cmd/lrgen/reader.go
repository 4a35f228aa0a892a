package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// lineReader is the REPL's input source: either GNU-readline-backed (for an
// interactive TTY, with history and line editing) or a plain buffered
// reader (for piped input or --direct). Adapted from the teacher's
// internal/input package (DirectCommandReader/InteractiveCommandReader),
// trimmed to the three methods this CLI actually needs.
type lineReader interface {
	ReadLine() (string, error)
	SetPrompt(p string)
	Close() error
}

type directReader struct {
	r      *bufio.Reader
	prompt string
}

func newDirectReader(r io.Reader) *directReader {
	return &directReader{r: bufio.NewReader(r)}
}

func (d *directReader) SetPrompt(p string) { d.prompt = p }

func (d *directReader) ReadLine() (string, error) {
	if d.prompt != "" {
		fmt.Print(d.prompt)
	}
	line, err := d.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (d *directReader) Close() error { return nil }

type interactiveReader struct {
	rl *readline.Instance
}

func newInteractiveReader(prompt string) (*interactiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &interactiveReader{rl: rl}, nil
}

func (i *interactiveReader) SetPrompt(p string) { i.rl.SetPrompt(p) }

func (i *interactiveReader) ReadLine() (string, error) {
	return i.rl.Readline()
}

func (i *interactiveReader) Close() error { return i.rl.Close() }
