package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrCancelled is returned when input ends before a prompt was answered.
var ErrCancelled = errors.New("ввод прерван")

// ClearAnswer empties an optional field in AskOptional.
const ClearAnswer = "-"

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints label with the current value and reads one line. An empty
// answer keeps def.
func (p *Prompter) Ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) == "" {
		return def, nil
	}
	return line, nil
}

// AskOptional works like Ask for fields that may be empty: answering
// ClearAnswer returns "".
func (p *Prompter) AskOptional(label, def string) (string, error) {
	answer, err := p.Ask(fmt.Sprintf("%s (%s clears)", label, ClearAnswer), def)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == ClearAnswer {
		return "", nil
	}
	return answer, nil
}

// Confirm asks a [y/N] question. Anything but y or yes, including EOF, is no.
func (p *Prompter) Confirm(question string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)

	line, err := p.readLine()
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("чтение ввода: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
