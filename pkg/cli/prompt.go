package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PromptLine displays a prompt and reads a full line of input from r.
// The returned string is trimmed of surrounding whitespace (including the newline).
func PromptLine(r io.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirmer returns a Confirm func reading yes/no answers from r.
func confirmer(r io.Reader, w io.Writer) func(string) (bool, error) {
	return func(prompt string) (bool, error) {
		answer, err := PromptLine(r, w, prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}
