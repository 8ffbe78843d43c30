package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// MenuReader defines interface for reading user input (for testing)
type MenuReader interface {
	ReadString(delim byte) (string, error)
}

// DefaultMenuReader wraps bufio.Reader
type DefaultMenuReader struct {
	reader *bufio.Reader
}

// NewDefaultMenuReader creates a MenuReader over the given input stream.
func NewDefaultMenuReader(in io.Reader) *DefaultMenuReader {
	return &DefaultMenuReader{reader: bufio.NewReader(in)}
}

func (d *DefaultMenuReader) ReadString(delim byte) (string, error) {
	return d.reader.ReadString(delim)
}

// readLine reads one trimmed line of input.
func readLine(reader MenuReader) (string, error) {
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(input), nil
}

// menuChoice is the parsed result of one menu prompt.
type menuChoice struct {
	Index int  // Zero-based option index, valid when neither Back nor Quit
	Back  bool // User asked to go back
	Quit  bool // User asked to quit
}

// readMenuChoice prompts until the user enters a valid option number, 'b' to
// go back, or 'q' to quit. Options are displayed one-based.
func readMenuChoice(out io.Writer, reader MenuReader, optionCount int) (menuChoice, error) {
	for {
		fmt.Fprintf(out, "Select (1-%d), 'b' to go back, 'q' to quit: ", optionCount)

		input, err := readLine(reader)
		if err != nil {
			return menuChoice{}, err
		}

		switch strings.ToLower(input) {
		case "q":
			return menuChoice{Quit: true}, nil
		case "b":
			return menuChoice{Back: true}, nil
		}

		selection, err := strconv.Atoi(input)
		if err == nil && selection >= 1 && selection <= optionCount {
			return menuChoice{Index: selection - 1}, nil
		}

		fmt.Fprintln(out, "Invalid selection. Please try again.")
	}
}
