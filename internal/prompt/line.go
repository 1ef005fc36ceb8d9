package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Line prompts with numbered menus on a plain reader/writer pair.
type Line struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewLine returns a Line prompter reading answers from r and writing
// questions to w.
func NewLine(r io.Reader, w io.Writer) *Line {
	return &Line{reader: bufio.NewReader(r), w: w}
}

// MultiSelect accepts comma- or space-separated numbers. An empty answer
// keeps the defaults and "none" selects nothing.
func (l *Line) MultiSelect(msg string, options, defaults []string) ([]string, error) {
	fmt.Fprintf(l.w, "\n%s\n", msg)
	for i, opt := range options {
		mark := " "
		if slices.Contains(defaults, opt) {
			mark = "x"
		}
		fmt.Fprintf(l.w, "  [%s] %d) %s\n", mark, i+1, opt)
	}
	fmt.Fprintf(l.w, "Enter numbers separated by commas, \"none\", or press Enter to keep [x]: ")

	line, err := l.readLine()
	if err != nil {
		return nil, err
	}
	if line == "" {
		var kept []string
		for _, opt := range options {
			if slices.Contains(defaults, opt) {
				kept = append(kept, opt)
			}
		}
		return kept, nil
	}
	if strings.EqualFold(line, "none") {
		return []string{}, nil
	}

	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' })
	seen := make(map[int]bool)
	for _, f := range fields {
		num, err := strconv.Atoi(f)
		if err != nil || num < 1 || num > len(options) {
			return nil, fmt.Errorf("invalid selection %q: choose 1-%d", f, len(options))
		}
		seen[num-1] = true
	}

	// Keep menu order regardless of answer order.
	var selected []string
	for i, opt := range options {
		if seen[i] {
			selected = append(selected, opt)
		}
	}
	return selected, nil
}

// Select presents a numbered list and returns the chosen option. An empty
// answer picks def.
func (l *Line) Select(msg string, options []string, def string) (string, error) {
	fmt.Fprintf(l.w, "\n%s\n", msg)
	for i, opt := range options {
		fmt.Fprintf(l.w, "  %d) %s\n", i+1, opt)
	}
	if def != "" {
		fmt.Fprintf(l.w, "Enter number [1-%d] (default %s): ", len(options), def)
	} else {
		fmt.Fprintf(l.w, "Enter number [1-%d]: ", len(options))
	}

	line, err := l.readLine()
	if err != nil {
		return "", err
	}
	if line == "" && def != "" {
		return def, nil
	}

	num, err := strconv.Atoi(line)
	if err != nil || num < 1 || num > len(options) {
		return "", fmt.Errorf("invalid selection %q: choose 1-%d", line, len(options))
	}
	return options[num-1], nil
}

// Confirm asks a yes/no question. An empty answer picks def.
func (l *Line) Confirm(msg string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(l.w, "\n%s [%s]: ", msg, hint)

	line, err := l.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid answer %q: expected y or n", line)
}

// readLine returns the next trimmed line. Input that ends before any answer
// is typed counts as an abort.
func (l *Line) readLine() (string, error) {
	line, err := l.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
