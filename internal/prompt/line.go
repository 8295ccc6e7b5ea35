package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/webstarter-labs/webstarter/internal/answers"
)

// LineAsker asks over plain streams with numbered menus, for terminals huh
// cannot drive and for piped input. An empty line takes the default.
type LineAsker struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewLineAsker reads answers from r and writes questions to w.
func NewLineAsker(r io.Reader, w io.Writer) *LineAsker {
	return &LineAsker{reader: bufio.NewReader(r), w: w}
}

// Ask implements Asker.
func (l *LineAsker) Ask(ctx context.Context, questions []Question, seed answers.Answers) (answers.Answers, error) {
	if err := Validate(questions); err != nil {
		return nil, err
	}
	got := answers.Answers{}
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !visible(q, seed, got) {
			continue
		}

		var (
			v   any
			err error
		)
		switch q.Type {
		case TypeInput:
			v, err = l.input(q)
		case TypeConfirm:
			v, err = l.confirm(q)
		case TypeList:
			v, err = l.list(q)
		case TypeCheckbox:
			v, err = l.checkbox(q)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", q.Name, err)
		}
		got[q.Name] = v
	}
	return got, nil
}

// readLine returns the trimmed line. EOF after partial input is not an error.
func (l *LineAsker) readLine() (string, error) {
	line, err := l.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (l *LineAsker) input(q Question) (string, error) {
	def := defaultString(q)
	if def != "" {
		fmt.Fprintf(l.w, "%s (%s): ", q.Message, def)
	} else {
		fmt.Fprintf(l.w, "%s: ", q.Message)
	}
	line, err := l.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (l *LineAsker) confirm(q Question) (bool, error) {
	def := defaultBool(q)
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(l.w, "%s (%s): ", q.Message, hint)
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

func (l *LineAsker) list(q Question) (string, error) {
	opts := options(q.Choices)
	def := defaultString(q)

	fmt.Fprintf(l.w, "\n%s\n", q.Message)
	for i, c := range opts {
		fmt.Fprintf(l.w, "  %d) %s\n", i+1, c.Name)
	}
	fmt.Fprintf(l.w, "Enter number [1-%d]: ", len(opts))

	line, err := l.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	num, err := strconv.Atoi(line)
	if err != nil || num < 1 || num > len(opts) {
		return "", fmt.Errorf("invalid selection %q: choose 1-%d", line, len(opts))
	}
	return opts[num-1].Value, nil
}

func (l *LineAsker) checkbox(q Question) ([]string, error) {
	def := defaultStrings(q)

	fmt.Fprintf(l.w, "\n%s\n", q.Message)
	var opts []Choice
	for _, s := range sections(q.Choices) {
		if s.Title != "" {
			fmt.Fprintf(l.w, " %s\n", s.Title)
		}
		for _, c := range s.Options {
			opts = append(opts, c)
			fmt.Fprintf(l.w, "  %d) %s\n", len(opts), c.Name)
		}
	}
	fmt.Fprintf(l.w, "Enter numbers separated by commas [1-%d]: ", len(opts))

	line, err := l.readLine()
	if err != nil {
		return nil, err
	}
	if line == "" {
		return def, nil
	}

	picked := []string{}
	for _, field := range strings.Split(line, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		num, err := strconv.Atoi(field)
		if err != nil || num < 1 || num > len(opts) {
			return nil, fmt.Errorf("invalid selection %q: choose 1-%d", field, len(opts))
		}
		picked = append(picked, opts[num-1].Value)
	}
	return picked, nil
}
