package repl_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-calculator/internal/calc"
	"simple-calculator/internal/repl"
)

// recordingCalculator запоминает все строки, дошедшие до вычисления
type recordingCalculator struct {
	lines []string
	inner repl.Calculator
}

func (r *recordingCalculator) Calculate(ctx context.Context, line string) (float64, error) {
	r.lines = append(r.lines, line)
	return r.inner.Calculate(ctx, line)
}

// outputLines возвращает строки вывода без приглашений
func outputLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		if line == repl.PromptMessage || line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func TestRun(t *testing.T) {
	input := "1+2\n1-2\n1*2\n1/2\n1 % 2\nabc\n1+\n   quit   \n5+5\n"
	calculator := &recordingCalculator{inner: repl.LocalCalculator{}}
	var out bytes.Buffer

	err := repl.Run(context.Background(), strings.NewReader(input), &out, calculator)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"3",
		"-1",
		"2",
		"0.5",
		"Operator '%' is not supported, use one of + - * /",
		repl.NotParsableMessage,
		repl.NotParsableMessage,
	}, outputLines(out.String()))

	// "quit" не доходит до калькулятора, а строки после него не читаются
	assert.Equal(t, []string{"1+2", "1-2", "1*2", "1/2", "1 % 2", "abc", "1+"}, calculator.lines)
}

func TestRunStripsLineEndings(t *testing.T) {
	calculator := &recordingCalculator{inner: repl.LocalCalculator{}}
	var out bytes.Buffer

	err := repl.Run(context.Background(), strings.NewReader("3 + 4\r\nquit\r\n"), &out, calculator)
	require.NoError(t, err)

	assert.Equal(t, []string{"3 + 4"}, calculator.lines)
	assert.Equal(t, []string{"7"}, outputLines(out.String()))
}

// Пробелы Unicode одинаково понимаются и для "quit", и для выражений
func TestRunUnicodeWhitespace(t *testing.T) {
	calculator := &recordingCalculator{inner: repl.LocalCalculator{}}
	var out bytes.Buffer

	err := repl.Run(context.Background(), strings.NewReader("1\u00a0+ 2\n\u00a0quit\u2003\n"), &out, calculator)
	require.NoError(t, err)

	assert.Equal(t, []string{"1\u00a0+ 2"}, calculator.lines)
	assert.Equal(t, []string{"3"}, outputLines(out.String()))
}

func TestRunQuitIsCaseSensitive(t *testing.T) {
	calculator := &recordingCalculator{inner: repl.LocalCalculator{}}
	var out bytes.Buffer

	err := repl.Run(context.Background(), strings.NewReader("QUIT\nquit\n"), &out, calculator)
	require.NoError(t, err)

	assert.Equal(t, []string{"QUIT"}, calculator.lines)
	assert.Equal(t, []string{repl.NotParsableMessage}, outputLines(out.String()))
}

// Конец ввода без "quit" завершает цикл без ошибки, последняя строка без \n вычисляется
func TestRunEndOfInput(t *testing.T) {
	var out bytes.Buffer

	err := repl.Run(context.Background(), strings.NewReader("2*21"), &out, repl.LocalCalculator{})
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, outputLines(out.String()))

	out.Reset()
	err = repl.Run(context.Background(), strings.NewReader(""), &out, repl.LocalCalculator{})
	require.NoError(t, err)
	assert.Empty(t, outputLines(out.String()))
}

func TestRunReadError(t *testing.T) {
	readErr := errors.New("broken pipe")
	var out bytes.Buffer

	err := repl.Run(context.Background(), iotest.ErrReader(readErr), &out, repl.LocalCalculator{})
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
}

func TestRunCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calculator := &recordingCalculator{inner: repl.LocalCalculator{}}
	err := repl.Run(ctx, strings.NewReader("1+1\n"), io.Discard, calculator)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calculator.lines)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		result   float64
		err      error
		expected string
	}{
		{name: "Integer result", result: 3, expected: "3"},
		{name: "Fraction", result: 0.5, expected: "0.5"},
		{name: "Not parsable", err: calc.ErrNotParsable, expected: repl.NotParsableMessage},
		{name: "Invalid operator", err: &calc.InvalidOperatorError{Operator: '^'}, expected: "Operator '^' is not supported, use one of + - * /"},
		{name: "Other error", err: errors.New("connection refused"), expected: "Calculation failed: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, repl.Render(tt.result, tt.err))
		})
	}
}
