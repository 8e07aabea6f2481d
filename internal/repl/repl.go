package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"simple-calculator/internal/calc"
	"simple-calculator/internal/logger"
)

const (
	// QuitCommand завершает цикл до обращения к парсеру
	QuitCommand = "quit"

	PromptMessage      = `Please enter a calculation (or "quit" to exit)`
	NotParsableMessage = "Input is not a valid calculation, please try again"
)

// Calculator вычисляет одну строку ввода
type Calculator interface {
	Calculate(ctx context.Context, line string) (float64, error)
}

// LocalCalculator вычисляет выражения в текущем процессе
type LocalCalculator struct{}

func (LocalCalculator) Calculate(_ context.Context, line string) (float64, error) {
	return calc.Calculate(line)
}

// Run читает строки из in, пока не встретит "quit" или конец ввода,
// и пишет в out по одной строке на каждый результат.
// Возвращает ошибку только при сбое чтения или записи.
func Run(ctx context.Context, in io.Reader, out io.Writer, calculator Calculator) error {
	reader := bufio.NewReader(in)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := fmt.Fprintln(out, PromptMessage); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}

		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("could not read line: %w", readErr)
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == QuitCommand {
			logger.LogINFO("Quit command received")
			return nil
		}

		if trimmed == "" && errors.Is(readErr, io.EOF) {
			logger.LogINFO("End of input")
			return nil
		}

		line = strings.TrimRight(line, "\r\n")
		if _, err := fmt.Fprintln(out, Render(calculator.Calculate(ctx, line))); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}

		if errors.Is(readErr, io.EOF) {
			return nil
		}
	}
}

// Render превращает результат вычисления в строку для пользователя
func Render(result float64, err error) string {
	if err == nil {
		return calc.FormatResult(result)
	}

	var operatorErr *calc.InvalidOperatorError
	switch {
	case errors.Is(err, calc.ErrNotParsable):
		return NotParsableMessage
	case errors.As(err, &operatorErr):
		return fmt.Sprintf("Operator '%c' is not supported, use one of + - * /", operatorErr.Operator)
	default:
		logger.LogERROR(fmt.Sprintf("Calculation failed: %v", err))
		return "Calculation failed: " + err.Error()
	}
}
