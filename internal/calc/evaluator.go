package calc

import (
	"fmt"
	"math"
)

// Evaluate вычисляет значение операции. Функция чистая и тотальная:
// деление на ноль дает ±Inf или NaN по правилам IEEE-754,
// nil дает NaN.
func Evaluate(op Operation) float64 {
	switch o := op.(type) {
	case Number:
		return o.Value
	case Addition:
		return Evaluate(o.Left) + Evaluate(o.Right)
	case Subtraction:
		return Evaluate(o.Left) - Evaluate(o.Right)
	case Multiplication:
		return Evaluate(o.Left) * Evaluate(o.Right)
	case Division:
		return Evaluate(o.Left) / Evaluate(o.Right)
	default:
		return math.NaN()
	}
}

// Calculate разбирает строку и вычисляет результат
func Calculate(input string) (float64, error) {
	op, err := Parse(input)
	if err != nil {
		return 0, err
	}
	return Evaluate(op), nil
}

// FormatResult форматирует результат стандартным для Go способом: 3, 0.5, +Inf
func FormatResult(value float64) string {
	return fmt.Sprint(value)
}
