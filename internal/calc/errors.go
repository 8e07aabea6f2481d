package calc

import (
	"errors"
	"fmt"
)

// ErrNotParsable - строка не соответствует грамматике "<число> <оператор> <число>"
var ErrNotParsable = errors.New("input is not a valid calculation")

// InvalidOperatorError - строка разобрана, но оператор не поддерживается
type InvalidOperatorError struct {
	Operator rune
}

func (e *InvalidOperatorError) Error() string {
	return fmt.Sprintf("operator '%c' is not supported", e.Operator)
}
