package calc

import (
	"fmt"
	"strconv"
)

// Поддерживаемые символы операторов
const (
	SymbolAddition       = '+'
	SymbolSubtraction    = '-'
	SymbolMultiplication = '*'
	SymbolDivision       = '/'
)

// Operation - разобранное выражение. Набор вариантов закрыт:
// Number, Addition, Subtraction, Multiplication, Division.
type Operation interface {
	fmt.Stringer
	isOperation()
}

// Number - лист дерева, числовой операнд
type Number struct {
	Value float64
}

// Addition - сложение двух операций
type Addition struct {
	Left  Operation
	Right Operation
}

// Subtraction - вычитание правой операции из левой
type Subtraction struct {
	Left  Operation
	Right Operation
}

// Multiplication - умножение двух операций
type Multiplication struct {
	Left  Operation
	Right Operation
}

// Division - деление левой операции на правую
type Division struct {
	Left  Operation
	Right Operation
}

func (Number) isOperation()         {}
func (Addition) isOperation()       {}
func (Subtraction) isOperation()    {}
func (Multiplication) isOperation() {}
func (Division) isOperation()       {}

func (n Number) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

func (a Addition) String() string {
	return binaryString(a.Left, SymbolAddition, a.Right)
}

func (s Subtraction) String() string {
	return binaryString(s.Left, SymbolSubtraction, s.Right)
}

func (m Multiplication) String() string {
	return binaryString(m.Left, SymbolMultiplication, m.Right)
}

func (d Division) String() string {
	return binaryString(d.Left, SymbolDivision, d.Right)
}

func binaryString(left Operation, symbol rune, right Operation) string {
	return fmt.Sprintf("%v %c %v", left, symbol, right)
}

// NewBinary создает бинарную операцию по символу оператора.
// Для неизвестного символа возвращает *InvalidOperatorError.
func NewBinary(symbol rune, left, right Operation) (Operation, error) {
	switch symbol {
	case SymbolAddition:
		return Addition{Left: left, Right: right}, nil
	case SymbolSubtraction:
		return Subtraction{Left: left, Right: right}, nil
	case SymbolMultiplication:
		return Multiplication{Left: left, Right: right}, nil
	case SymbolDivision:
		return Division{Left: left, Right: right}, nil
	default:
		return nil, &InvalidOperatorError{Operator: symbol}
	}
}
