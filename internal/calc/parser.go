package calc

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"simple-calculator/internal/logger"
)

// Порядок правил важен: цифры забираются лексером жадно до того,
// как дело дойдет до одиночного символа.
// Пробельный класс совпадает с unicode.IsSpace, а не с ASCII \s из RE2.
var calculationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Whitespace", Pattern: `[\s\v\p{Z}\x{85}]+`},
	{Name: "Symbol", Pattern: `[^\s\v\p{Z}\x{85}]`},
})

// calculation - синтаксическая форма строки до проверки оператора
type calculation struct {
	Left     string `parser:"@Number"`
	Operator string `parser:"@Symbol"`
	Right    string `parser:"@Number"`
}

var calculationParser = participle.MustBuild[calculation](
	participle.Lexer(calculationLexer),
	participle.Elide("Whitespace"),
)

// Parse разбирает строку вида "3 + 4" в Operation.
// Возвращает ErrNotParsable, если строка не соответствует грамматике,
// и *InvalidOperatorError, если оператор не входит в {+, -, *, /}.
func Parse(input string) (Operation, error) {
	parsed, err := calculationParser.ParseString("", input)
	if err != nil {
		logger.LogINFO(fmt.Sprintf("Error after ParseString: %v", err))
		return nil, ErrNotParsable
	}

	left, err := parseOperand(parsed.Left)
	if err != nil {
		return nil, err
	}

	right, err := parseOperand(parsed.Right)
	if err != nil {
		return nil, err
	}

	// Байт вне UTF-8 не является символом оператора
	symbol, size := utf8.DecodeRuneInString(parsed.Operator)
	if size != len(parsed.Operator) || (symbol == utf8.RuneError && size == 1) {
		return nil, ErrNotParsable
	}

	return NewBinary(symbol, left, right)
}

// parseOperand переводит последовательность цифр в Number.
// Слишком длинные числа переполняют float64 и тоже считаются ошибкой разбора.
func parseOperand(digits string) (Number, error) {
	value, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		logger.LogINFO(fmt.Sprintf("Invalid operand %q: %v", digits, err))
		return Number{}, ErrNotParsable
	}
	return Number{Value: value}, nil
}
