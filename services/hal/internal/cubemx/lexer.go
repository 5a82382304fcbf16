package cubemx

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// CubeLexer tokenises the subset of C that STM32CubeMX emits for GPIO setup.
// Rules are tried in order, so the HAL entry points and #define lines win
// over the generic identifier and directive rules.
var CubeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `/\*(?s:.*?)\*/|//[^\n]*`},
	{Name: "Define", Pattern: `#[ \t]*define[ \t]+\w+[^\n]*`},
	{Name: "Directive", Pattern: `#[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},

	// HAL/LL entry points
	{Name: "Clock", Pattern: `__HAL_RCC_GPIO[A-K]_CLK_ENABLE\b`},
	{Name: "WritePin", Pattern: `HAL_GPIO_WritePin\b`},
	{Name: "InitPins", Pattern: `HAL_GPIO_Init\b`},

	{Name: "Ident", Pattern: `[A-Za-z_]\w*`},
	{Name: "Int", Pattern: `0[xX][0-9A-Fa-f]+[uUlL]*|[0-9]+[uUlL]*`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Char", Pattern: `'(?:[^'\\]|\\.)*'`},
	{Name: "Punct", Pattern: `[-+*/%&|^~!<>=?:;,.(){}\[\]]`},
})
