package cubemx

// File is a flat statement stream. Only the statements the importer needs
// are structured; every other token is kept as Other and ignored.
type File struct {
	Items []*Item `@@*`
}

type Item struct {
	Define *string   `  @Define`
	Clock  *string   `| @Clock "(" ")" ";"`
	Write  *Write    `| @@`
	Init   *InitCall `| @@`
	Assign *Assign   `| @@`
	Other  *string   `| @(Ident | Int | String | Char | Punct)`
}

// Write is HAL_GPIO_WritePin(PORT, PIN_A|PIN_B, GPIO_PIN_SET);
type Write struct {
	Port  string   `WritePin "(" @Ident ","`
	Pins  []string `@Ident ( "|" @Ident )* ","`
	State string   `@Ident ")" ";"`
}

// InitCall is HAL_GPIO_Init(PORT, &GPIO_InitStruct);
type InitCall struct {
	Port   string `InitPins "(" @Ident ","`
	Struct string `"&" @Ident ")" ";"`
}

// Assign is GPIO_InitStruct.Field = A|B;
type Assign struct {
	Struct string   `@Ident "."`
	Field  string   `@Ident "="`
	Values []string `@(Ident | Int) ( "|" @(Ident | Int) )* ";"`
}
