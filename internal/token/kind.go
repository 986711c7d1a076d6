package token

// Kind represents the category of a script token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Number represents a numeric literal.
	Number
	// String represents a string literal (text holds the raw quoted form).
	String

	// Keywords.
	KwVar        // var
	KwFunction   // function
	KwReturn     // return
	KwIf         // if
	KwElse       // else
	KwFor        // for
	KwWhile      // while
	KwDo         // do
	KwBreak      // break
	KwContinue   // continue
	KwNew        // new
	KwDelete     // delete
	KwTypeof     // typeof
	KwInstanceof // instanceof
	KwIn         // in
	KwThis       // this
	KwTrue       // true
	KwFalse      // false
	KwNull       // null
	KwVoid       // void
	KwThrow      // throw

	// Punctuation and operators.
	LBrace      // {
	RBrace      // }
	LParen      // (
	RParen      // )
	LBracket    // [
	RBracket    // ]
	Semicolon   // ;
	Comma       // ,
	Dot         // .
	Question    // ?
	Colon       // :
	Assign      // =
	PlusAssign  // +=
	MinusAssign // -=
	StarAssign  // *=
	SlashAssign // /=
	PctAssign   // %=
	AmpAssign   // &=
	PipeAssign  // |=
	CaretAssign // ^=
	ShlAssign   // <<=
	ShrAssign   // >>=
	UShrAssign  // >>>=
	EqEq        // ==
	NotEq       // !=
	EqEqEq      // ===
	NotEqEq     // !==
	Lt          // <
	LtEq        // <=
	Gt          // >
	GtEq        // >=
	AndAnd      // &&
	OrOr        // ||
	Bang        // !
	Tilde       // ~
	Amp         // &
	Pipe        // |
	Caret       // ^
	Shl         // <<
	Shr         // >>
	UShr        // >>>
	Plus        // +
	Minus       // -
	Star        // *
	Slash       // /
	Percent     // %
	PlusPlus    // ++
	MinusMinus  // --
)

var kindNames = map[Kind]string{
	Invalid: "invalid", EOF: "eof", Ident: "ident", Number: "number", String: "string",
	KwVar: "var", KwFunction: "function", KwReturn: "return", KwIf: "if", KwElse: "else",
	KwFor: "for", KwWhile: "while", KwDo: "do", KwBreak: "break", KwContinue: "continue",
	KwNew: "new", KwDelete: "delete", KwTypeof: "typeof", KwInstanceof: "instanceof",
	KwIn: "in", KwThis: "this", KwTrue: "true", KwFalse: "false", KwNull: "null",
	KwVoid: "void", KwThrow: "throw",
	LBrace: "{", RBrace: "}", LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	Semicolon: ";", Comma: ",", Dot: ".", Question: "?", Colon: ":",
	Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=", SlashAssign: "/=",
	PctAssign: "%=", AmpAssign: "&=", PipeAssign: "|=", CaretAssign: "^=",
	ShlAssign: "<<=", ShrAssign: ">>=", UShrAssign: ">>>=",
	EqEq: "==", NotEq: "!=", EqEqEq: "===", NotEqEq: "!==",
	Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=", AndAnd: "&&", OrOr: "||",
	Bang: "!", Tilde: "~", Amp: "&", Pipe: "|", Caret: "^",
	Shl: "<<", Shr: ">>", UShr: ">>>",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	PlusPlus: "++", MinusMinus: "--",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
