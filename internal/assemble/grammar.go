package assemble

// Grammar structs for the participle parser. The expression language is
// small: an operator call like sum@6(1, 2, min(3, 4)) or a bare integer
// literal, with an optional @version annotation on either.

type exprGrammar struct {
	Call *callGrammar `parser:"@@"`
	Lit  *litGrammar  `parser:"| @@"`
}

type callGrammar struct {
	Op      string         `parser:"@Ident"`
	Version *string        `parser:"('@' @Int)?"`
	Args    []*exprGrammar `parser:"'(' (@@ (',' @@)*)? ')'"`
}

type litGrammar struct {
	Hex     *string `parser:"( @HexInt"`
	Dec     *string `parser:"| @Int )"`
	Version *string `parser:"('@' @Int)?"`
}
