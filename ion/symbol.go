package ion

import "strconv"

// SymbolToken is a symbol identifier with optionally resolved text.
type SymbolToken struct {
	Text *string
	SID  uint64
}

// NewSymbolToken returns a token with the given id and no text.
func NewSymbolToken(sid uint64) SymbolToken {
	return SymbolToken{SID: sid}
}

// HasText reports whether the token's text is known.
func (t SymbolToken) HasText() bool {
	return t.Text != nil
}

// Equal compares ids and, when both are resolved, text.
func (t SymbolToken) Equal(o SymbolToken) bool {
	if t.SID != o.SID || t.HasText() != o.HasText() {
		return false
	}
	return !t.HasText() || *t.Text == *o.Text
}

func (t SymbolToken) String() string {
	if t.Text != nil {
		return *t.Text
	}
	return "$" + strconv.FormatUint(t.SID, 10)
}

// SymbolResolver attaches text to symbol tokens.
// Resolve returns tok unchanged when it has no text for the id.
type SymbolResolver interface {
	Resolve(tok SymbolToken) SymbolToken
}

// SymbolTable is a SymbolResolver over a fixed id-indexed list of texts. Index 0
// corresponds to symbol id 1; id 0 never resolves.
type SymbolTable []string

// Resolve implements SymbolResolver.
func (st SymbolTable) Resolve(tok SymbolToken) SymbolToken {
	if tok.Text != nil || tok.SID == 0 || tok.SID > uint64(len(st)) {
		return tok
	}
	text := st[tok.SID-1]
	tok.Text = &text
	return tok
}

// SystemSymbols is the version 1.0 system symbol table.
var SystemSymbols = SymbolTable{
	"$ion",
	"$ion_1_0",
	"$ion_symbol_table",
	"name",
	"version",
	"imports",
	"symbols",
	"max_id",
	"$ion_shared_symbol_table",
}
