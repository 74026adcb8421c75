package parser

import (
	"github.com/ccollicutt/chatlens/pkg/records"
)

// Preprocessor converts decoded export text into the normalized record
// table, or fails. The built-in Assembler is one implementation;
// alternate parsers can be substituted at the application boundary.
type Preprocessor interface {
	Preprocess(text string) (*records.Table, error)
}

// Preprocess implements Preprocessor. The built-in scan absorbs all
// per-line failures, so the error is always nil; it exists for
// substitute implementations with real failure modes.
func (a *Assembler) Preprocess(text string) (*records.Table, error) {
	return a.Table(text), nil
}

var _ Preprocessor = (*Assembler)(nil)
