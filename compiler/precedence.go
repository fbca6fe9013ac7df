package compiler

// Precedence orders how tightly an infix operator binds, lowest first.
// parsePrecedence consumes tokens as long as the next token's rule
// precedence is at least the precedence it was called with.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)
