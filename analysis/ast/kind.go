package ast

// Kind identifies the variant of a node.
type Kind int

const (
	KindIntConst Kind = iota
	KindBoolConst
	KindIdentifier
	KindSetConst
	KindMatrix
	KindWeightedSum
	KindTimes
	KindDiv
	KindMod
	KindUnaryMinus
	KindAbs
	KindEquals
	KindLessEqual
	KindLess
	KindAllDifferent
	KindAnd
	KindOr
	KindImplies
	KindIff
	KindXor
	KindNegate
	KindInSet
	KindTable
	KindNegativeTable
	KindTableRef
	KindTableLiteral
	KindGlobalCard
	KindForall
	KindExists
	KindQuantSum
	KindTop
)

var kindNames = [...]string{
	KindIntConst:      "int",
	KindBoolConst:     "bool",
	KindIdentifier:    "id",
	KindSetConst:      "set",
	KindMatrix:        "matrix",
	KindWeightedSum:   "sum",
	KindTimes:         "*",
	KindDiv:           "div",
	KindMod:           "mod",
	KindUnaryMinus:    "-",
	KindAbs:           "abs",
	KindEquals:        "=",
	KindLessEqual:     "<=",
	KindLess:          "<",
	KindAllDifferent:  "alldiff",
	KindAnd:           "and",
	KindOr:            "or",
	KindImplies:       "->",
	KindIff:           "<->",
	KindXor:           "xor",
	KindNegate:        "not",
	KindInSet:         "in",
	KindTable:         "table",
	KindNegativeTable: "negtable",
	KindTableRef:      "tableref",
	KindTableLiteral:  "tuples",
	KindGlobalCard:    "gcc",
	KindForall:        "forall",
	KindExists:        "exists",
	KindQuantSum:      "qsum",
	KindTop:           "top",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}
