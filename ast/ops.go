package ast

type UnaryOp int

const (
	UnaryNot UnaryOp = iota
	UnaryNeg
	UnarySome
)

var unaryNames = map[UnaryOp]string{
	UnaryNot:  "not",
	UnaryNeg:  "-",
	UnarySome: "some",
}

func (op UnaryOp) String() string {
	return unaryNames[op]
}

type BinaryOp int

const (
	BinOr BinaryOp = iota
	BinAnd
	BinEq
	BinNeq
	BinLt
	BinGt
	BinLte
	BinGte
	BinIn
	BinNotIn
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinPow
)

var binaryNames = map[BinaryOp]string{
	BinOr:    "or",
	BinAnd:   "and",
	BinEq:    "==",
	BinNeq:   "!=",
	BinLt:    "<",
	BinGt:    ">",
	BinLte:   "<=",
	BinGte:   ">=",
	BinIn:    "in",
	BinNotIn: "not in",
	BinAdd:   "+",
	BinSub:   "-",
	BinMul:   "*",
	BinDiv:   "/",
	BinPow:   "^",
}

func (op BinaryOp) String() string {
	return binaryNames[op]
}
