package parser

import (
	"github.com/pontaoski/melbi/ast"
	"github.com/pontaoski/melbi/types"
)

// Precedence levels, higher binds tighter. Prefix forms (lambda, if, not,
// unary minus, some) use their level as the minimum binding power of their
// operand; infix and postfix forms use it in the climbing loop.
const (
	levelLambda    = -3
	levelPostBlock = -2 // where { }, match { }
	levelOtherwise = -1
	levelIf        = 0
	levelOr        = 1
	levelAnd       = 2
	levelNot       = 3
	levelCompare   = 4 // == != < > <= >= in, not in
	levelSum       = 5
	levelProduct   = 6
	levelUnary     = 7 // unary -, some
	levelPower     = 8
	levelCall      = 9
	levelIndex     = 10
	levelField     = 11
	levelCast      = 12
)

type infixInfo struct {
	level int
	right bool
	op    ast.BinaryOp
}

var infixOps = map[types.TokenKind]infixInfo{
	types.OR:    {levelOr, false, ast.BinOr},
	types.AND:   {levelAnd, false, ast.BinAnd},
	types.EQ:    {levelCompare, false, ast.BinEq},
	types.NEQ:   {levelCompare, false, ast.BinNeq},
	types.LT:    {levelCompare, false, ast.BinLt},
	types.GT:    {levelCompare, false, ast.BinGt},
	types.LTE:   {levelCompare, false, ast.BinLte},
	types.GTE:   {levelCompare, false, ast.BinGte},
	types.IN:    {levelCompare, false, ast.BinIn},
	types.PLUS:  {levelSum, false, ast.BinAdd},
	types.MINUS: {levelSum, false, ast.BinSub},
	types.STAR:  {levelProduct, false, ast.BinMul},
	types.SLASH: {levelProduct, false, ast.BinDiv},
	types.CARET: {levelPower, true, ast.BinPow},
}
