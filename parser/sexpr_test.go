package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pontaoski/melbi/ast"
)

// sexpr renders an AST as a compact s-expression so tests can assert on
// structure without spelling out node types.
func sexpr(e ast.Expr) string {
	switch v := e.(type) {
	case ast.Ident:
		return v.Name
	case ast.IntLit:
		return withSuffix(strconv.FormatInt(v.Value, 10), v.Suffix)
	case ast.FloatLit:
		return withSuffix(strconv.FormatFloat(v.Value, 'g', -1, 64), v.Suffix)
	case ast.BoolLit:
		return strconv.FormatBool(v.Value)
	case ast.NoneLit:
		return "none"
	case ast.StringLit:
		return strconv.Quote(v.Value)
	case ast.BytesLit:
		return fmt.Sprintf("(bytes %q)", string(v.Value))
	case ast.FormatStringLit:
		parts := make([]string, 0, len(v.Segments)+1)
		parts = append(parts, "fstring")
		for _, seg := range v.Segments {
			switch s := seg.(type) {
			case ast.TextSegment:
				parts = append(parts, strconv.Quote(s.Value))
			case ast.EmbedSegment:
				parts = append(parts, sexpr(s.Expr))
			}
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.RecordLit:
		parts := []string{"record"}
		for _, f := range v.Fields {
			parts = append(parts, fmt.Sprintf("(%s %s)", f.Name.Name, sexpr(f.Value)))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.ArrayLit:
		parts := []string{"array"}
		for _, el := range v.Elems {
			parts = append(parts, sexpr(el))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.MapLit:
		parts := []string{"map"}
		for _, entry := range v.Entries {
			parts = append(parts, fmt.Sprintf("(%s %s)", sexpr(entry.Key), sexpr(entry.Value)))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.Unary:
		op := map[ast.UnaryOp]string{
			ast.UnaryNot:  "not",
			ast.UnaryNeg:  "neg",
			ast.UnarySome: "some",
		}[v.Op]
		return fmt.Sprintf("(%s %s)", op, sexpr(v.Operand))
	case ast.Binary:
		op := v.Op.String()
		if v.Op == ast.BinNotIn {
			op = "not-in"
		}
		return fmt.Sprintf("(%s %s %s)", op, sexpr(v.Left), sexpr(v.Right))
	case ast.If:
		return fmt.Sprintf("(if %s %s %s)", sexpr(v.Cond), sexpr(v.Then), sexpr(v.Else))
	case ast.Lambda:
		names := make([]string, len(v.Params))
		for i, p := range v.Params {
			names[i] = p.Name
		}
		return fmt.Sprintf("(lambda (%s) %s)", strings.Join(names, " "), sexpr(v.Body))
	case ast.Where:
		parts := []string{"where", sexpr(v.Expr)}
		for _, b := range v.Bindings {
			parts = append(parts, fmt.Sprintf("(%s %s)", b.Name.Name, sexpr(b.Value)))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.Match:
		parts := []string{"match", sexpr(v.Expr)}
		for _, arm := range v.Arms {
			parts = append(parts, fmt.Sprintf("(%s %s)", patternSexpr(arm.Pattern), sexpr(arm.Body)))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.Otherwise:
		return fmt.Sprintf("(otherwise %s %s)", sexpr(v.Left), sexpr(v.Right))
	case ast.Cast:
		return fmt.Sprintf("(as %s %s)", sexpr(v.Expr), typeSexpr(v.Type))
	case ast.FieldAccess:
		return fmt.Sprintf("(field %s %s)", sexpr(v.Object), v.Name.Name)
	case ast.Index:
		return fmt.Sprintf("(index %s %s)", sexpr(v.Object), sexpr(v.Key))
	case ast.Call:
		parts := []string{"call", sexpr(v.Fn)}
		for _, arg := range v.Args {
			parts = append(parts, sexpr(arg))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.Grouped:
		return fmt.Sprintf("(group %s)", sexpr(v.Inner))
	}
	return fmt.Sprintf("<unknown %T>", e)
}

func withSuffix(lit string, suffix ast.Expr) string {
	if suffix == nil {
		return lit
	}
	return fmt.Sprintf("(suffix %s %s)", lit, sexpr(suffix))
}

func patternSexpr(p ast.Pattern) string {
	switch v := p.(type) {
	case ast.LiteralPattern:
		return sexpr(v.Value)
	case ast.WildcardPattern:
		return "_"
	case ast.NonePattern:
		return "none"
	case ast.SomePattern:
		return fmt.Sprintf("(some %s)", patternSexpr(v.Elem))
	case ast.VarPattern:
		return v.Name
	case ast.GroupPattern:
		return fmt.Sprintf("(group %s)", patternSexpr(v.Inner))
	}
	return fmt.Sprintf("<unknown %T>", p)
}

// typeSexpr renders type expressions in their surface syntax, which is
// already unambiguous.
func typeSexpr(t ast.TypeExpr) string {
	switch v := t.(type) {
	case ast.TypeRef:
		if len(v.Args) == 0 {
			return v.Name()
		}
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = typeSexpr(a)
		}
		return fmt.Sprintf("%s[%s]", v.Name(), strings.Join(args, ", "))
	case ast.RecordType:
		fields := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = fmt.Sprintf("%s: %s", f.Name.Name, typeSexpr(f.Type))
		}
		return fmt.Sprintf("Record[%s]", strings.Join(fields, ", "))
	}
	return fmt.Sprintf("<unknown %T>", t)
}
