package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pablor21/typelens"
)

var (
	nameColor = color.New(color.FgCyan, color.Bold)
	typeColor = color.New(color.FgGreen)
	flagColor = color.New(color.FgYellow)
	dimColor  = color.New(color.Faint)
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCallable(w io.Writer, view *typelens.CallableView) {
	fmt.Fprintf(w, "%s %s\n", nameColor.Sprint(view.Name()), dimColor.Sprintf("(%s)", view.Form()))
	for _, p := range view.Parameters() {
		line := fmt.Sprintf("  %s: %s", p.Name(), typeColor.Sprint(p.TypeView().ReprType()))
		if p.HasDefault() {
			line += fmt.Sprintf(" = %v", p.Default())
		}
		var flags []string
		if p.Variadic() {
			flags = append(flags, "variadic")
		}
		if !p.HasAnnotation() {
			flags = append(flags, "unannotated")
		}
		flags = append(flags, typeFlags(p.TypeView())...)
		if len(flags) > 0 {
			line += " " + flagColor.Sprint("["+strings.Join(flags, ", ")+"]")
		}
		fmt.Fprintln(w, line)
		for _, m := range p.TypeView().Metadata() {
			fmt.Fprintf(w, "    %s %v\n", dimColor.Sprint("@"), m)
		}
	}
	fmt.Fprintf(w, "  -> %s\n", typeColor.Sprint(view.ReturnType().ReprType()))
}

func writeType(w io.Writer, view *typelens.TypeView, depth int) {
	indent := strings.Repeat("  ", depth)
	line := indent + typeColor.Sprint(view.ReprType())
	if flags := typeFlags(view); len(flags) > 0 {
		line += " " + flagColor.Sprint("["+strings.Join(flags, ", ")+"]")
	}
	fmt.Fprintln(w, line)
	for _, inner := range view.InnerTypes() {
		writeType(w, inner, depth+1)
	}
}

func typeFlags(v *typelens.TypeView) []string {
	var flags []string
	add := func(ok bool, name string) {
		if ok {
			flags = append(flags, name)
		}
	}
	add(v.IsOptional(), "optional")
	add(v.IsUnion() && !v.IsOptional(), "union")
	add(v.IsLiteral(), "literal")
	add(v.IsMapping(), "mapping")
	add(v.IsNonStringCollection() && !v.IsMapping(), "collection")
	add(v.IsVariadicTuple(), "variadic tuple")
	add(v.IsTypeVar(), "type var")
	add(v.IsForwardRef(), "forward ref")
	add(v.IsAnnotated(), "annotated")
	return flags
}
