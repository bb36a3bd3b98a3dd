package main

import (
	"fmt"
	"io"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"golang.org/x/term"
)

// printer writes JSON values, indented and colored on a terminal.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer) *printer {
	p := &printer{w: w}
	if f, ok := w.(*os.File); ok {
		p.color = term.IsTerminal(int(f.Fd()))
	}
	return p
}

func (p *printer) json(s string) {
	if !gjson.Valid(s) {
		fmt.Fprintln(p.w, s)
		return
	}
	out := pretty.Pretty([]byte(s))
	if p.color {
		out = pretty.Color(out, nil)
	}
	p.w.Write(out)
}

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}
