// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package diagnostic renders positioned template errors as a source excerpt
// with the offending characters underlined:
//
//	undefined variable at line 1, column 3: "missing" is not defined
//	  1 | ${missing.path}
//	    |   ^~~~~~~~~~~~
package diagnostic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-configtpl/internal/template"
	"github.com/MKhiriev/go-configtpl/models"
)

// Excerpt returns the line of source addressed by span followed by a caret
// underline starting at span.Start and max(1, span.Width()) characters
// wide. Tabs before the span are repeated in the underline so it stays
// aligned. A span outside source yields "".
func Excerpt(source string, span models.Span) string {
	line, ok := lineAt(source, span.Line)
	if !ok {
		return ""
	}
	return line + "\n" + underline(line, span)
}

// Format returns err's message, followed by a numbered excerpt when err
// wraps a positioned template error that carries its source.
func Format(err error) string {
	if err == nil {
		return ""
	}

	num, line, marks, ok := excerptOf(err)
	if !ok {
		return err.Error()
	}
	pad := strings.Repeat(" ", len(num))
	return fmt.Sprintf("%s\n  %s | %s\n  %s | %s", err.Error(), num, line, pad, marks)
}

// Styled is Format with terminal styling: a bold message, a faint gutter
// and a red underline.
func Styled(err error) string {
	if err == nil {
		return ""
	}

	msg := messageStyle.Render(err.Error())
	num, line, marks, ok := excerptOf(err)
	if !ok {
		return msg
	}
	pad := strings.Repeat(" ", len(num))
	return msg + "\n" +
		gutterStyle.Render("  "+num+" | ") + sourceStyle.Render(line) + "\n" +
		gutterStyle.Render("  "+pad+" | ") + caretStyle.Render(marks)
}

// excerptOf splits the excerpt of the template error in err's chain into
// the line number, the source line and its underline.
func excerptOf(err error) (num, line, marks string, ok bool) {
	terr, found := template.AsError(err)
	if !found || terr.Source == "" {
		return "", "", "", false
	}
	excerpt := Excerpt(terr.Source, terr.Span)
	if excerpt == "" {
		return "", "", "", false
	}
	line, marks, _ = strings.Cut(excerpt, "\n")
	return strconv.Itoa(terr.Span.Line), line, marks, true
}

func lineAt(source string, n int) (string, bool) {
	lines := strings.Split(source, "\n")
	if n < 1 || n > len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[n-1], "\r"), true
}

func underline(line string, span models.Span) string {
	runes := []rune(line)
	start := min(max(span.Start, 0), len(runes))
	width := max(1, span.Width())

	var b strings.Builder
	for _, r := range runes[:start] {
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	b.WriteString(strings.Repeat("~", width-1))
	return b.String()
}
