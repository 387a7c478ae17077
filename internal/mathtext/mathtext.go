// Package mathtext converts Markdown-style emphasis mixed with embedded
// math spans into MathText markup for figure labels and legends.
//
// Supported syntax:
//
//	**text**  ->  $\mathbf{text}$
//	*text*    ->  $\mathit{text}$
//	$...$     ->  passed through unchanged
package mathtext

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	mathSpanRe    = regexp.MustCompile(`\$[^$]+\$`)
	boldRe        = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe      = regexp.MustCompile(`\*([^*]+)\*`)
	stripBoldRe   = regexp.MustCompile(`\$\\mathbf\{([^}]+)\}\$`)
	stripItalicRe = regexp.MustCompile(`\$\\mathit\{([^}]+)\}\$`)
	stripRomanRe  = regexp.MustCompile(`\$\\mathrm\{([^}]+)\}\$`)
)

// Preprocess converts emphasis markers to MathText while leaving existing
// $...$ spans untouched.
func Preprocess(text string) string {
	if text == "" {
		return text
	}

	// Hide existing math spans so the emphasis passes cannot touch them.
	var protected []string
	text = mathSpanRe.ReplaceAllStringFunc(text, func(span string) string {
		protected = append(protected, span)
		return fmt.Sprintf("\x00%d\x00", len(protected)-1)
	})

	// Double stars first; the italic pass then only sees single stars.
	text = boldRe.ReplaceAllString(text, `$$\mathbf{$1}$$`)
	text = italicRe.ReplaceAllString(text, `$$\mathit{$1}$$`)

	for i, span := range protected {
		text = strings.Replace(text, fmt.Sprintf("\x00%d\x00", i), span, 1)
	}
	return text
}

// FormatLegend formats a legend entry, combining the editor's bold/italic
// flags with any inline markup. Inline markers take precedence: when the
// text already contains math spans the flags are not applied on top.
func FormatLegend(text string, bold, italic bool) string {
	if text == "" {
		return text
	}
	processed := Preprocess(text)
	if !bold && !italic {
		return processed
	}
	if strings.Contains(processed, "$") {
		return processed
	}
	switch {
	case bold && italic:
		return `$\mathbf{\mathit{` + processed + `}}$`
	case bold:
		return `$\mathbf{` + processed + `}$`
	default:
		return `$\mathit{` + processed + `}$`
	}
}

// Strip removes MathText and emphasis markup, leaving plain text for
// renderers without math support and for name comparisons.
func Strip(text string) string {
	if text == "" {
		return text
	}
	text = stripBoldRe.ReplaceAllString(text, "$1")
	text = stripItalicRe.ReplaceAllString(text, "$1")
	text = stripRomanRe.ReplaceAllString(text, "$1")
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	return text
}
