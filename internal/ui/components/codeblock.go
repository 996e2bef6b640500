// Copyright (c) 2025-2026 Ethan Carlin
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

// =============================================================================
// CODE BLOCK HIGHLIGHTING
// =============================================================================

// HighlightFences finds ``` fenced code blocks in text and replaces their
// bodies with syntax-highlighted output. Used in plain-text mode, where the
// full markdown pipeline is off but code should stay readable. styleName is
// a chroma style such as "monokai".
func HighlightFences(text, styleName string) string {
	lines := strings.Split(text, "\n")
	var out []string
	var code []string
	var language string
	inFence := false

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			if !inFence {
				inFence = true
				language = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "```"))
				code = code[:0]
			} else {
				inFence = false
				out = append(out, highlight(strings.Join(code, "\n"), language, styleName))
			}
			continue
		}
		if inFence {
			code = append(code, line)
		} else {
			out = append(out, line)
		}
	}

	// Unterminated fence: emit what accumulated, highlighted.
	if inFence {
		out = append(out, highlight(strings.Join(code, "\n"), language, styleName))
	}

	return strings.Join(out, "\n")
}

// highlight runs chroma over code, returning the input unchanged on any
// failure.
func highlight(code, language, styleName string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	style := chromaStyles.Get(styleName)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return code
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(b.String(), "\n")
}
