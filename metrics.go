package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/crow-cp/crow/analysis/rewrite"
	"github.com/crow-cp/crow/analysis/symtab"
	"github.com/crow-cp/crow/utils"
)

func printMetrics(stats *rewrite.Stats, diag *symtab.Log) {
	msg := "================ Results =====================\n\n"
	msg += stats.String()
	msg += fmt.Sprintf("\nWarnings: %d\nErrors: %d\n", len(diag.Warnings), len(diag.Errors))
	msg += "================ Results ====================="
	fmt.Println(msg)
}

// highlight colours a rendered expression: the kind after an opening
// parenthesis, integer literals and identifiers.
func highlight(s string) string {
	var b strings.Builder
	afterParen := false
	for i := 0; i < len(s); {
		c := rune(s[i])
		if strings.ContainsRune("()[]{} \n\t,", c) {
			b.WriteByte(s[i])
			afterParen = c == '('
			i++
			continue
		}
		j := i
		for j < len(s) && !strings.ContainsRune("()[]{} \n\t,", rune(s[j])) {
			j++
		}
		tok := s[i:j]
		switch {
		case afterParen:
			b.WriteString(utils.Colorize.Kind(tok))
		case tok[0] == '-' || unicode.IsDigit(rune(tok[0])) || tok == "true" || tok == "false":
			b.WriteString(utils.Colorize.Const(tok))
		default:
			b.WriteString(utils.Colorize.Ident(tok))
		}
		afterParen = false
		i = j
	}
	return b.String()
}
