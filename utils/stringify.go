package utils

import "github.com/fatih/color"

// Colorize holds the terminal colour schemes used when pretty printing models
// and diagnostics. Every function honours -no-colorize.
var Colorize = struct {
	Kind    func(...interface{}) string
	Ident   func(...interface{}) string
	Const   func(...interface{}) string
	Warning func(...interface{}) string
	Error   func(...interface{}) string
	Pass    func(...interface{}) string
}{
	Kind: func(is ...interface{}) string {
		return CanColorize(color.New(color.FgHiBlue).SprintFunc())(is...)
	},
	Ident: func(is ...interface{}) string {
		return CanColorize(color.New(color.FgHiGreen).SprintFunc())(is...)
	},
	Const: func(is ...interface{}) string {
		return CanColorize(color.New(color.FgCyan).SprintFunc())(is...)
	},
	Warning: func(is ...interface{}) string {
		return CanColorize(color.New(color.FgHiYellow).SprintFunc())(is...)
	},
	Error: func(is ...interface{}) string {
		return CanColorize(color.New(color.FgHiRed, color.Bold).SprintFunc())(is...)
	},
	Pass: func(is ...interface{}) string {
		return CanColorize(color.New(color.FgMagenta).SprintFunc())(is...)
	},
}
