package utils

import "flag"

// MakePath returns the model file named by the first non-flag argument.
// If no path is provided, it defaults to "-", meaning standard input.
func MakePath() string {
	if args := flag.Args(); len(args) >= 1 {
		return args[0]
	}
	return "-"
}
