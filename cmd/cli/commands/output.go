package commands

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	dim    = color.New(color.Faint)
	bold   = color.New(color.Bold)
)

// success prints a green line with a check mark
func success(format string, a ...any) {
	green.Printf("✓ "+format+"\n", a...)
}

// heading prints a bold line surrounded by blank lines
func heading(format string, a ...any) {
	fmt.Println()
	bold.Printf(format+"\n", a...)
	fmt.Println()
}
