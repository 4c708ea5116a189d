package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

const asciiBanner = `   _____________
  |  _________  |
  | [x] _______ |
  | [x] _______ |
  | [ ] _______ |
  | [ ] _______ |
  |_____________|
`

// PrintBanner displays the list art on startup when stdout is a terminal.
func PrintBanner() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	fmt.Print(asciiBanner)
	fmt.Println()
}
