package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for the local chat shell.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Warm yellow-to-blue gradient.
	s1 := termenv.String("  _                       _     ").Foreground(p.Color("#fbbf24"))
	s2 := termenv.String(" | | _____  _ __ ___  _ _(_)___ ").Foreground(p.Color("#f59e0b"))
	s3 := termenv.String(" | |/ / _ \\| '_ ` _ \\| '_ \\ / __|").Foreground(p.Color("#60a5fa"))
	s4 := termenv.String(" |   < (_) | | | | | | |_) | \\__ \\").Foreground(p.Color("#3b82f6"))
	s5 := termenv.String(" |_|\\_\\___/|_| |_| |_| .__/|_|___/").Foreground(p.Color("#2563eb"))
	s6 := termenv.String("                     |_|          ").Foreground(p.Color("#1d4ed8"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println()
}
