package ui

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spin starts a stderr spinner with the given message and returns the
// function that stops it. Nothing is shown when stderr is not a terminal.
func Spin(msg string) func() {
	if !IsTerminal(os.Stderr) {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}
