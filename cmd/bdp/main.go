// Command bdp is a short alias that execs beadpert with the same arguments.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

func main() {
	bin, err := exec.LookPath("beadpert")
	if err != nil {
		fmt.Fprintln(os.Stderr, "bdp: beadpert not found on PATH")
		os.Exit(1)
	}
	if err := syscall.Exec(bin, append([]string{"beadpert"}, os.Args[1:]...), os.Environ()); err != nil {
		fmt.Fprintf(os.Stderr, "bdp: %v\n", err)
		os.Exit(1)
	}
}
