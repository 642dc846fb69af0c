package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
)

func PrintHelp(w io.Writer) {
	fmt.Fprintln(w, "squint is a WHERE clause selectivity advisor")
	fmt.Fprintf(w, "\nUsage:\n  %s [global-flags] <command>\n\n", os.Args[0])
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  optimize     - reorder a statement's conditions by selectivity")
	fmt.Fprintln(w, "  examples     - optimize a set of example statements")
	fmt.Fprintln(w, "  history      - show or clear past optimizations")
	fmt.Fprintln(w, "  shell        - start an interactive shell")
	fmt.Fprintln(w, "  server       - start an http optimization server (EXPERIMENTAL)")
	fmt.Fprintln(w, "  help         - print this help then exit")
}

func PrintGlobalFlags(w io.Writer) {
	fmt.Fprintln(w, "\nGlobal Flags:")
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
}
