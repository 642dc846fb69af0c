package shell

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

var commands = []string{
	"help",
	"clear",
	"optimize",
	"explain",
	"plan",
	"tokens",
	"score",
	"examples",
	"history",
	"env",
	"quit",
}

func (inter *Interpreter) Run() error {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		panic(err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)
	inter.term = term.NewTerminal(os.Stdin, "squint> ")
	inter.term.SetPrompt(
		string(inter.term.Escape.Yellow) + "squint> " +
			string(inter.term.Escape.Reset),
	)

	for {
		line, err := inter.term.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		quit, err := inter.Eval(inter.term, line)
		if quit {
			return err
		} else if err != nil {
			fmt.Fprintln(inter.term, string(inter.term.Escape.Red), "Error:",
				string(inter.term.Escape.Reset), err)
		}
	}
}
