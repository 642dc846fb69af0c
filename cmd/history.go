package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jpappel/squint/pkg/data"
)

type HistoryFlags struct {
	N     int
	Clear bool
}

func SetupHistoryFlags(args []string, fs *flag.FlagSet, flags *HistoryFlags) {
	fs.IntVar(&flags.N, "n", 10, "maximum `number` of entries to show")
	fs.BoolVar(&flags.Clear, "clear", false, "delete all recorded optimizations")

	fs.Parse(args)
}

func RunHistory(hFlags HistoryFlags, history *data.History) byte {
	if hFlags.Clear {
		if err := history.Clear(); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to clear history: ", err)
			return 1
		}
		return 0
	}

	entries, err := history.Recent(hFlags.N)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to read history: ", err)
		return 1
	}

	if len(entries) == 0 {
		fmt.Println("No recorded optimizations.")
		return 0
	}

	for _, entry := range entries {
		fmt.Printf("%d\t%s\t%s\t%d conditions, %d moved\n",
			entry.Id, entry.QueriedAt.Format(time.DateTime),
			entry.Statement, entry.Conditions, entry.Moved)
	}

	return 0
}
