package cmd

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jpappel/squint/pkg/data"
	"github.com/jpappel/squint/pkg/query"
)

type OptimizeFlags struct {
	Outputer  query.Outputer
	Explain   bool
	NoHistory bool
}

func SetupOptimizeFlags(args []string, fs *flag.FlagSet, flags *OptimizeFlags) {
	fs.Func("outFormat", "output `format` for optimizations (default, json, yaml)",
		func(arg string) error {
			switch arg {
			case "default":
				flags.Outputer = query.DefaultOutput{}
				return nil
			case "json":
				flags.Outputer = query.JsonOutput{}
				return nil
			case "yaml":
				flags.Outputer = query.YamlOutput{}
				return nil
			}
			return fmt.Errorf("Unrecognized output format: %s", arg)
		})

	fs.BoolVar(&flags.Explain, "explain", false, "print per condition score breakdowns instead of a plan")
	fs.BoolVar(&flags.NoHistory, "noHistory", false, "do not record the optimization")

	fs.Usage = func() {
		f := fs.Output()
		fmt.Fprintf(f, "Usage of %s %s\n", os.Args[0], fs.Name())
		fmt.Fprintf(f, "  %s [global-flags] %s [optimize-flags] <statement>\n\n",
			os.Args[0], fs.Name())
		fmt.Fprintln(f, "Optimize Flags:")
		fs.PrintDefaults()
		fmt.Fprintln(f, "\nGlobal Flags:")
		flag.PrintDefaults()
	}

	fs.Parse(args)
}

func RunOptimize(oFlags OptimizeFlags, scorer query.Scorer, history *data.History, statement string) byte {
	q, err := query.Parse(statement)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to parse statement: ", err)
		return 1
	}

	optimizer := query.NewOptimizer(scorer)

	if oFlags.Explain {
		fmt.Print(optimizer.Explain(q))
		return 0
	}

	oq := optimizer.Optimize(q)

	if history != nil && !oFlags.NoHistory {
		if _, err := history.Record(oq); err != nil {
			slog.Error("Failed to record optimization", slog.String("err", err.Error()))
		}
	}

	if _, err := oFlags.Outputer.OutputTo(os.Stdout, &oq); err != nil {
		fmt.Fprintln(os.Stderr, "Error while outputting optimization: ", err)
		return 1
	}
	fmt.Println()

	return 0
}
