package cmd

import (
	"fmt"
	"os"

	"github.com/jpappel/squint/pkg/query"
	"github.com/jpappel/squint/pkg/shell"
)

func RunExamples(scorer query.Scorer, o query.Outputer) byte {
	optimizer := query.NewOptimizer(scorer)

	for _, statement := range shell.ExampleStatements {
		q, err := query.Parse(statement)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to parse statement: ", err)
			return 1
		}

		oq := optimizer.Optimize(q)
		fmt.Println(statement)
		if _, err := o.OutputTo(os.Stdout, &oq); err != nil {
			fmt.Fprintln(os.Stderr, "Error while outputting optimization: ", err)
			return 1
		}
		fmt.Println()
	}

	return 0
}
