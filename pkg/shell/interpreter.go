package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jpappel/squint/pkg/data"
	"github.com/jpappel/squint/pkg/query"
	"golang.org/x/term"
)

type Interpreter struct {
	Scorer  query.Scorer
	History *data.History
	Env     map[string]string
	term    *term.Terminal
}

// Statements used to demonstrate condition reordering
var ExampleStatements = []string{
	"SELECT * FROM users WHERE age > 25 AND country = 'US'",
	"SELECT * FROM products WHERE category = 'electronics' AND price < 1000 AND rating > 4",
	"SELECT * FROM employees WHERE department = 'IT' AND salary > 50000 AND status = 'active'",
	"SELECT * FROM orders WHERE total >= 100 AND status = 'completed' AND country = 'Canada'",
	"SELECT * FROM customers WHERE gender = 'M' AND email LIKE '%@gmail.com' AND id = 42",
}

func NewInterpreter(scorer query.Scorer, history *data.History, env map[string]string) *Interpreter {
	if env == nil {
		env = make(map[string]string)
	}
	return &Interpreter{Scorer: scorer, History: history, Env: env}
}

// Eval runs a single shell line, writing output to w.
// The returned bool reports whether the shell should exit.
func (inter *Interpreter) Eval(w io.Writer, line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "help", "h":
		printHelp(w)
	case "clear":
		fmt.Fprintln(w, "\033[H\033[J")
	case "quit", "exit", "q":
		return true, nil
	case "optimize", "o":
		return false, inter.optimize(w, rest, query.DefaultOutput{})
	case "plan":
		return false, inter.optimize(w, rest, query.JsonOutput{})
	case "explain":
		q, err := query.Parse(rest)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(w, query.NewOptimizer(inter.Scorer).Explain(q))
	case "tokens":
		fmt.Fprintln(w, query.TokensStringify(query.Lex(rest)))
	case "score":
		return false, inter.score(w, rest)
	case "examples":
		for _, statement := range ExampleStatements {
			fmt.Fprintln(w, statement)
			if err := inter.optimize(w, statement, query.DefaultOutput{}); err != nil {
				return false, err
			}
			fmt.Fprintln(w)
		}
	case "history":
		return false, inter.history(w, rest)
	case "env":
		for k, v := range inter.Env {
			fmt.Fprintf(w, "%s=%s\n", k, v)
		}
	default:
		return false, fmt.Errorf("Unrecognized command: %s", cmd)
	}

	return false, nil
}

func (inter *Interpreter) optimize(w io.Writer, statement string, o query.Outputer) error {
	oq, err := query.OptimizeStatement(statement, inter.Scorer)
	if err != nil {
		return err
	}

	if inter.History != nil {
		if _, err := inter.History.Record(oq); err != nil {
			return err
		}
	}

	out, err := o.Output(&oq)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)

	return nil
}

func (inter *Interpreter) score(w io.Writer, conditionTxt string) error {
	if conditionTxt == "" {
		return errors.New("Usage: score <column> <operator> <value>")
	}

	q, err := query.Parse("SELECT * FROM t WHERE " + conditionTxt)
	if err != nil {
		return err
	}

	for _, condition := range q.Conditions {
		bd := inter.Scorer.Breakdown(condition)
		fmt.Fprintf(w, "%s\n", condition)
		fmt.Fprintf(w, "  selectivity: %.3f (base %.2f, cardinality %+.2f, value %+.2f)\n",
			bd.Total, bd.Base, bd.Cardinality, bd.ValueAdjust)
		fmt.Fprintf(w, "  %s\n", bd.Reasoning)
	}

	return nil
}

func (inter *Interpreter) history(w io.Writer, arg string) error {
	if inter.History == nil {
		return errors.New("History is disabled")
	}

	if arg == "clear" {
		return inter.History.Clear()
	}

	n := 10
	if arg != "" {
		var err error
		n, err = strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("Unable to parse count: %v", err)
		}
	}

	entries, err := inter.History.Recent(n)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d conditions, %d moved\n",
			entry.Id, entry.QueriedAt.Format(time.DateTime),
			entry.Statement, entry.Conditions, entry.Moved)
	}

	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  help                    print this message")
	fmt.Fprintln(w, "  clear                   clear the screen")
	fmt.Fprintln(w, "  optimize <statement>    reorder a statement's conditions")
	fmt.Fprintln(w, "  explain <statement>     show how each condition was scored")
	fmt.Fprintln(w, "  plan <statement>        print an optimization as json")
	fmt.Fprintln(w, "  tokens <clause>         lex a WHERE clause")
	fmt.Fprintln(w, "  score <condition>       score conditions without optimizing")
	fmt.Fprintln(w, "  examples                optimize a set of example statements")
	fmt.Fprintln(w, "  history [n|clear]       show or clear recent optimizations")
	fmt.Fprintln(w, "  env                     print shell variables")
	fmt.Fprintln(w, "  quit                    exit the shell")
}
