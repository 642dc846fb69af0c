package cmd

import (
	"log/slog"

	"github.com/jpappel/squint/pkg/data"
	"github.com/jpappel/squint/pkg/query"
	"github.com/jpappel/squint/pkg/shell"
)

func RunShell(gFlags GlobalFlags, scorer query.Scorer, history *data.History, version string) byte {
	env := make(map[string]string)

	env["db_path"] = gFlags.DBPath
	env["profile_path"] = gFlags.ProfilePath
	env["version"] = version

	interpreter := shell.NewInterpreter(scorer, history, env)
	if err := interpreter.Run(); err != nil {
		slog.Error("Fatal error occured", slog.String("err", err.Error()))
		return 1
	}

	return 0
}
