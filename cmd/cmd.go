package cmd

import (
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/jpappel/squint/pkg/query"
)

type GlobalFlags struct {
	DBPath      string
	ProfilePath string
	LogLevel    string
	LogJson     bool
	LogFile     string
}

func SetupGlobalFlags(fs_ *flag.FlagSet, flags *GlobalFlags) {
	home, _ := os.UserHomeDir()
	dataHome := xdg.DataHome
	if dataHome == "" {
		dataHome = strings.Join([]string{home, ".local", "share"}, string(os.PathSeparator))
	}
	dataHome += string(os.PathSeparator) + "squint"
	if err := os.Mkdir(dataHome, 0755); errors.Is(err, fs.ErrExist) {
	} else if err != nil {
		panic(err)
	}

	configHome := xdg.ConfigHome
	if configHome == "" {
		configHome = strings.Join([]string{home, ".config"}, string(os.PathSeparator))
	}
	configHome += string(os.PathSeparator) + "squint"

	fs_.StringVar(&flags.DBPath, "db", dataHome+string(os.PathSeparator)+"history.db", "`path` to optimization history database")
	fs_.StringVar(&flags.ProfilePath, "profile", configHome+string(os.PathSeparator)+"profile.yaml", "`path` to a yaml selectivity profile")
	fs_.StringVar(&flags.LogLevel, "logLevel", "error", "set log `level` (debug, info, warn, error)")
	fs_.BoolVar(&flags.LogJson, "logJson", false, "log to json")
	fs_.StringVar(&flags.LogFile, "logFile", "", "`file` to log errors to, use '-' for stdout and empty for stderr")
}

// LoadScorer builds a scorer from the profile named by the global flags.
// A missing profile file is not an error, the defaults are used instead.
func LoadScorer(gFlags GlobalFlags) query.Scorer {
	profile, err := query.LoadProfile(gFlags.ProfilePath)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("No profile file, using defaults",
			slog.String("path", gFlags.ProfilePath))
	} else if err != nil {
		slog.Warn("Ignoring unusable profile", slog.String("err", err.Error()))
	}

	return query.NewScorer(profile)
}
