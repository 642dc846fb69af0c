package server

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/jpappel/squint/pkg/data"
	"github.com/jpappel/squint/pkg/query"
)

type Server interface {
	ListenAndServe() error
	Shutdown(context.Context) error
}

func info(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`
	<h1>Squint Server</h1>
	<p>This is the experimental squint server!
	Try POSTing a statement to <pre>/optimize</pre></p>
	`))
}

func NewMux(scorer query.Scorer, history *data.History) *http.ServeMux {
	mux := http.NewServeMux()

	outputBufPool := &sync.Pool{}
	outputBufPool.New = func() any {
		return &bytes.Buffer{}
	}

	mux.HandleFunc("/", info)
	// "POST /optimize" method patterns need Go 1.22+; emulate them on older toolchains
	mux.HandleFunc("/optimize", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		b := &strings.Builder{}
		if _, err := io.Copy(b, r.Body); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Error processing request"))
			slog.Error("Error reading request body", slog.String("err", err.Error()))
			return
		}

		oq, err := query.OptimizeStatement(b.String(), scorer)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(err.Error()))
			slog.Error("Error optimizing statement", slog.String("err", err.Error()))
			return
		}

		if history != nil {
			if _, err := history.Record(oq); err != nil {
				slog.Error("Error recording optimization", slog.String("err", err.Error()))
			}
		}

		buf, ok := outputBufPool.Get().(*bytes.Buffer)
		if !ok {
			panic("Expected *bytes.Buffer in pool")
		}
		defer func() {
			buf.Reset()
			outputBufPool.Put(buf)
		}()

		if _, err := (query.JsonOutput{}).OutputTo(buf, &oq); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("Error while writing output"))
			slog.Error("Error writing json output", slog.String("err", err.Error()))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(buf.Bytes())
	})

	return mux
}
