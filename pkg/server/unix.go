package server

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"os"

	"github.com/jpappel/squint/pkg/data"
	"github.com/jpappel/squint/pkg/query"
)

// datagram based unix server
type UnixServer struct {
	Addr    string
	Scorer  query.Scorer
	History *data.History
	conn    *net.UnixConn
}

func (s *UnixServer) ListenAndServe() error {
	serverAddr := s.Addr + "_server.sock"
	clientAddr := s.Addr + "_client.sock"

	var err error
	s.conn, err = net.ListenUnixgram(
		"unixgram",
		&net.UnixAddr{Name: serverAddr, Net: "Unix"},
	)
	if err != nil {
		return err
	}
	defer os.RemoveAll(s.Addr)
	slog.Info("Listening on", slog.String("addr", s.Addr))

	var remote *net.UnixAddr
	remote, err = net.ResolveUnixAddr("unixgram", clientAddr)
	if err != nil {
		panic(err)
	}
	optimizer := query.NewOptimizer(s.Scorer)
	// FIXME: limits statements to 1kb, might have some data overflow into next msg
	buf := make([]byte, 1024)
	for {
		n, _, err := s.conn.ReadFromUnix(buf)
		if err != nil {
			return err
		}
		statement := string(buf[:n])
		slog.Debug("New message",
			slog.String("msg", statement),
			slog.String("local", s.conn.LocalAddr().String()),
			slog.String("remote", remote.String()),
		)

		out := &bytes.Buffer{}
		q, err := query.Parse(statement)
		if err != nil {
			slog.Error("Failed to parse statement", slog.String("err", err.Error()))
			out.WriteString(err.Error())
			out.WriteByte('\n')
		} else {
			oq := optimizer.Optimize(q)
			if s.History != nil {
				if _, err := s.History.Record(oq); err != nil {
					slog.Error("Failed to record optimization",
						slog.String("err", err.Error()))
				}
			}

			if _, err := (query.DefaultOutput{}).OutputTo(out, &oq); err != nil {
				return err
			}
		}

		b := out.Bytes()
		remaining := len(b)
		offset := 0
		for remaining > 0 {
			n, err := s.conn.WriteToUnix(b[offset:], remote)
			if err != nil {
				return err
			}
			remaining -= n
			offset += n
		}
		// EOF
		s.conn.WriteToUnix([]byte{4}, remote)
	}
}

func (s *UnixServer) Shutdown(ctx context.Context) error {
	// ListenAndServe may have failed before binding
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
