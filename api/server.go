// Package api serves rendered artifacts over HTTP so frames and GIFs
// can be inspected in a browser while a long render runs.
package api

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Server exposes an output directory read-only.
type Server struct {
	addr string
	dir  string
	log  zerolog.Logger
}

// NewServer creates a Server for the given listen address and directory.
func NewServer(addr, dir string, log zerolog.Logger) *Server {
	s := new(Server)
	s.addr = addr
	s.dir = dir
	s.log = log
	return s
}

// Handler returns the read-only file-serving handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.dir)))
	return mux
}

// Serve blocks listening on the configured address.
func (s *Server) Serve() error {
	s.log.Info().Str("addr", s.addr).Str("dir", s.dir).Msg("preview listening")
	return http.ListenAndServe(s.addr, s.Handler())
}
