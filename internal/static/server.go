package static

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/vk/powerupgo/internal/ctxlog"
)

// Server hosts a directory of static assets over HTTP.
type Server struct {
	addr   string
	dir    string
	origin string

	httpServer *http.Server
}

// NewServer creates a server for dir, listening on addr. Cross-origin
// requests are allowed only from origin; an empty origin disables CORS
// headers entirely.
func NewServer(addr, dir, origin string) *Server {
	return &Server{addr: addr, dir: dir, origin: origin}
}

// Start begins serving in a background goroutine. It returns immediately;
// serve failures other than graceful shutdown are logged.
func (s *Server) Start(ctx context.Context) {
	logger := ctxlog.FromContext(ctx).With("component", "static")

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go func() {
		logger.Info("🌐 Asset server starting", "address", fmt.Sprintf("http://localhost%s/", s.addr), "dir", s.dir)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Asset server failed unexpectedly", "error", err)
		}
	}()
}

// Close shuts the server down gracefully.
func (s *Server) Close(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("component", "static")
	if s.httpServer == nil {
		logger.Debug("Asset server was not running.")
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	logger.Info("🌐 Shutting down asset server...")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Asset server shutdown failed", "error", err)
		return err
	}
	return nil
}

// Handler returns the full handler stack, exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})
	mux.Handle("/", s.corsHandler(compressHandler(http.FileServer(http.Dir(s.dir)))))
	return mux
}

// corsHandler allows cross-origin access from the single configured
// origin. Requests from any other origin get no CORS headers, which the
// browser treats as a denial.
func (s *Server) corsHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.origin != "" && r.Header.Get("Origin") == s.origin {
			w.Header().Set("Access-Control-Allow-Origin", s.origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
			w.Header().Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// compressHandler negotiates response compression from Accept-Encoding,
// preferring brotli over gzip.
func compressHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept := r.Header.Get("Accept-Encoding")
		switch {
		case strings.Contains(accept, "br"):
			w.Header().Set("Content-Encoding", "br")
			w.Header().Add("Vary", "Accept-Encoding")
			bw := brotli.NewWriter(w)
			defer bw.Close()
			next.ServeHTTP(&compressResponseWriter{ResponseWriter: w, out: bw}, r)
		case strings.Contains(accept, "gzip"):
			w.Header().Set("Content-Encoding", "gzip")
			w.Header().Add("Vary", "Accept-Encoding")
			gw := gzip.NewWriter(w)
			defer gw.Close()
			next.ServeHTTP(&compressResponseWriter{ResponseWriter: w, out: gw}, r)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// compressResponseWriter routes the body through a compressing writer
// while headers and status go straight to the underlying writer. The
// Content-Length of the uncompressed file no longer applies, so it is
// dropped before the first write.
type compressResponseWriter struct {
	http.ResponseWriter
	out         interface{ Write([]byte) (int, error) }
	wroteHeader bool
}

func (w *compressResponseWriter) WriteHeader(code int) {
	w.ResponseWriter.Header().Del("Content-Length")
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *compressResponseWriter) Write(p []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.out.Write(p)
}
