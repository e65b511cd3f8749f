// Entry point for the strophe HTTP service: chi router, shield
// middleware, bearer auth, SQLite-backed anthology.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/strophe/anthology"
	"github.com/hazyhaar/strophe/batch"
	"github.com/hazyhaar/strophe/convert"
	"github.com/hazyhaar/strophe/export"
	"github.com/hazyhaar/strophe/shield"
	"github.com/hazyhaar/strophe/store"
)

func main() {
	cfgPath := "strophe.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	// Logging.
	var lvl slog.Level
	switch cfg.LogLevel {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)

	// Signal context.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Anthology DB and startup restore.
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		slog.Error("open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	recs, err := st.Load(ctx)
	if err != nil {
		slog.Error("load anthology", "error", err)
		os.Exit(1)
	}
	coll := anthology.Restore(recs)
	slog.Info("anthology loaded", "poems", coll.Len())

	// Document processing pipeline.
	conv := convert.New(convert.Config{MaxFileSize: cfg.MaxUploadBytes(), Logger: logger})
	proc := batch.NewProcessor(batch.WithConverter(conv), batch.WithLogger(logger))

	// mu serializes every collection mutation and its save, so reads
	// always see a fully persisted state.
	var mu sync.Mutex

	save := func(ctx context.Context) error {
		return st.Save(ctx, coll.Snapshot())
	}

	// requireToken enforces the bearer token when a hash is configured.
	requireToken := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.TokenHash == "" {
				next.ServeHTTP(w, r)
				return
			}
			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" || bcrypt.CompareHashAndPassword([]byte(cfg.TokenHash), []byte(token)) != nil {
				writeJSON(w, 401, map[string]string{"error": "invalid token"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}

	// Router.
	r := chi.NewRouter()
	sh := shield.Defaults()
	sh.MaxBodyBytes = cfg.MaxUploadBytes() + 1<<20
	sh.UploadLimit = shield.Limit{MaxRequests: cfg.UploadsPerMinute, Window: 60}
	for _, mw := range shield.Stack(sh) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(requireToken)

		r.Post("/documents", func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(cfg.MaxUploadBytes()); err != nil {
				writeError(w, 400, err)
				return
			}
			files := r.MultipartForm.File["files"]
			if len(files) == 0 {
				files = r.MultipartForm.File["file"]
			}
			if len(files) == 0 {
				writeJSON(w, 400, map[string]string{"error": "no files provided"})
				return
			}

			var docs []batch.Document
			for _, fh := range files {
				f, err := fh.Open()
				if err != nil {
					writeError(w, 400, err)
					return
				}
				data, err := io.ReadAll(f)
				f.Close()
				if err != nil {
					writeError(w, 400, err)
					return
				}
				docs = append(docs, batch.Document{Name: filepath.Base(fh.Filename), Data: data})
			}

			mu.Lock()
			defer mu.Unlock()
			res := proc.Process(r.Context(), docs, coll)
			if err := save(r.Context()); err != nil {
				writeError(w, 500, err)
				return
			}
			writeJSON(w, 200, res)
		})

		r.Get("/poems", func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			recs := coll.Snapshot()
			mu.Unlock()
			writeJSON(w, 200, map[string]any{
				"count": len(recs),
				"poems": recs,
			})
		})

		r.Post("/poems/{index}/move", func(w http.ResponseWriter, r *http.Request) {
			idx, err := strconv.Atoi(chi.URLParam(r, "index"))
			if err != nil {
				writeJSON(w, 400, map[string]string{"error": "invalid index"})
				return
			}
			var req struct {
				To int `json:"to"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, 400, err)
				return
			}

			mu.Lock()
			defer mu.Unlock()
			if err := coll.Move(idx, req.To); err != nil {
				code := 500
				if errors.Is(err, anthology.ErrIndexOutOfRange) {
					code = 400
				}
				writeError(w, code, err)
				return
			}
			if err := save(r.Context()); err != nil {
				writeError(w, 500, err)
				return
			}
			writeJSON(w, 200, map[string]string{"status": "ok"})
		})

		r.Delete("/poems/{index}", func(w http.ResponseWriter, r *http.Request) {
			idx, err := strconv.Atoi(chi.URLParam(r, "index"))
			if err != nil {
				writeJSON(w, 400, map[string]string{"error": "invalid index"})
				return
			}

			mu.Lock()
			defer mu.Unlock()
			rec, err := coll.Remove(idx)
			if err != nil {
				code := 500
				if errors.Is(err, anthology.ErrIndexOutOfRange) {
					code = 404
				}
				writeError(w, code, err)
				return
			}
			if err := save(r.Context()); err != nil {
				writeError(w, 500, err)
				return
			}
			writeJSON(w, 200, map[string]any{"removed": rec})
		})

		r.Delete("/poems", func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			defer mu.Unlock()
			n := coll.Len()
			coll.Clear()
			if err := save(r.Context()); err != nil {
				writeError(w, 500, err)
				return
			}
			writeJSON(w, 200, map[string]any{"status": "cleared", "removed": n})
		})

		r.Get("/export/html", func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			recs := coll.Snapshot()
			mu.Unlock()

			var buf bytes.Buffer
			opts := export.Options{Title: r.URL.Query().Get("title")}
			if err := export.RenderHTML(&buf, recs, opts); err != nil {
				writeError(w, 500, err)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(buf.Bytes())
		})

		r.Get("/export/markdown", func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			recs := coll.Snapshot()
			mu.Unlock()

			var buf bytes.Buffer
			opts := export.Options{Title: r.URL.Query().Get("title")}
			if err := export.RenderMarkdown(&buf, recs, opts); err != nil {
				writeError(w, 500, err)
				return
			}
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			w.Write(buf.Bytes())
		})
	})

	// HTTP server.
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
