// Command strophe-split splits poem documents from the command line.
// It runs the same conversion and segmentation pipeline as the strophe
// service, so a file split here yields the same poems an upload would.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/strophe/anthology"
	"github.com/hazyhaar/strophe/batch"
	"github.com/hazyhaar/strophe/export"
	"github.com/hazyhaar/strophe/store"
)

const version = "0.1.0"

// CLI defines the command-line interface for strophe-split.
var CLI struct {
	Split   SplitCmd   `cmd:"" help:"Split document files into individual poems"`
	MCP     MCPCmd     `cmd:"" help:"Serve the split tools over MCP on stdin/stdout"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// SplitCmd splits one or more documents and writes the poems out.
// Without an output flag it prints a plain listing; --json, --db,
// --html and --md can be combined.
type SplitCmd struct {
	Files []string `arg:"" help:"Document files to split" type:"existingfile"`

	JSON  bool   `help:"Print the poems as JSON on stdout"`
	DB    string `help:"Save the poems to a SQLite anthology at this path" type:"path"`
	HTML  string `help:"Write an HTML anthology to this path" type:"path"`
	MD    string `help:"Write a Markdown anthology to this path" type:"path"`
	Title string `help:"Anthology title for HTML and Markdown output"`

	Quiet   bool `short:"q" help:"Suppress progress lines"`
	Verbose bool `short:"v" help:"Log document processing to stderr"`
}

func (c *SplitCmd) Run() error {
	ctx := context.Background()

	docs := make([]batch.Document, 0, len(c.Files))
	for _, path := range c.Files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, batch.Document{Name: filepath.Base(path), Data: data})
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if c.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	opts := []batch.Option{batch.WithLogger(logger)}
	if !c.Quiet {
		opts = append(opts, batch.WithProgress(func(i, total int, name string) {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", i+1, total, name)
		}))
	}

	proc := batch.NewProcessor(opts...)
	coll := anthology.NewCollection()
	res := proc.Process(ctx, docs, coll)

	for _, f := range res.Failures {
		fmt.Fprintf(os.Stderr, "failed: %s: %s\n", f.SourceName, f.Message)
	}
	fmt.Fprintf(os.Stderr, "%d poem(s) from %d file(s), %d duplicate(s) skipped\n",
		res.Appended, len(docs), res.Duplicates)

	recs := coll.Snapshot()
	if len(recs) == 0 {
		return fmt.Errorf("no poems extracted")
	}

	wrote := false

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(recs); err != nil {
			return fmt.Errorf("encode poems: %w", err)
		}
		wrote = true
	}

	if c.DB != "" {
		st, err := store.Open(c.DB)
		if err != nil {
			return fmt.Errorf("open anthology db: %w", err)
		}
		defer st.Close()
		if err := st.Save(ctx, recs); err != nil {
			return fmt.Errorf("save poems: %w", err)
		}
		fmt.Fprintf(os.Stderr, "saved %d poem(s) to %s\n", len(recs), c.DB)
		wrote = true
	}

	if c.HTML != "" {
		if err := writeRender(c.HTML, recs, c.Title, export.RenderHTML); err != nil {
			return err
		}
		wrote = true
	}

	if c.MD != "" {
		if err := writeRender(c.MD, recs, c.Title, export.RenderMarkdown); err != nil {
			return err
		}
		wrote = true
	}

	if !wrote {
		for i, rec := range recs {
			fmt.Printf("%3d. %s (%d words, from %s)\n", i+1, rec.Title, rec.WordCount, rec.SourceName)
		}
	}

	return nil
}

func writeRender(path string, recs []anthology.Record, title string, render func(io.Writer, []anthology.Record, export.Options) error) error {
	var buf bytes.Buffer
	if err := render(&buf, recs, export.Options{Title: title}); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	return nil
}

// MCPCmd serves the split, detect and formats tools over stdio.
type MCPCmd struct{}

func (c *MCPCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout carries the protocol, so logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	proc := batch.NewProcessor(batch.WithLogger(logger))
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "strophe",
		Version: version,
	}, nil)
	proc.RegisterMCP(srv)

	return srv.Run(ctx, &mcp.StdioTransport{})
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("strophe-split %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("strophe-split"),
		kong.Description("Split poem documents into individual poems"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
