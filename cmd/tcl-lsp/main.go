package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/unknownbreaker/tcl-lsp/internal/config"
	"github.com/unknownbreaker/tcl-lsp/internal/lsp"
	"github.com/unknownbreaker/tcl-lsp/internal/server"
)

const (
	name    = "tcl-lsp"
	version = "0.1.0"
)

var (
	tcpMode  bool
	tcpPort  int
	logLevel int
	logFile  string
)

func init() {
	flag.BoolVar(&tcpMode, "tcp", false, "run the server over TCP instead of stdio (for debugging)")
	flag.IntVar(&tcpPort, "port", 8765, "TCP port to listen on (used with -tcp)")
	flag.IntVar(&logLevel, "log-level", 1, "commonlog verbosity (0=errors only ... 4=debug)")
	flag.StringVar(&logFile, "log-file", "", "log file path (default: stderr)")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, "%s version %s\n\n", name, version)
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", name)
	fmt.Fprintf(os.Stderr, "Language Server Protocol implementation for Tcl and Rivet templates\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()

	if flag.NArg() > 0 && flag.Arg(0) == "version" {
		fmt.Printf("%s version %s\n", name, version)
		os.Exit(0)
	}

	var logWriter *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		logWriter = f
	}
	commonlog.Configure(logLevel, logWriter)

	srv := server.New(config.Default())
	lsp.SetServer(srv)

	handler := protocol.Handler{
		Initialize:  lsp.Initialize,
		Initialized: lsp.Initialized,
		Shutdown:    lsp.Shutdown,
		SetTrace:    func(context *glsp.Context, params *protocol.SetTraceParams) error { return nil },

		TextDocumentDidOpen:   lsp.DidOpen,
		TextDocumentDidChange: lsp.DidChange,
		TextDocumentDidSave:   lsp.DidSave,
		TextDocumentDidClose:  lsp.DidClose,

		Definition:          lsp.Definition,
		References:          lsp.References,
		Hover:               lsp.Hover,
		Rename:              lsp.Rename,
		PrepareRename:       lsp.PrepareRename,
		DocumentSymbol:      lsp.DocumentSymbol,
		WorkspaceSymbol:     lsp.WorkspaceSymbol,
		FoldingRange:        lsp.FoldingRange,
		SemanticTokensFull:  lsp.SemanticTokensFull,
		SemanticTokensRange: lsp.SemanticTokensRange,
	}

	glspServer := glspserver.NewServer(&handler, name, false)

	if tcpMode {
		if err := glspServer.RunTCP(fmt.Sprintf("127.0.0.1:%d", tcpPort)); err != nil {
			fmt.Fprintf(os.Stderr, "tcp server error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := glspServer.RunStdio(); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
	}
}
