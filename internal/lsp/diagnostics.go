package lsp

import (
	"sort"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// PublishDiagnostics sends diagnostics for a document to the client,
// sorted by position for stable display.
func PublishDiagnostics(glspCtx *glsp.Context, docURI string, diagnostics []protocol.Diagnostic) {
	if glspCtx == nil || glspCtx.Notify == nil {
		return
	}

	sortDiagnostics(diagnostics)

	glspCtx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: diagnostics,
	})
}

func sortDiagnostics(diagnostics []protocol.Diagnostic) {
	sort.Slice(diagnostics, func(i, j int) bool {
		if diagnostics[i].Range.Start.Line != diagnostics[j].Range.Start.Line {
			return diagnostics[i].Range.Start.Line < diagnostics[j].Range.Start.Line
		}
		return diagnostics[i].Range.Start.Character < diagnostics[j].Range.Start.Character
	})
}
