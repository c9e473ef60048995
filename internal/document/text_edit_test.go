package document

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const (
	testVarDeclaration       = "proc f {x} {return $x}"
	testMultiVarDeclarations = "set x 1\nset y 2\nset z 3"
)

func TestApplyContentChange_FullSync(t *testing.T) {
	originalText := "set x 1\nset y 2"
	newText := "set z 3"

	change := protocol.TextDocumentContentChangeEvent{
		Range: nil,
		Text:  newText,
	}

	result, err := ApplyContentChange(originalText, change)
	if err != nil {
		t.Fatalf("ApplyContentChange returned error: %v", err)
	}
	if result != newText {
		t.Errorf("Result = %q, want %q", result, newText)
	}
}

func TestApplyContentChange_SingleLineReplacement(t *testing.T) {
	originalText := "set name world"

	change := protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 0, Character: 4},
			End:   protocol.Position{Line: 0, Character: 8},
		},
		Text: "place",
	}

	result, err := ApplyContentChange(originalText, change)
	if err != nil {
		t.Fatalf("ApplyContentChange returned error: %v", err)
	}

	expected := "set place world"
	if result != expected {
		t.Errorf("Result = %q, want %q", result, expected)
	}
}

func TestApplyContentChange_MultiLineReplacement(t *testing.T) {
	originalText := testMultiVarDeclarations

	change := protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 1, Character: 0},
			End:   protocol.Position{Line: 2, Character: 0},
		},
		Text: "",
	}

	result, err := ApplyContentChange(originalText, change)
	if err != nil {
		t.Fatalf("ApplyContentChange returned error: %v", err)
	}

	expected := "set x 1\nset z 3"
	if result != expected {
		t.Errorf("Result = %q, want %q", result, expected)
	}
}

func TestApplyContentChange_Insertion(t *testing.T) {
	originalText := "set x 1\nputs $x"

	change := protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 0, Character: 7},
			End:   protocol.Position{Line: 0, Character: 7},
		},
		Text: "\nincr x",
	}

	result, err := ApplyContentChange(originalText, change)
	if err != nil {
		t.Fatalf("ApplyContentChange returned error: %v", err)
	}

	expected := "set x 1\nincr x\nputs $x"
	if result != expected {
		t.Errorf("Result = %q, want %q", result, expected)
	}
}

func TestApplyContentChange_InsertionAtStartOfLine(t *testing.T) {
	originalText := "set x 1\nputs $x"

	change := protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 1, Character: 0},
			End:   protocol.Position{Line: 1, Character: 0},
		},
		Text: "incr x\n",
	}

	result, err := ApplyContentChange(originalText, change)
	if err != nil {
		t.Fatalf("ApplyContentChange returned error: %v", err)
	}

	expected := "set x 1\nincr x\nputs $x"
	if result != expected {
		t.Errorf("Result = %q, want %q", result, expected)
	}
}

func TestApplyContentChange_DeletionWithinLine(t *testing.T) {
	originalText := "set x 1 ;# initial value"

	change := protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 0, Character: 8},
			End:   protocol.Position{Line: 0, Character: 24},
		},
		Text: "",
	}

	result, err := ApplyContentChange(originalText, change)
	if err != nil {
		t.Fatalf("ApplyContentChange returned error: %v", err)
	}

	expected := "set x 1 "
	if result != expected {
		t.Errorf("Result = %q, want %q", result, expected)
	}
}

func TestApplyContentChange_CharacterCountsUTF8Bytes(t *testing.T) {
	// character counts UTF-8 code units (bytes), not UTF-16 code units —
	// a multi-byte rune's own byte offsets apply directly with no
	// surrogate-pair math.
	originalText := "set café 1"

	change := protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 0, Character: 4},
			End:   protocol.Position{Line: 0, Character: 9}, // "café" is 5 bytes (é = 2 bytes)
		},
		Text: "name",
	}

	result, err := ApplyContentChange(originalText, change)
	if err != nil {
		t.Fatalf("ApplyContentChange returned error: %v", err)
	}

	expected := "set name 1"
	if result != expected {
		t.Errorf("Result = %q, want %q", result, expected)
	}
}

func TestApplyContentChange_InvalidRange_StartLineOutOfBounds(t *testing.T) {
	change := protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 5, Character: 0},
			End:   protocol.Position{Line: 5, Character: 5},
		},
		Text: "test",
	}

	_, err := ApplyContentChange(testVarDeclaration, change)
	if err == nil {
		t.Error("ApplyContentChange should return error for out-of-bounds start line")
	}
}

func TestApplyContentChange_InvalidRange_EndLineOutOfBounds(t *testing.T) {
	change := protocol.TextDocumentContentChangeEvent{
		Range: &protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 5, Character: 0},
		},
		Text: "test",
	}

	_, err := ApplyContentChange(testVarDeclaration, change)
	if err == nil {
		t.Error("ApplyContentChange should return error for out-of-bounds end line")
	}
}

func TestPositionToOffset(t *testing.T) {
	text := testMultiVarDeclarations

	tests := []struct {
		line       int
		character  int
		wantOffset int
	}{
		{0, 0, 0},
		{0, 4, 4},
		{1, 0, 8},
		{1, 4, 12},
		{2, 0, 16},
		{2, 4, 20},
	}

	for _, tt := range tests {
		got, err := PositionToOffset(text, tt.line, tt.character)
		if err != nil {
			t.Errorf("PositionToOffset(line=%d, char=%d) returned error: %v", tt.line, tt.character, err)
			continue
		}
		if got != tt.wantOffset {
			t.Errorf("PositionToOffset(line=%d, char=%d) = %d, want %d", tt.line, tt.character, got, tt.wantOffset)
		}
	}
}

func TestOffsetToPosition(t *testing.T) {
	text := testMultiVarDeclarations

	tests := []struct {
		offset   int
		wantLine int
		wantChar int
	}{
		{0, 0, 0},
		{4, 0, 4},
		{8, 1, 0},
		{12, 1, 4},
		{16, 2, 0},
		{20, 2, 4},
	}

	for _, tt := range tests {
		gotLine, gotChar, err := OffsetToPosition(text, tt.offset)
		if err != nil {
			t.Errorf("OffsetToPosition(offset=%d) returned error: %v", tt.offset, err)
			continue
		}
		if gotLine != tt.wantLine || gotChar != tt.wantChar {
			t.Errorf("OffsetToPosition(offset=%d) = (line=%d, char=%d), want (line=%d, char=%d)",
				tt.offset, gotLine, gotChar, tt.wantLine, tt.wantChar)
		}
	}
}

func TestPositionOffsetRoundTrip(t *testing.T) {
	text := testMultiVarDeclarations
	for offset := 0; offset <= len(text); offset++ {
		line, char, err := OffsetToPosition(text, offset)
		if err != nil {
			continue
		}
		got, err := PositionToOffset(text, line, char)
		if err != nil {
			t.Errorf("PositionToOffset(%d,%d) returned error: %v", line, char, err)
			continue
		}
		if got != offset {
			t.Errorf("round trip failed: offset %d -> (%d,%d) -> %d", offset, line, char, got)
		}
	}
}
