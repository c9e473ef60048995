// Package document applies incremental LSP text changes to an
// in-memory buffer.
package document

import (
	"fmt"
	"strings"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ApplyContentChange applies a single TextDocumentContentChangeEvent
// to text and returns the updated text. A position's `character`
// counts UTF-8 code units directly — there is no UTF-16
// surrogate-pair math here, unlike editors that report positions in
// UTF-16 code units; this function works entirely in LSP's 0-based
// coordinates and does no 0-based/1-based conversion itself.
func ApplyContentChange(text string, change protocol.TextDocumentContentChangeEvent) (string, error) {
	if change.Range == nil {
		return change.Text, nil
	}

	lines := strings.Split(text, "\n")

	startLine := int(change.Range.Start.Line)
	startChar := int(change.Range.Start.Character)
	endLine := int(change.Range.End.Line)
	endChar := int(change.Range.End.Character)

	if startLine < 0 || startLine >= len(lines) {
		return "", fmt.Errorf("start line %d out of range (0-%d)", startLine, len(lines)-1)
	}
	if endLine < 0 || endLine >= len(lines) {
		return "", fmt.Errorf("end line %d out of range (0-%d)", endLine, len(lines)-1)
	}
	if startLine > endLine {
		return "", fmt.Errorf("start line %d after end line %d", startLine, endLine)
	}

	startByte, err := clampByteOffset(lines[startLine], startChar)
	if err != nil {
		return "", fmt.Errorf("invalid start position: %w", err)
	}
	endByte, err := clampByteOffset(lines[endLine], endChar)
	if err != nil {
		return "", fmt.Errorf("invalid end position: %w", err)
	}

	var result strings.Builder

	if startLine == endLine {
		before := lines[startLine][:startByte]
		after := lines[startLine][endByte:]
		newLine := before + change.Text + after

		for i := range startLine {
			result.WriteString(lines[i])
			result.WriteString("\n")
		}
		result.WriteString(newLine)
		for i := startLine + 1; i < len(lines); i++ {
			result.WriteString("\n")
			result.WriteString(lines[i])
		}
	} else {
		before := lines[startLine][:startByte]
		after := lines[endLine][endByte:]

		for i := range startLine {
			result.WriteString(lines[i])
			result.WriteString("\n")
		}
		result.WriteString(before)
		result.WriteString(change.Text)
		result.WriteString(after)
		for i := endLine + 1; i < len(lines); i++ {
			result.WriteString("\n")
			result.WriteString(lines[i])
		}
	}

	return result.String(), nil
}

// clampByteOffset validates a 0-based character offset against line,
// allowing exactly len(line) for insertions at end-of-line.
func clampByteOffset(line string, char int) (int, error) {
	if char < 0 {
		return 0, fmt.Errorf("negative character offset %d", char)
	}
	if char > len(line) {
		return 0, fmt.Errorf("character offset %d exceeds line length %d", char, len(line))
	}
	return char, nil
}

// PositionToOffset converts a 0-based (line, character) position to a
// byte offset in text.
func PositionToOffset(text string, line, character int) (int, error) {
	lines := strings.Split(text, "\n")
	if line < 0 || line >= len(lines) {
		return 0, fmt.Errorf("line %d out of range (0-%d)", line, len(lines)-1)
	}

	offset := 0
	for i := range line {
		offset += len(lines[i]) + 1
	}

	byteOffset, err := clampByteOffset(lines[line], character)
	if err != nil {
		return 0, err
	}
	return offset + byteOffset, nil
}

// OffsetToPosition converts a byte offset in text to a 0-based
// (line, character) position.
func OffsetToPosition(text string, offset int) (line, character int, err error) {
	if offset < 0 || offset > len(text) {
		return 0, 0, fmt.Errorf("offset %d out of range (0-%d)", offset, len(text))
	}

	currentOffset := 0
	lines := strings.Split(text, "\n")
	for i, lineText := range lines {
		lineLen := len(lineText)
		if currentOffset+lineLen >= offset {
			return i, offset - currentOffset, nil
		}
		currentOffset += lineLen + 1
	}

	if offset == len(text) {
		return len(lines) - 1, len(lines[len(lines)-1]), nil
	}
	return 0, 0, fmt.Errorf("offset %d not found in text", offset)
}
