package completion

import (
	"unicode/utf16"

	"go.lsp.dev/protocol"
)

// PositionForOffset converts a byte offset in text into an LSP position:
// a 0-based line and a column counted in UTF-16 code units. Offsets past the
// end clamp to the end of text; an offset inside a multi-byte character
// counts that character as preceding the cursor.
func PositionForOffset(text string, offset int64) protocol.Position {
	var line, col uint32
	for i, r := range text {
		if int64(i) >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 0
			continue
		}
		col += uint32(utf16.RuneLen(r))
	}
	return protocol.Position{Line: line, Character: col}
}

// Position returns the request's cursor as an LSP position
func (r Request) Position() protocol.Position {
	return PositionForOffset(r.SourceContents, r.Offset)
}
