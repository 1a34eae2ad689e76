package completion

import (
	"strings"

	"go.lsp.dev/protocol"
)

// kindName maps an LSP kind to its lowerCamel symbolic name ("function",
// "enumMember"). Zero means absent.
func kindName(k protocol.CompletionItemKind) string {
	if k == 0 {
		return ""
	}
	name := k.String()
	return strings.ToLower(name[:1]) + name[1:]
}
