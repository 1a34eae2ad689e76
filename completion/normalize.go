package completion

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/teranos/codecomplete/errors"
	"go.lsp.dev/protocol"
)

// Item is one normalized completion candidate. Optional fields are empty
// when the service did not supply them.
type Item struct {
	Name       string `json:"name"`
	Kind       string `json:"kind,omitempty"`
	TypeName   string `json:"typeName,omitempty"`
	SourceText string `json:"sourceText,omitempty"`
	SortText   string `json:"sortText,omitempty"`
	FilterText string `json:"filterText,omitempty"`
	DocBrief   string `json:"docBrief,omitempty"`
	Deprecated bool   `json:"deprecated,omitempty"`
}

// Result is the normalized reply
type Result struct {
	Items []Item
	// Incomplete is set when the service reports that further typing may
	// produce different items
	Incomplete bool
}

// Normalize decodes a reply holding a CompletionList, a bare array of
// CompletionItems, or null. Items keep the service's order. An empty reply
// is an empty Result, not an error.
func Normalize(raw RawReply) (Result, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Result{Items: []Item{}}, nil
	}

	var (
		items      []protocol.CompletionItem
		incomplete bool
	)
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &items); err != nil {
			return Result{}, errors.MalformedReply(err, "failed to decode completion items")
		}
	case '{':
		var list protocol.CompletionList
		if err := json.Unmarshal(data, &list); err != nil {
			return Result{}, errors.MalformedReply(err, "failed to decode completion list")
		}
		items, incomplete = list.Items, list.IsIncomplete
	default:
		return Result{}, errors.Mark(
			errors.Newf("completion reply is neither a list nor an array: %.40s", data),
			errors.ErrMalformedReply)
	}

	out := make([]Item, 0, len(items))
	for _, it := range items {
		out = append(out, normalizeItem(it))
	}
	return Result{Items: out, Incomplete: incomplete}, nil
}

func normalizeItem(it protocol.CompletionItem) Item {
	item := Item{
		Name:       it.Label,
		Kind:       kindName(it.Kind),
		TypeName:   it.Detail,
		SortText:   it.SortText,
		FilterText: it.FilterText,
		DocBrief:   docBrief(it.Documentation),
		Deprecated: it.Deprecated,
	}

	switch {
	case it.TextEdit != nil:
		item.SourceText = it.TextEdit.NewText
	default:
		item.SourceText = it.InsertText
	}

	for _, tag := range it.Tags {
		if tag == protocol.CompletionItemTagDeprecated {
			item.Deprecated = true
		}
	}
	return item
}

// docBrief returns the first paragraph of a string or MarkupContent
// documentation value.
func docBrief(doc interface{}) string {
	var text string
	switch d := doc.(type) {
	case string:
		text = d
	case map[string]interface{}:
		if v, ok := d["value"].(string); ok {
			text = v
		}
	case protocol.MarkupContent:
		text = d.Value
	case *protocol.MarkupContent:
		if d != nil {
			text = d.Value
		}
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if i := strings.Index(text, "\n\n"); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}
