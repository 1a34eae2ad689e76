package completion

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/codecomplete/errors"
)

func TestNormalize_Empty(t *testing.T) {
	for _, raw := range []string{"", "  ", "null", "[]", `{"isIncomplete":false,"items":[]}`, `{}`} {
		t.Run(raw, func(t *testing.T) {
			res, err := Normalize(RawReply(raw))
			require.NoError(t, err)
			assert.NotNil(t, res.Items)
			assert.Empty(t, res.Items)
		})
	}
}

func TestNormalize_CompletionList(t *testing.T) {
	raw := RawReply(`{
	  "isIncomplete": true,
	  "items": [
	    {
	      "label": "bar()",
	      "kind": 2,
	      "detail": "Void",
	      "sortText": "00000001",
	      "filterText": "bar()",
	      "insertText": "bar()",
	      "insertTextFormat": 2,
	      "textEdit": {
	        "range": {"start": {"line": 0, "character": 29}, "end": {"line": 0, "character": 29}},
	        "newText": "bar()"
	      },
	      "documentation": {"kind": "markdown", "value": "Does the bar thing.\n\nLonger discussion follows."}
	    },
	    {
	      "label": "self",
	      "kind": 14,
	      "detail": "Foo",
	      "insertText": "self"
	    },
	    {
	      "label": "oldBar()",
	      "kind": 2,
	      "tags": [1],
	      "documentation": "Old API."
	    },
	    {
	      "label": "Foo"
	    }
	  ]
	}`)

	res, err := Normalize(raw)
	require.NoError(t, err)

	want := Result{
		Incomplete: true,
		Items: []Item{
			{Name: "bar()", Kind: "method", TypeName: "Void", SourceText: "bar()", SortText: "00000001", FilterText: "bar()", DocBrief: "Does the bar thing."},
			{Name: "self", Kind: "keyword", TypeName: "Foo", SourceText: "self"},
			{Name: "oldBar()", Kind: "method", DocBrief: "Old API.", Deprecated: true},
			{Name: "Foo"},
		},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_BareArrayKeepsOrder(t *testing.T) {
	raw := RawReply(`[
	  {"label": "zeta", "kind": 6},
	  {"label": "alpha", "kind": 3},
	  {"label": "mid", "kind": 22}
	]`)

	res, err := Normalize(raw)
	require.NoError(t, err)
	assert.False(t, res.Incomplete)

	var names, kinds []string
	for _, it := range res.Items {
		names = append(names, it.Name)
		kinds = append(kinds, it.Kind)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)
	assert.Equal(t, []string{"variable", "function", "struct"}, kinds)
}

func TestNormalize_TextEditWinsOverInsertText(t *testing.T) {
	raw := RawReply(`[{"label": "x", "insertText": "old", "textEdit": {"range": {"start": {"line": 0, "character": 0}, "end": {"line": 0, "character": 0}}, "newText": "new"}}]`)

	res, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "new", res.Items[0].SourceText)
}

func TestNormalize_NoFabricatedSourceText(t *testing.T) {
	res, err := Normalize(RawReply(`[{"label": "onlyLabel"}]`))
	require.NoError(t, err)
	assert.Equal(t, Item{Name: "onlyLabel"}, res.Items[0])
}

func TestNormalize_Malformed(t *testing.T) {
	for _, raw := range []string{`{"items": 5}`, `[1, 2]`, `"text"`, `42`, `{"items": [`} {
		t.Run(raw, func(t *testing.T) {
			_, err := Normalize(RawReply(raw))
			require.Error(t, err)
			assert.True(t, errors.IsMalformedReply(err))
		})
	}
}

func TestKindName(t *testing.T) {
	assert.Equal(t, "", kindName(0))
	assert.Equal(t, "text", kindName(1))
	assert.Equal(t, "enumMember", kindName(20))
	assert.Equal(t, "typeParameter", kindName(25))
}

func TestDocBrief(t *testing.T) {
	tests := []struct {
		name string
		doc  interface{}
		want string
	}{
		{"nil", nil, ""},
		{"plain", "One line.", "One line."},
		{"paragraphs", "First.\n\nSecond.", "First."},
		{"crlf", "First.\r\n\r\nSecond.", "First."},
		{"wrapped first paragraph", "First line\ncontinues.\n\nNext.", "First line\ncontinues."},
		{"markup map", map[string]interface{}{"kind": "markdown", "value": "  Brief.\n\nMore."}, "Brief."},
		{"unknown shape", 42.0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, docBrief(tt.doc))
		})
	}
}
