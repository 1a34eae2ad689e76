package completion

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/codecomplete/errors"
)

func TestRender_JSON(t *testing.T) {
	res := Result{Items: []Item{
		{Name: "bar()", Kind: "method", TypeName: "Array<Int>", SourceText: "bar()"},
		{Name: "Foo"},
	}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, res))

	assert.JSONEq(t, `[
	  {"name": "bar()", "kind": "method", "typeName": "Array<Int>", "sourceText": "bar()"},
	  {"name": "Foo"}
	]`, buf.String())
	assert.Contains(t, buf.String(), "Array<Int>")
	assert.Contains(t, buf.String(), "\n  {")
}

func TestRender_JSONEmpty(t *testing.T) {
	for _, res := range []Result{{}, {Items: []Item{}}} {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, "", res))
		assert.Equal(t, "[]\n", buf.String())
	}
}

func TestRender_JSONRoundTripsNames(t *testing.T) {
	res := Result{Items: []Item{{Name: "a"}, {Name: "b"}, {Name: "c"}}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, res))

	var decoded []Item
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, res.Items, decoded)
}

func TestRender_Text(t *testing.T) {
	res := Result{Incomplete: true, Items: []Item{
		{Name: "bar()", Kind: "method", TypeName: "Void", SourceText: "bar()"},
		{Name: "oldBar()", Deprecated: true},
	}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatText, res))

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "bar()")
	assert.Contains(t, out, "method")
	assert.Contains(t, out, "oldBar() (deprecated)")
	assert.Contains(t, out, "incomplete")
}

func TestRender_TextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatText, Result{}))
	assert.Equal(t, "No completions\n", buf.String())
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, "xml", Result{})
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, CheckFormat(FormatJSON))
	assert.NoError(t, CheckFormat(FormatText))
	assert.NoError(t, CheckFormat(""))

	err := CheckFormat("xml")
	assert.True(t, errors.IsInvalidArgument(err))
	assert.NotEmpty(t, errors.GetAllHints(err))
}
