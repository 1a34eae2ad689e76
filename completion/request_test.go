package completion

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/codecomplete/arguments"
	"github.com/teranos/codecomplete/errors"
	"github.com/teranos/codecomplete/logger"
	"github.com/teranos/codecomplete/source"
)

type fakeService struct {
	reply RawReply
	err   error
	calls []Request
}

func (f *fakeService) Complete(_ context.Context, req Request) (RawReply, error) {
	f.calls = append(f.calls, req)
	return f.reply, f.err
}

func TestNewRequest(t *testing.T) {
	id := source.Identity{Path: "/work/Foo.swift", Contents: "struct Foo { func bar() {} }"}
	args := arguments.List{"-c", "/work/Foo.swift", "-sdk", "/sdk"}

	req, err := NewRequest(id, 13, args)
	require.NoError(t, err)

	assert.Equal(t, Request{
		SourcePath:     "/work/Foo.swift",
		SourceContents: "struct Foo { func bar() {} }",
		Offset:         13,
		Arguments:      args,
	}, req)
}

func TestNewRequest_NegativeOffset(t *testing.T) {
	_, err := NewRequest(source.Identity{Path: "/f.swift", Contents: "x"}, -1, nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestNewRequest_OffsetPastEnd(t *testing.T) {
	text := "struct Foo { func bar() {} }"
	req, err := NewRequest(source.Identity{Path: "/f.swift", Contents: text}, 29, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(29), req.Offset)
	assert.Equal(t, uint32(len(text)), req.Position().Character)
}

func TestSend(t *testing.T) {
	svc := &fakeService{reply: RawReply(`{"isIncomplete":false,"items":[]}`)}
	req := Request{SourcePath: "/f.swift", SourceContents: "x", Offset: 1}

	reply, err := Send(context.Background(), svc, req)
	require.NoError(t, err)

	assert.JSONEq(t, `{"isIncomplete":false,"items":[]}`, string(reply))
	require.Len(t, svc.calls, 1)
	assert.Equal(t, req, svc.calls[0])
}

func TestSend_UnclassifiedFailureIsServiceUnavailable(t *testing.T) {
	svc := &fakeService{err: errors.New("broken pipe")}

	_, err := Send(context.Background(), svc, Request{})
	require.Error(t, err)
	assert.True(t, errors.IsServiceUnavailable(err))
	assert.Len(t, svc.calls, 1, "no retry")
}

func TestSend_KeepsExistingKind(t *testing.T) {
	svc := &fakeService{err: errors.MalformedReply(errors.New("bad json"), "decode")}

	_, err := Send(context.Background(), svc, Request{})
	assert.True(t, errors.IsMalformedReply(err))
	assert.False(t, errors.IsServiceUnavailable(err))
}

func useLogger(t *testing.T, verbosity int) *bytes.Buffer {
	t.Helper()
	prev := logger.Logger
	t.Cleanup(func() {
		_ = logger.Initialize(logger.Options{Output: io.Discard})
		logger.Logger = prev
	})

	var buf bytes.Buffer
	require.NoError(t, logger.Initialize(logger.Options{Verbosity: verbosity, Output: &buf}))
	return &buf
}

func TestSend_TraceLogsBodies(t *testing.T) {
	buf := useLogger(t, logger.VerbosityTrace)
	svc := &fakeService{reply: RawReply(`{"items":[{"label":"bar()"}]}`)}

	_, err := Send(context.Background(), svc, Request{SourcePath: "/f.swift", SourceContents: "struct Foo {}"})
	require.NoError(t, err)
	logger.Cleanup()

	assert.Contains(t, buf.String(), "struct Foo {}")
	assert.Contains(t, buf.String(), "bar()")
}

func TestSend_DebugOmitsBodies(t *testing.T) {
	buf := useLogger(t, logger.VerbosityDebug)
	svc := &fakeService{reply: RawReply(`{"items":[{"label":"bar()"}]}`)}

	_, err := Send(context.Background(), svc, Request{SourcePath: "/f.swift", SourceContents: "struct Foo {}"})
	require.NoError(t, err)
	logger.Cleanup()

	assert.Contains(t, buf.String(), "Completion reply received")
	assert.NotContains(t, buf.String(), "struct Foo {}")
	assert.NotContains(t, buf.String(), "bar()")
}
