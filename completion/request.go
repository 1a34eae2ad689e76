package completion

import (
	"context"
	"encoding/json"
	"time"

	"github.com/teranos/codecomplete/arguments"
	"github.com/teranos/codecomplete/errors"
	"github.com/teranos/codecomplete/logger"
	"github.com/teranos/codecomplete/source"
)

// Request is one completion query
type Request struct {
	SourcePath     string
	SourceContents string
	// Offset is a byte offset into SourceContents
	Offset    int64
	Arguments arguments.List
}

// RawReply is the service's result exactly as received
type RawReply json.RawMessage

// Service answers completion requests. Implementations block until the
// reply arrives.
type Service interface {
	Complete(ctx context.Context, req Request) (RawReply, error)
}

// NewRequest combines a source identity, a cursor offset and compiler
// arguments. Offsets past the end of the contents are kept as given; the
// cursor position sent to the service clamps to the end.
func NewRequest(id source.Identity, offset int64, args arguments.List) (Request, error) {
	if offset < 0 {
		return Request{}, errors.WithHintf(
			errors.InvalidArgument("offset must not be negative"),
			"got offset %d", offset)
	}
	return Request{
		SourcePath:     id.Path,
		SourceContents: id.Contents,
		Offset:         offset,
		Arguments:      args,
	}, nil
}

// Send performs exactly one call to svc. Errors that carry no failure kind
// are reported as ServiceUnavailable.
func Send(ctx context.Context, svc Service, req Request) (RawReply, error) {
	log := logger.ComponentLogger("completion")
	start := time.Now()

	log.Debugw("Sending completion request",
		logger.FieldPath, req.SourcePath,
		logger.FieldOffset, req.Offset,
		logger.FieldArguments, []string(req.Arguments))
	if logger.TraceEnabled() {
		log.Debugw("Completion request body",
			logger.FieldPath, req.SourcePath,
			"contents", req.SourceContents)
	}

	reply, err := svc.Complete(ctx, req)
	if err != nil {
		if errors.Kind(err) == "error" {
			err = errors.ServiceUnavailable(err, "completion request failed")
		}
		return nil, err
	}

	log.Debugw("Completion reply received",
		logger.FieldSize, len(reply),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	if logger.TraceEnabled() {
		log.Debugw("Completion reply body", "reply", string(reply))
	}
	return reply, nil
}
