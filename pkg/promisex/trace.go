package promisex

import (
	"github.com/google/uuid"

	"github.com/Abraxas-365/promisex/pkg/logx"
)

// trace carries the diagnostic identity of one combinator invocation:
// the combinator kind, a per-invocation operation id and the caller's
// optional label. A nil trace is inert, so the uuid is only allocated
// when debug logging is actually on.
type trace struct {
	kind  string
	id    string
	label string
}

func newTrace(kind string, label []string) *trace {
	if !logx.GetDefaultLogger().GetLevel().Enabled(logx.LevelDebug) {
		return nil
	}
	t := &trace{kind: kind, id: uuid.NewString()}
	if len(label) > 0 {
		t.label = label[0]
	}
	return t
}

func (t *trace) fields() logx.Fields {
	f := logx.Fields{"op": t.kind, "op_id": t.id}
	if t.label != "" {
		f["label"] = t.label
	}
	return f
}

func (t *trace) begin(size int) {
	if t == nil {
		return
	}
	logx.WithFields(t.fields()).WithField("size", size).Debug("join started")
}

func (t *trace) settled() {
	if t == nil {
		return
	}
	logx.WithFields(t.fields()).Debug("join settled")
}

func (t *trace) rejected(reason error) {
	if t == nil {
		return
	}
	logx.WithFields(t.fields()).WithError(reason).Debug("join rejected")
}
