package trace

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"

	"furnedit/internal/docdiff"
	"furnedit/internal/layers"
)

// Attribute keys set on session, mutation and save spans.
const (
	AttrFile   = attribute.Key("furnedit.file")
	AttrOp     = attribute.Key("furnedit.op")
	AttrViz    = attribute.Key("furnedit.viz")
	AttrLayer  = attribute.Key("furnedit.layer")
	AttrField  = attribute.Key("furnedit.field")
	AttrValue  = attribute.Key("furnedit.value")
	AttrPatch  = attribute.Key("furnedit.patch")
	AttrPath   = attribute.Key("furnedit.path")
	AttrEdits  = attribute.Key("furnedit.edits")
	spanRoot   = "furnedit-session"
	spanSave   = "save"
	patchWidth = 256
)

// Recorder implements layers.Observer and turns mutations into spans.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer

	mu      sync.Mutex
	ctx     context.Context
	session oteltrace.Span
	edits   int
}

var _ layers.Observer = (*Recorder)(nil)

// New creates a Recorder exporting via OTLP. Returns nil, nil when opts
// has no endpoint.
func New(ctx context.Context, opts Options) (*Recorder, error) {
	exporter, err := NewExporter(ctx, opts)
	if err != nil || exporter == nil {
		return nil, err
	}
	return newRecorder(newProvider(exporter, opts.ServiceName, true)), nil
}

// NewWithExporter creates a Recorder that exports synchronously to exporter.
func NewWithExporter(exporter sdktrace.SpanExporter, serviceName string) *Recorder {
	return newRecorder(newProvider(exporter, serviceName, false))
}

func newRecorder(provider *sdktrace.TracerProvider) *Recorder {
	return &Recorder{
		provider: provider,
		tracer:   provider.Tracer(InstrumentationName),
	}
}

// StartSession opens the root span for editing file. Any open session is
// ended first.
func (r *Recorder) StartSession(ctx context.Context, file string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.endLocked()
	r.ctx, r.session = r.tracer.Start(ctx, spanRoot,
		oteltrace.WithAttributes(AttrFile.String(file)))
	r.edits = 0
}

// OnMutation records m as a child span of the session.
func (r *Recorder) OnMutation(m layers.Mutation) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	attrs := []attribute.KeyValue{
		AttrOp.String(string(m.Op)),
		AttrViz.Int(m.VizIndex),
	}
	if m.LayerID != "" {
		attrs = append(attrs, AttrLayer.String(m.LayerID))
	}
	if m.Field != "" {
		attrs = append(attrs, AttrField.String(m.Field), AttrValue.String(m.Value))
	}

	_, span := r.tracer.Start(r.parentLocked(), string(m.Op), oteltrace.WithAttributes(attrs...))
	if changes, err := docdiff.Diff(m.Previous, m.Document); err != nil {
		span.RecordError(err)
	} else {
		span.SetAttributes(AttrPatch.String(docdiff.Summary(changes, patchWidth)))
	}
	span.End()
	r.edits++
}

// RecordSave records a save of the document to path.
func (r *Recorder) RecordSave(path string, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	_, span := r.tracer.Start(r.parentLocked(), spanSave,
		oteltrace.WithAttributes(AttrPath.String(path)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// EndSession ends the open session span, if any.
func (r *Recorder) EndSession() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.endLocked()
}

// Shutdown ends the session and flushes the exporter.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	r.endLocked()
	r.mu.Unlock()
	return r.provider.Shutdown(ctx)
}

func (r *Recorder) parentLocked() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

func (r *Recorder) endLocked() {
	if r.session == nil {
		return
	}
	r.session.SetAttributes(AttrEdits.Int(r.edits))
	r.session.End()
	r.session = nil
	r.ctx = nil
}
