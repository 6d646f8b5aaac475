// Package export turns measured report into sequence of image artifacts.
// Only one export runs at a time, segments are captured and emitted strictly
// in order and the first failure aborts the whole sequence.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"sync"
	"time"

	"github.com/beevik/etree"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"trr/common"
	"trr/config"
	"trr/segment"
	"trr/utils/images"
)

var (
	// ErrExportInProgress is returned when export is requested while another
	// one has not finished yet.
	ErrExportInProgress = errors.New("export is already in progress")
	// ErrNothingToExport is returned when measured document has no height.
	ErrNothingToExport = errors.New("nothing to export")
)

// Measurement is geometry of a laid out document valid for a single export.
type Measurement interface {
	Blocks() []segment.Block
	Width() float64
	Height() float64
}

// MeasurementProvider lays out composed document.
type MeasurementProvider interface {
	Measure(ctx context.Context, doc *etree.Document) (Measurement, error)
}

// MeasureFunc adapts a function to MeasurementProvider.
type MeasureFunc func(ctx context.Context, doc *etree.Document) (Measurement, error)

func (f MeasureFunc) Measure(ctx context.Context, doc *etree.Document) (Measurement, error) {
	return f(ctx, doc)
}

// RasterCapture produces image of the document window [Start, End).
type RasterCapture interface {
	Capture(ctx context.Context, m Measurement, window segment.Segment) (image.Image, error)
}

// ArtifactSink receives encoded artifacts in emission order.
type ArtifactSink interface {
	Emit(ctx context.Context, name string, data []byte) error
}

// Status is driver state as presented to callers.
type Status struct {
	State common.ExportState
	Since time.Time
	Err   error
}

// Result describes finished export.
type Result struct {
	ID        string
	Segments  []segment.Segment
	Artifacts []string
	// Dump is textual representation of measured blocks and planned segments
	Dump string
}

// Driver runs exports. It is safe for concurrent use, but concurrent calls
// to Export are rejected rather than queued.
type Driver struct {
	log      *zap.Logger
	cfg      *config.ExportConfig
	measurer MeasurementProvider
	capturer RasterCapture
	sink     ArtifactSink

	now   func() time.Time
	sleep func(context.Context, time.Duration) error

	busy sync.Mutex

	mu     sync.Mutex
	status Status
}

type Option func(*Driver)

// WithClock replaces wall clock used for status transitions.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		d.now = now
	}
}

// WithSleep replaces function used to pause between artifacts.
func WithSleep(sleep func(context.Context, time.Duration) error) Option {
	return func(d *Driver) {
		d.sleep = sleep
	}
}

func NewDriver(cfg *config.ExportConfig, measurer MeasurementProvider, capturer RasterCapture, sink ArtifactSink, log *zap.Logger, opts ...Option) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Driver{
		log:      log.Named("export"),
		cfg:      cfg,
		measurer: measurer,
		capturer: capturer,
		sink:     sink,
		now:      time.Now,
		sleep:    sleep,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.status = Status{State: common.ExportStateReady, Since: d.now()}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Status reports current driver state. Terminal states turn back into ready
// once configured interval has passed.
func (d *Driver) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.status.State {
	case common.ExportStateDone, common.ExportStateFailed:
		if at := d.status.Since.Add(d.cfg.ResetAfter); !d.now().Before(at) {
			d.status = Status{State: common.ExportStateReady, Since: at}
		}
	}
	return d.status
}

func (d *Driver) setStatus(state common.ExportState, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.status = Status{State: state, Since: d.now(), Err: err}
}

// Export measures document, plans segments and emits one artifact per
// segment named after base. Once started export cannot be cancelled, ctx is
// only consulted before anything is done. Artifacts emitted before a failure
// are left in place.
func (d *Driver) Export(ctx context.Context, doc *etree.Document, base string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !d.busy.TryLock() {
		d.log.Warn("Export requested while another one is running")
		return nil, ErrExportInProgress
	}
	defer d.busy.Unlock()

	res := &Result{ID: uuid.NewString()}
	log := d.log.With(zap.String("id", res.ID))

	d.setStatus(common.ExportStateRunning, nil)
	start := time.Now()

	err := d.run(context.WithoutCancel(ctx), doc, base, res, log)
	if err != nil {
		d.setStatus(common.ExportStateFailed, err)
		log.Error("Export failed", zap.Int("emitted", len(res.Artifacts)), zap.Error(err))
		return res, err
	}
	d.setStatus(common.ExportStateDone, nil)
	log.Info("Export completed", zap.Int("artifacts", len(res.Artifacts)), zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

func (d *Driver) run(ctx context.Context, doc *etree.Document, base string, res *Result, log *zap.Logger) error {
	m, err := d.measurer.Measure(ctx, doc)
	if err != nil {
		return fmt.Errorf("unable to measure document: %w", err)
	}
	if m.Height() <= 0 {
		return ErrNothingToExport
	}

	blocks := m.Blocks()
	if d.cfg.Segmented {
		res.Segments = segment.Plan(blocks, float64(d.cfg.MaxSegmentHeight), m.Height())
	} else {
		res.Segments = []segment.Segment{{Start: 0, End: m.Height(), IncludeHeader: true}}
	}
	res.Dump = segment.Dump(blocks, res.Segments, float64(d.cfg.MaxSegmentHeight), m.Height())

	log.Debug("Segments planned",
		zap.Float64("height", m.Height()),
		zap.Int("blocks", len(blocks)),
		zap.Int("segments", len(res.Segments)))

	for i, seg := range res.Segments {
		if i > 0 {
			if err := d.sleep(ctx, d.cfg.Pause); err != nil {
				return err
			}
		}
		img, err := d.capturer.Capture(ctx, m, seg)
		if err != nil {
			return fmt.Errorf("unable to capture segment %d [%.1f, %.1f): %w", i+1, seg.Start, seg.End, err)
		}
		data, err := d.encode(img)
		if err != nil {
			return fmt.Errorf("unable to encode segment %d: %w", i+1, err)
		}
		name := ArtifactName(base, i+1, d.cfg.Segmented, d.cfg.Format)
		if err := d.sink.Emit(ctx, name, data); err != nil {
			return fmt.Errorf("unable to emit %s: %w", name, err)
		}
		res.Artifacts = append(res.Artifacts, name)
		log.Debug("Artifact emitted",
			zap.String("name", name),
			zap.Float64("start", seg.Start),
			zap.Float64("end", seg.End),
			zap.Int("size", len(data)))
	}
	return nil
}

func (d *Driver) encode(img image.Image) ([]byte, error) {
	switch d.cfg.Format {
	case common.ExportFormatJpeg:
		return images.EncodeJPEG(img, d.cfg.JPEGQuality, dpi(d.cfg.Scale))
	case common.ExportFormatPng:
		buf := new(bytes.Buffer)
		if err := imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %s", d.cfg.Format)
	}
}

// dpi keeps physical size of the captured CSS pixels (96 per inch).
func dpi(scale float64) int16 {
	if scale <= 0 {
		scale = 1
	}
	return int16(math.Round(96 * scale))
}

// ArtifactName returns name of n-th (1 based) artifact. Segmented exports are
// always numbered, even when document fits into single segment.
func ArtifactName(base string, n int, segmented bool, format common.ExportFormat) string {
	if !segmented {
		return base + format.Ext()
	}
	return fmt.Sprintf("%s_part%d%s", base, n, format.Ext())
}
