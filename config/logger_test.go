package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestQuietCore(t *testing.T) {
	inner, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(&quietCore{Core: inner, names: []string{"layout", "css-parser"}}).Named("trr")

	log.Named("layout").Debug("box measured")
	log.Named("convert").Named("css-parser").Debug("rule skipped")
	log.Named("layout").Info("page measured")
	log.Named("export").Debug("segment captured")
	log.Named("layout").With(zap.String("id", "x")).Debug("box measured")
	log.Named("layouts").Debug("similar name")

	var got []string
	for _, e := range logs.All() {
		got = append(got, e.LoggerName+": "+e.Message)
	}
	want := []string{
		"trr.layout: page measured",
		"trr.export: segment captured",
		"trr.layouts: similar name",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("logged:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestConsoleCores(t *testing.T) {
	tests := []struct {
		level      string
		quiet      []string
		debugLow   bool
		infoLow    bool
		errorLow   bool
		errorHigh  bool
		quietWraps bool
	}{
		{level: "none"},
		{level: "normal", quiet: []string{"layout"}, infoLow: true, errorHigh: true},
		{level: "debug", debugLow: true, infoLow: true, errorHigh: true},
		{level: "debug", quiet: []string{"layout"}, debugLow: true, infoLow: true, errorHigh: true, quietWraps: true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			low, high := consoleCores(tt.level, tt.quiet)
			if got := low.Enabled(zapcore.DebugLevel); got != tt.debugLow {
				t.Errorf("low debug enabled = %v, want %v", got, tt.debugLow)
			}
			if got := low.Enabled(zapcore.InfoLevel); got != tt.infoLow {
				t.Errorf("low info enabled = %v, want %v", got, tt.infoLow)
			}
			if got := low.Enabled(zapcore.ErrorLevel); got != tt.errorLow {
				t.Errorf("low error enabled = %v, want %v", got, tt.errorLow)
			}
			if got := high.Enabled(zapcore.ErrorLevel); got != tt.errorHigh {
				t.Errorf("high error enabled = %v, want %v", got, tt.errorHigh)
			}
			if high.Enabled(zapcore.WarnLevel) {
				t.Error("high core must only take errors")
			}
			if _, ok := low.(*quietCore); ok != tt.quietWraps {
				t.Errorf("quiet wrapper = %v, want %v", ok, tt.quietWraps)
			}
		})
	}
}

func TestPlainErrorEncoder(t *testing.T) {
	enc := newPlainErrorEncoder(zap.NewDevelopmentEncoderConfig())
	err := multierr.Combine(errors.New("capture failed"), errors.New("sink closed"))

	buf, encErr := enc.EncodeEntry(zapcore.Entry{Message: "Export failed"}, []zapcore.Field{zap.Error(err), zap.String("id", "abc")})
	if encErr != nil {
		t.Fatalf("EncodeEntry() error: %v", encErr)
	}
	out := buf.String()
	for _, s := range []string{"capture failed; sink closed", `"id": "abc"`} {
		if !strings.Contains(out, s) {
			t.Errorf("output %q does not contain %q", out, s)
		}
	}
	for _, s := range []string{"errorVerbose", "errorCauses"} {
		if strings.Contains(out, s) {
			t.Errorf("output %q must not contain %q", out, s)
		}
	}
	if _, ok := enc.Clone().(plainErrorEncoder); !ok {
		t.Error("Clone() lost error filtering")
	}
}

func TestLoggingConfig_Prepare_FileLog(t *testing.T) {
	t.Cleanup(func() { _ = debug.SetCrashOutput(nil, debug.CrashOptions{}) })

	dir := t.TempDir()
	conf := &LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "normal", Destination: filepath.Join(dir, "trr.log"), Mode: "overwrite"},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	log.Named("export").Info("Artifact emitted", zap.String("name", "report_part1.png"))
	log.Debug("not written at normal level")
	_ = log.Sync()

	data, err := os.ReadFile(conf.FileLogger.Destination)
	if err != nil {
		t.Fatalf("unable to read log: %v", err)
	}
	if !strings.Contains(string(data), "report_part1.png") {
		t.Errorf("file log misses info message: %s", data)
	}
	if strings.Contains(string(data), "not written") {
		t.Errorf("file log has debug message: %s", data)
	}
}

func TestLoggingConfig_Prepare_ReportForcesDebug(t *testing.T) {
	t.Cleanup(func() { _ = debug.SetCrashOutput(nil, debug.CrashOptions{}) })

	dir := t.TempDir()
	rpt, err := (&ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() report error: %v", err)
	}
	t.Cleanup(func() { _ = rpt.Close() })

	conf := &LoggingConfig{
		ConsoleLogger: LoggerConfig{Level: "none"},
		FileLogger:    LoggerConfig{Level: "none", Destination: filepath.Join(dir, "trr.log"), Mode: "append"},
	}
	log, err := conf.Prepare(rpt)
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	log.Debug("segment plan ready")
	_ = log.Sync()

	data, err := os.ReadFile(conf.FileLogger.Destination)
	if err != nil {
		t.Fatalf("unable to read log: %v", err)
	}
	if !strings.Contains(string(data), "segment plan ready") {
		t.Errorf("debug message missing with report requested: %s", data)
	}
	if _, ok := rpt.entries["final.log"]; !ok {
		t.Error("file log not stored in report")
	}
}
