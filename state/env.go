// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"trr/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by render and export subcommands
	NoDirs       bool
	Overwrite    bool
	Single       bool
	DefaultStyle []byte

	// Now is the wall clock, replaceable so composed documents could be
	// reproduced byte for byte.
	Now func() time.Time

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}

// UseStylesheet replaces built-in stylesheet with configured one, if any.
func (e *LocalEnv) UseStylesheet() error {
	if e.Cfg == nil || e.Cfg.Report.StylesheetPath == "" {
		return nil
	}
	data, err := os.ReadFile(e.Cfg.Report.StylesheetPath)
	if err != nil {
		return fmt.Errorf("unable to read style css from %q: %w", e.Cfg.Report.StylesheetPath, err)
	}
	e.DefaultStyle = data
	return nil
}

// SetSingle requests whole document to be exported as one image regardless
// of configured segmentation.
func (e *LocalEnv) SetSingle(single bool) {
	e.Single = single
	if single && e.Cfg != nil {
		e.Cfg.Export.Segmented = false
	}
}
