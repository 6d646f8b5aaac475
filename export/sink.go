package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// DirSink writes artifacts as files into directory.
type DirSink struct {
	Dir       string
	Overwrite bool
	Log       *zap.Logger
}

func (s *DirSink) Emit(ctx context.Context, name string, data []byte) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name != filepath.Base(name) {
		return fmt.Errorf("artifact name must not contain path: %s", name)
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	path := filepath.Join(s.Dir, name)
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if s.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("output file already exists: %s", path)
		}
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer func() {
		if e := f.Close(); e != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close output file: %w", e))
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	if s.Log != nil {
		s.Log.Info("Artifact written", zap.String("file", path), zap.Int("size", len(data)))
	}
	return nil
}

// SinkFunc adapts a function to ArtifactSink.
type SinkFunc func(ctx context.Context, name string, data []byte) error

func (f SinkFunc) Emit(ctx context.Context, name string, data []byte) error {
	return f(ctx, name, data)
}

// Tee emits every artifact to all sinks in order, stopping at first failure.
func Tee(sinks ...ArtifactSink) ArtifactSink {
	return SinkFunc(func(ctx context.Context, name string, data []byte) error {
		for _, s := range sinks {
			if err := s.Emit(ctx, name, data); err != nil {
				return err
			}
		}
		return nil
	})
}
