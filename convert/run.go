// Package convert implements render and export commands: it finds report
// inputs, composes documents and writes them as HTML or images.
package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"trr/archive"
	"trr/export"
	"trr/layout"
	"trr/raster"
	"trr/report"
	"trr/state"
)

// Render composes reports into HTML documents.
func Render(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, false)
}

// Export composes reports and exports them as images.
func Export(ctx context.Context, cmd *cli.Command) error {
	return run(ctx, cmd, true)
}

func run(ctx context.Context, cmd *cli.Command, images bool) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if err := env.UseStylesheet(); err != nil {
		return err
	}
	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	if images {
		env.SetSingle(cmd.Bool("single"))
	}

	p, err := newPipeline(env, images, log)
	if err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Bool("images", images))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return p.process(ctx, src, dst)
}

// pipeline turns report inputs into outputs, when driver is nil documents
// are written as HTML.
type pipeline struct {
	env      *state.LocalEnv
	log      *zap.Logger
	composer *report.Composer
	engine   *layout.Engine
	driver   *export.Driver
	sink     *export.DirSink
	measured int
}

func newPipeline(env *state.LocalEnv, images bool, log *zap.Logger) (*pipeline, error) {
	formatter, err := report.NewTemplateFormatter("")
	if err != nil {
		return nil, fmt.Errorf("unable to prepare analysis formatter: %w", err)
	}
	p := &pipeline{
		env:      env,
		log:      log,
		composer: report.NewComposer(&env.Cfg.Report, env.DefaultStyle, formatter, env.Now, env.Log),
	}
	if !images {
		return p, nil
	}

	capturer, err := raster.NewCapturer(&env.Cfg.Export, env.Log)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare capture: %w", err)
	}
	p.engine = layout.NewEngine(env.Cfg.Export.Width, env.Log)
	p.sink = &export.DirSink{Overwrite: env.Overwrite, Log: log}

	var sink export.ArtifactSink = p.sink
	if env.Rpt != nil {
		sink = export.Tee(p.sink, export.SinkFunc(func(_ context.Context, name string, data []byte) error {
			env.Rpt.StoreData(filepath.Join("artifacts", name), data)
			return nil
		}))
	}
	p.driver = export.NewDriver(&env.Cfg.Export, export.MeasureFunc(p.measure), capturer, sink, env.Log)
	return p, nil
}

func (p *pipeline) measure(ctx context.Context, doc *etree.Document) (export.Measurement, error) {
	page, err := p.engine.Measure(ctx, doc)
	if err != nil {
		return nil, err
	}
	p.measured++
	if p.env.Rpt != nil {
		p.env.Rpt.StoreData(fmt.Sprintf("layout-%03d.txt", p.measured), []byte(page.Dump()))
	}
	return page, nil
}

// process determines the input type (directory, archive, or single file) and
// processes accordingly.
func (p *pipeline) process(ctx context.Context, src, dst string) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			if err := p.processDir(ctx, head, dst); err != nil {
				return fmt.Errorf("unable to process directory: %w", err)
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		isArchive, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if isArchive {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := p.processArchive(ctx, head, filepath.ToSlash(tail), "", dst); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		isReport, err := isReportFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if isReport && len(tail) == 0 {
			data, err := os.ReadFile(head)
			if err != nil {
				return fmt.Errorf("unable to read report: %w", err)
			}
			if err := p.processReport(ctx, data, filepath.Base(head), dst); err != nil {
				return err
			}
			break
		}
		return fmt.Errorf("input was not recognized as report (%s)", head)
	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree in natural name order and processes all
// reports and archives found. Failures of individual reports are logged.
func (p *pipeline) processDir(ctx context.Context, dir, dst string) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			p.log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	paths, err := walkDir(dir, p.log)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		isArchive, err := isArchiveFile(path)
		if err != nil {
			p.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			continue
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if isArchive {
			if err := p.processArchive(ctx, path, "", filepath.Dir(rel), dst); err != nil {
				p.log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			continue
		}
		if !isReportName(path) {
			p.log.Debug("Skipping file, not recognized as report or archive", zap.String("file", path))
			continue
		}

		count++
		data, err := os.ReadFile(path)
		if err != nil {
			p.log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			continue
		}
		if err := p.processReport(ctx, data, rel, dst); err != nil {
			p.log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
	}
	return nil
}

// processArchive processes all reports under pathIn inside archive.
func (p *pipeline) processArchive(ctx context.Context, path, pathIn, pathOut, dst string) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			p.log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	return archive.Walk(path, pathIn, isReportName, func(name string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++

		data, err := archive.ReadFile(f)
		if err != nil {
			p.log.Error("Unable to process file in archive", zap.String("archive", name), zap.String("file", f.Name), zap.Error(err))
			return nil
		}
		if err := p.processReport(ctx, data, filepath.Join(pathOut, filepath.FromSlash(f.Name)), dst); err != nil {
			p.log.Error("Unable to process file in archive", zap.String("archive", name), zap.String("file", f.Name), zap.Error(err))
		}
		return nil
	})
}

// processReport handles single report. "src" is path of the source relative
// to the original path (just base name when single file was specified),
// "dst" is the destination directory.
func (p *pipeline) processReport(ctx context.Context, data []byte, src, dst string) (rerr error) {
	env := p.env
	log := p.log.With(zap.String("from", src))

	var outputName string

	log.Info("Report processing starting")
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Report processing ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("report processing panic: %v", r)
		} else if rerr == nil {
			log.Info("Report processing completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName))
		}
	}(time.Now())

	in, err := report.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("unable to read report (%s): %w", src, err)
	}
	composed := p.composer.Compose(in)

	html, err := composed.Bytes()
	if err != nil {
		return fmt.Errorf("unable to serialize report: %w", err)
	}
	outputName = buildOutputPath(buildValues(in, src, env), src, dst, env)
	if env.Rpt != nil {
		env.Rpt.StoreData(filepath.Join("composed", filepath.Base(outputName)+".html"), html)
	}

	if p.driver == nil {
		outputName += ".html"
		return writeFile(outputName, html, env.Overwrite, log)
	}

	p.sink.Dir = filepath.Dir(outputName)
	res, err := p.driver.Export(ctx, composed.Doc, filepath.Base(outputName))
	if res != nil && env.Rpt != nil && res.Dump != "" {
		env.Rpt.StoreData(fmt.Sprintf("segments-%s.txt", res.ID), []byte(res.Dump))
	}
	if err != nil {
		return fmt.Errorf("unable to export report: %w", err)
	}
	log.Debug("Report exported", zap.String("id", res.ID), zap.Strings("artifacts", res.Artifacts))
	return nil
}

func writeFile(name string, data []byte, overwrite bool, log *zap.Logger) error {
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return fmt.Errorf("output file already exists: %s", name)
		}
		log.Warn("Overwriting existing file", zap.String("file", name))
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(name, data, 0644); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	return nil
}

// walkDir returns regular files under dir in natural order, so "day2.json"
// is processed before "day10.json".
func walkDir(dir string, log *zap.Logger) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(paths, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return paths, nil
}
