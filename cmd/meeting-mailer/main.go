// Command meeting-mailer processes forwarded scheduling-confirmation emails
// from a local directory and writes the composed confirmation artifacts to
// an output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/hechven/meeting-mailer/compose"
	"github.com/hechven/meeting-mailer/config"
	"github.com/hechven/meeting-mailer/delivery"
	"github.com/hechven/meeting-mailer/parsers"
)

const appName = "meeting-mailer"

var (
	inpath     string
	outpath    string
	configPath string
	workers    int
	loglevel   int
	keep       bool
)

func initCliFlags() {
	flag.StringVar(&inpath,
		"i", "", "input .eml file or directory of .eml files")
	flag.StringVar(&outpath,
		"o", "outdir", "destination directory for composed artifacts")
	flag.StringVar(&configPath,
		"c", "", "optional YAML config file")
	flag.IntVar(&workers,
		"w", runtime.GOMAXPROCS(0), "number of parallel workers, default: number of cores")
	flag.IntVar(&loglevel,
		"v", 0, "log verbosity 1-4 (error, warn, info, debug)")
	flag.BoolVar(&keep,
		"keep", false, "keep processed input files instead of deleting them")
	flag.Parse()
}

func newLogger(loglevel int) zerolog.Logger {
	var level zerolog.Level
	switch loglevel {
	case 1:
		level = zerolog.ErrorLevel
	case 2:
		level = zerolog.WarnLevel
	case 3:
		level = zerolog.InfoLevel
	case 4:
		level = zerolog.DebugLevel
	default:
		level = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Str("app", appName).Logger()
}

func configLevel(name string) int {
	switch strings.ToLower(name) {
	case "error":
		return 1
	case "warning", "warn":
		return 2
	case "info":
		return 3
	case "debug":
		return 4
	}
	return 3
}

func main() {
	initCliFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
	if loglevel == 0 {
		loglevel = configLevel(cfg.LogLevel)
	}
	logger := newLogger(loglevel)

	if inpath == "" {
		fmt.Fprintf(os.Stderr, "%s: -i is required\n", appName)
		flag.Usage()
		os.Exit(1)
	}

	info, err := os.Stat(inpath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", inpath).Msg("cannot stat input path")
	}

	root := inpath
	var keys []string
	if info.IsDir() {
		keys, err = collectInputs(inpath, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("cannot list input directory")
		}
	} else {
		root = filepath.Dir(inpath)
		keys = []string{filepath.Base(inpath)}
	}

	if len(keys) == 0 {
		logger.Warn().Str("path", inpath).Msg("no input emails found")
		return
	}

	store := &delivery.DirStore{Root: root}
	mailer := &delivery.FileMailer{Dir: outpath}
	parser := parsers.NewParserWithDomains(logger, cfg.SupportedDomains)
	composer := compose.New(logger, cfg.ConsultantFallback)
	processor := delivery.NewProcessor(keepAware(store), mailer, parser, composer, cfg.SourceAddress, logger)

	var processed, failed atomic.Int64
	pool := workerpool.New(workers)
	bar := progressbar.Default(int64(len(keys)), "processing")

	ctx := context.Background()
	for _, key := range keys {
		key := key
		pool.Submit(func() {
			defer bar.Add(1)
			if err := processor.Process(ctx, key); err != nil {
				failed.Add(1)
				logger.Error().Err(err).Str("key", key).Msg("processing failed")
				return
			}
			processed.Add(1)
		})
	}
	pool.StopWait()

	logger.Info().
		Int64("processed", processed.Load()).
		Int64("failed", failed.Load()).
		Msg("done")
	if failed.Load() > 0 {
		os.Exit(1)
	}
}

// collectInputs lists the .eml files under dir, skipping anything that does
// not sniff as text or message content.
func collectInputs(dir string, logger zerolog.Logger) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".eml") {
			continue
		}

		mtype, err := mimetype.DetectFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("cannot sniff file type, skipping")
			continue
		}
		if !strings.HasPrefix(mtype.String(), "text/") && !strings.HasPrefix(mtype.String(), "message/") {
			logger.Debug().Str("file", entry.Name()).Str("type", mtype.String()).Msg("not an email file, skipping")
			continue
		}
		keys = append(keys, entry.Name())
	}
	return keys, nil
}

// keepAware wraps the store so -keep turns deletes into no-ops.
func keepAware(store *delivery.DirStore) delivery.ObjectStore {
	if !keep {
		return store
	}
	return &readOnlyStore{inner: store}
}

type readOnlyStore struct {
	inner *delivery.DirStore
}

func (s *readOnlyStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, key)
}

func (s *readOnlyStore) Delete(context.Context, string) error {
	return nil
}
