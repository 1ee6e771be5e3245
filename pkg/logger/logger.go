package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// New creates the logger shared by every component of a binary.
// Production logs are JSON, everything else is human readable.
func New(level string, environment string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to info", level)
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if environment == "production" || environment == "docker" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return log
}

// Discard returns a logger that drops everything, used on tests.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// ObjectUploader is the part of the bucket client the archiver needs.
type ObjectUploader interface {
	PutObject(ctx context.Context, bucket string, key string, body io.Reader, contentType string) error
}

// Archiver keeps a copy of the log lines on a temporary file that is periodically shipped to a bucket.
type Archiver struct {
	mu       sync.Mutex
	logFile  *os.File
	uploader ObjectUploader
	bucket   string
}

// NewArchiver creates the archive with a temporary file.
func NewArchiver(uploader ObjectUploader, bucket string) (*Archiver, error) {
	f, err := os.CreateTemp("", "log-*.log")
	if err != nil {
		return nil, err
	}

	return &Archiver{
		logFile:  f,
		uploader: uploader,
		bucket:   bucket,
	}, nil
}

// Attach duplicates the logger output into the archive.
func (a *Archiver) Attach(log *logrus.Logger) {
	log.SetOutput(io.MultiWriter(log.Out, a))
}

// Write implements io.Writer.
func (a *Archiver) Write(p []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.logFile.Write(p)
}

// Upload sends the current archive to the bucket and truncates the file.
func (a *Archiver) Upload(ctx context.Context, objectKey string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.logFile.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind file: %w", err)
	}

	if err := a.uploader.PutObject(ctx, a.bucket, objectKey, a.logFile, "text/plain"); err != nil {
		return fmt.Errorf("failed to upload %s to the log bucket: %w", objectKey, err)
	}

	// Clean the file after sending.
	if err := a.logFile.Truncate(0); err != nil {
		return err
	}
	_, err := a.logFile.Seek(0, io.SeekStart)
	return err
}

// Close removes the temporary file.
func (a *Archiver) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	name := a.logFile.Name()
	if err := a.logFile.Close(); err != nil {
		return err
	}
	return os.Remove(name)
}
