package logger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	bucket string
	key    string
	body   []byte
	err    error
}

func (f *fakeUploader) PutObject(ctx context.Context, bucket string, key string, body io.Reader, contentType string) error {
	if f.err != nil {
		return f.err
	}
	f.bucket = bucket
	f.key = key
	f.body, _ = io.ReadAll(body)
	return nil
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		env       string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{name: "debugDevelopment", level: "debug", env: "development", wantLevel: logrus.DebugLevel},
		{name: "invalidLevel", level: "loud", env: "development", wantLevel: logrus.InfoLevel},
		{name: "production", level: "warn", env: "production", wantLevel: logrus.WarnLevel, wantJSON: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level, tt.env)
			assert.Equal(t, tt.wantLevel, log.GetLevel())

			_, isJSON := log.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestArchiverUpload(t *testing.T) {
	uploader := &fakeUploader{}
	archiver, err := NewArchiver(uploader, "logs")
	require.NoError(t, err)
	defer archiver.Close()

	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	archiver.Attach(log)

	log.Info("race results calculated")

	require.NoError(t, archiver.Upload(context.Background(), "api/2026-10-19.log"))
	assert.Equal(t, "logs", uploader.bucket)
	assert.Equal(t, "api/2026-10-19.log", uploader.key)
	assert.Contains(t, string(uploader.body), "race results calculated")

	// The archive is emptied after a successful upload.
	require.NoError(t, archiver.Upload(context.Background(), "api/empty.log"))
	assert.Empty(t, uploader.body)
}

func TestArchiverUploadError(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("bucket down")}
	archiver, err := NewArchiver(uploader, "logs")
	require.NoError(t, err)
	defer archiver.Close()

	_, err = archiver.Write([]byte("line\n"))
	require.NoError(t, err)

	err = archiver.Upload(context.Background(), "key")
	assert.ErrorContains(t, err, "bucket down")
}
