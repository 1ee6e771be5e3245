package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// LogUploader ships the local log archive.
type LogUploader interface {
	Upload(ctx context.Context, objectKey string) error
}

// ArchiveLogs uploads the scheduler logs written since the previous run.
func ArchiveLogs(archiver LogUploader, log *logrus.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	key := fmt.Sprintf("scheduler/%s.log", time.Now().UTC().Format("2006-01-02T15-04-05"))
	if err := archiver.Upload(ctx, key); err != nil {
		return err
	}

	log.WithField("key", key).Debug("Log archive uploaded")
	return nil
}
