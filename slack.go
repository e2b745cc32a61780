package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slack-go/slack"
)

// FileUploader is the seam over the Slack API used for delivery.
type FileUploader interface {
	UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
}

// SlackDelivery posts the generated report files to a channel.
type SlackDelivery struct {
	logger   *Logger
	uploader FileUploader
	channel  string
	tagLine  string
}

// NewSlackDelivery creates a delivery targeting one channel. tagLine is an
// optional mention string appended to the report comment.
func NewSlackDelivery(logger *Logger, uploader FileUploader, channel, tagLine string) *SlackDelivery {
	return &SlackDelivery{
		logger:   logger,
		uploader: uploader,
		channel:  channel,
		tagLine:  tagLine,
	}
}

// DeliverReport uploads both CSVs. Only the escalations file carries the
// report comment, so the channel gets exactly one announcement per day.
func (d *SlackDelivery) DeliverReport(ctx context.Context, date, escalationsPath, conversationsPath string) error {
	comment := fmt.Sprintf("📊 *Fin AI report – %s*", date)
	if d.tagLine != "" {
		comment += "\n" + d.tagLine
	}

	if err := d.uploadFile(ctx, escalationsPath, comment); err != nil {
		return err
	}
	return d.uploadFile(ctx, conversationsPath, "")
}

func (d *SlackDelivery) uploadFile(ctx context.Context, path, comment string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error reading report file %s: %v", path, err)
	}

	params := slack.UploadFileV2Parameters{
		File:           path,
		Filename:       filepath.Base(path),
		FileSize:       int(info.Size()),
		Channel:        d.channel,
		InitialComment: comment,
	}
	summary, err := d.uploader.UploadFileV2Context(ctx, params)
	if err != nil {
		return fmt.Errorf("error uploading %s to Slack: %v", filepath.Base(path), err)
	}

	d.logger.Infof("Uploaded %s to Slack (file id %s)", filepath.Base(path), summary.ID)
	return nil
}
