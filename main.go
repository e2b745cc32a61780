package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/slack-go/slack"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ReportResponse summarizes one report run.
type ReportResponse struct {
	Date          string   `json:"date"`
	Conversations int      `json:"conversations"`
	Files         []string `json:"files"`
	Delivered     bool     `json:"delivered"`
}

// HandlerService contains dependencies for the Lambda handler.
type HandlerService struct {
	logger *Logger
	now    func() time.Time
	// newUploader builds the Slack client; tests substitute a mock.
	newUploader func(token string) FileUploader
}

// NewHandlerService creates a new HandlerService with default dependencies.
func NewHandlerService() *HandlerService {
	return &HandlerService{
		logger: NewLogger(),
		now:    time.Now,
		newUploader: func(token string) FileUploader {
			return slack.New(token)
		},
	}
}

func handler(ctx context.Context, event events.CloudWatchEvent) (*ReportResponse, error) {
	return NewHandlerService().Handle(ctx, event)
}

// Handle runs one report: resolve configuration, collect the window's
// escalated and poorly rated Fin conversations, write both CSVs, and
// deliver them to Slack. Any collection error aborts the run before a
// single file is written.
func (s *HandlerService) Handle(ctx context.Context, event events.CloudWatchEvent) (*ReportResponse, error) {
	s.logger.Debugf("Received event: %+v", event)

	cfg, err := resolveReportConfig(ctx, s.logger, event)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid reportTimezone %q: %v", cfg.Timezone, err)
	}

	start, end, date, err := reportWindow(s.now(), loc, cfg.ReportDate)
	if err != nil {
		return nil, err
	}
	s.logger.Infof("Building Fin report %s for %s (window %d..%d)", Version, date, start, end)

	client := NewIntercomClient(s.logger, cfg.IntercomToken, cfg.APIRoot)
	userRows, fullRows, err := collectReport(ctx, client, client, s.logger, reportSearches(start, end))
	if err != nil {
		return nil, err
	}
	s.logger.Infof("Collected %d conversations for %s", len(userRows), date)

	escalationsPath := filepath.Join(cfg.OutputDir, escalationsFileName(date))
	conversationsPath := filepath.Join(cfg.OutputDir, conversationsFileName(date))
	if err := writeRowsCSV(escalationsPath, escalationFields, userRows); err != nil {
		return nil, err
	}
	if err := writeRowsCSV(conversationsPath, conversationFields, fullRows); err != nil {
		return nil, err
	}

	resp := &ReportResponse{
		Date:          date,
		Conversations: len(userRows),
		Files:         []string{escalationsPath, conversationsPath},
	}

	if cfg.SkipDelivery {
		s.logger.Infof("Delivery skipped; files left in %s", cfg.OutputDir)
		return resp, nil
	}

	delivery := NewSlackDelivery(s.logger, s.newUploader(cfg.SlackBotToken), cfg.SlackChannelID, cfg.SlackTagLine)
	if err := delivery.DeliverReport(ctx, date, escalationsPath, conversationsPath); err != nil {
		return nil, err
	}
	resp.Delivered = true
	return resp, nil
}

func main() {
	// Support test mode: if --test flag is passed, read an event from stdin
	// and write the response to stdout.
	if len(os.Args) > 1 && os.Args[1] == "--test" {
		var event events.CloudWatchEvent
		decoder := json.NewDecoder(os.Stdin)
		if err := decoder.Decode(&event); err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding event: %v\n", err)
			os.Exit(1)
		}

		result, err := handler(context.Background(), event)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		out, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(out))
		return
	}

	lambda.Start(handler)
}
