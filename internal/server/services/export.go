package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/edupilot/internal/logging"
	"github.com/dmitrijs2005/edupilot/internal/records"
	sc "github.com/dmitrijs2005/edupilot/internal/server/config"
	"github.com/dmitrijs2005/edupilot/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ExportLinkTTL is how long the download link of an export stays valid.
const ExportLinkTTL = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// Snapshot is the document written by an export.
type Snapshot struct {
	ExportedAt time.Time          `json:"exportedAt"`
	Tasks      []records.Task     `json:"tasks"`
	StudyLogs  []records.StudyLog `json:"studyLogs"`
}

// ExportResult locates an uploaded snapshot.
type ExportResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ExportService uploads JSON snapshots of all records to object storage.
type ExportService struct {
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	log         logging.Logger
}

func NewExportService(m repomanager.RepositoryManager, cfg *sc.Config, log logging.Logger) *ExportService {
	return &ExportService{repomanager: m, config: cfg, log: log.With("module", "export")}
}

// ExportStorageKey builds the object key for an export made at t.
func ExportStorageKey(t time.Time) string {
	return fmt.Sprintf("exports/%04d/%02d/%02d/%s.json", t.Year(), t.Month(), t.Day(), uuid.New())
}

func (s *ExportService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Export writes the current tasks and study logs as one JSON object and
// returns its key with a presigned download URL.
func (s *ExportService) Export(ctx context.Context) (*ExportResult, error) {
	now := nowFn()

	taskList, err := s.repomanager.Tasks().List(ctx)
	if err != nil {
		return nil, storageError(ctx, s.log, "export tasks", err)
	}
	logList, err := s.repomanager.StudyLogs().List(ctx)
	if err != nil {
		return nil, storageError(ctx, s.log, "export study logs", err)
	}

	body, err := json.Marshal(Snapshot{ExportedAt: now, Tasks: taskList, StudyLogs: logList})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, storageError(ctx, s.log, "object storage config", err)
	}

	bucket := s.config.S3Bucket
	key := ExportStorageKey(now)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, storageError(ctx, s.log, "upload export", err)
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ExportLinkTTL))
	if err != nil {
		return nil, storageError(ctx, s.log, "presign export", err)
	}

	s.log.Info(ctx, "export uploaded", "key", key, "tasks", len(taskList), "study_logs", len(logList))
	return &ExportResult{Key: key, URL: req.URL}, nil
}
