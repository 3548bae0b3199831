package adapters

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/StudyXTeam23/aipodcast/config"
	"github.com/StudyXTeam23/aipodcast/domain"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

type dynamoPodcastItem struct {
	ID                 string                 `dynamodbav:"id"`
	Title              string                 `dynamodbav:"title"`
	OriginalFilename   string                 `dynamodbav:"original_filename"`
	SourceType         string                 `dynamodbav:"source_type"`
	SourceURL          string                 `dynamodbav:"source_url,omitempty"`
	ExtractionMetadata map[string]interface{} `dynamodbav:"extraction_metadata,omitempty"`
	OriginalDuration   float64                `dynamodbav:"original_duration,omitempty"`
	OriginalFormat     string                 `dynamodbav:"original_format,omitempty"`
	Status             string                 `dynamodbav:"status"`
	SourceKey          string                 `dynamodbav:"s3_key,omitempty"`
	AudioKey           string                 `dynamodbav:"audio_s3_key,omitempty"`
	Transcript         string                 `dynamodbav:"transcript,omitempty"`
	FileSizeBytes      int64                  `dynamodbav:"file_size_bytes,omitempty"`
	CreatedAt          string                 `dynamodbav:"created_at"`
	UpdatedAt          string                 `dynamodbav:"updated_at"`
}

type dynamoJobItem struct {
	ID            string           `dynamodbav:"id"`
	PodcastID     string           `dynamodbav:"podcast_id"`
	Type          string           `dynamodbav:"type"`
	Inputs        domain.JobInputs `dynamodbav:"inputs"`
	Status        string           `dynamodbav:"status"`
	Progress      int              `dynamodbav:"progress"`
	StatusMessage string           `dynamodbav:"status_message,omitempty"`
	ErrorMessage  string           `dynamodbav:"error_message,omitempty"`
	CreatedAt     string           `dynamodbav:"created_at"`
	UpdatedAt     string           `dynamodbav:"updated_at"`
}

type dynamoPodcastStore struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoPodcastStore(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.PodcastStorePort {
	return &dynamoPodcastStore{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (s *dynamoPodcastStore) Save(ctx context.Context, podcast domain.Podcast) error {
	item := dynamoPodcastItem{
		ID:                 podcast.ID,
		Title:              podcast.Title,
		OriginalFilename:   podcast.OriginalFilename,
		SourceType:         string(podcast.SourceType),
		SourceURL:          podcast.SourceURL,
		ExtractionMetadata: podcast.ExtractionMetadata,
		OriginalDuration:   podcast.OriginalDuration,
		OriginalFormat:     podcast.OriginalFormat,
		Status:             string(podcast.Status),
		SourceKey:          podcast.SourceKey,
		AudioKey:           podcast.AudioKey,
		Transcript:         podcast.Transcript,
		FileSizeBytes:      podcast.FileSizeBytes,
		CreatedAt:          podcast.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:          podcast.UpdatedAt.UTC().Format(time.RFC3339),
	}
	return putItem(ctx, s.logger, s.dynamoSvc, s.dynamoConfig.PodcastsTableName, item)
}

func (s *dynamoPodcastStore) Get(ctx context.Context, id string) (domain.Podcast, error) {
	var item dynamoPodcastItem
	if err := getItem(ctx, s.dynamoSvc, s.dynamoConfig.PodcastsTableName, id, &item); err != nil {
		return domain.Podcast{}, err
	}
	return item.toDomain(), nil
}

func (s *dynamoPodcastStore) List(ctx context.Context, params outbound.ListPodcastsParams) ([]domain.Podcast, error) {
	var items []dynamoPodcastItem

	err := s.dynamoSvc.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.dynamoConfig.PodcastsTableName),
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		var pageItems []dynamoPodcastItem
		if err := dynamodbattribute.UnmarshalListOfMaps(page.Items, &pageItems); err != nil {
			s.logger.Error(err, "Failed to unmarshal scanned podcast items")
			return false
		}
		items = append(items, pageItems...)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("scan podcasts: %w", err)
	}

	if params.Search != "" {
		search := strings.ToLower(params.Search)
		filtered := items[:0]
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Title), search) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 20
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []domain.Podcast{}, nil
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}

	podcasts := make([]domain.Podcast, 0, end-start)
	for _, item := range items[start:end] {
		podcasts = append(podcasts, item.toDomain())
	}
	return podcasts, nil
}

func (s *dynamoPodcastStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return updateItem(ctx, s.dynamoSvc, s.dynamoConfig.PodcastsTableName, id, fields)
}

func (s *dynamoPodcastStore) Delete(ctx context.Context, id string) error {
	_, err := s.dynamoSvc.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.dynamoConfig.PodcastsTableName),
		Key:       recordKey(id),
	})
	return err
}

func (item dynamoPodcastItem) toDomain() domain.Podcast {
	return domain.Podcast{
		ID:                 item.ID,
		Title:              item.Title,
		OriginalFilename:   item.OriginalFilename,
		SourceType:         domain.SourceType(item.SourceType),
		SourceURL:          item.SourceURL,
		ExtractionMetadata: item.ExtractionMetadata,
		OriginalDuration:   item.OriginalDuration,
		OriginalFormat:     item.OriginalFormat,
		Status:             domain.PodcastStatus(item.Status),
		SourceKey:          item.SourceKey,
		AudioKey:           item.AudioKey,
		Transcript:         item.Transcript,
		FileSizeBytes:      item.FileSizeBytes,
		CreatedAt:          parseRecordTime(item.CreatedAt),
		UpdatedAt:          parseRecordTime(item.UpdatedAt),
	}
}

type dynamoJobStore struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoJobStore(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.JobStorePort {
	return &dynamoJobStore{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (s *dynamoJobStore) Save(ctx context.Context, job domain.Job) error {
	item := dynamoJobItem{
		ID:            job.ID,
		PodcastID:     job.PodcastID,
		Type:          string(job.Type),
		Inputs:        job.Inputs,
		Status:        string(job.Status),
		Progress:      job.Progress,
		StatusMessage: job.StatusMessage,
		ErrorMessage:  job.ErrorMessage,
		CreatedAt:     job.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     job.UpdatedAt.UTC().Format(time.RFC3339),
	}
	return putItem(ctx, s.logger, s.dynamoSvc, s.dynamoConfig.JobsTableName, item)
}

func (s *dynamoJobStore) Get(ctx context.Context, id string) (domain.Job, error) {
	var item dynamoJobItem
	if err := getItem(ctx, s.dynamoSvc, s.dynamoConfig.JobsTableName, id, &item); err != nil {
		return domain.Job{}, err
	}
	return domain.Job{
		ID:            item.ID,
		PodcastID:     item.PodcastID,
		Type:          domain.JobType(item.Type),
		Inputs:        item.Inputs,
		Status:        domain.JobStatus(item.Status),
		Progress:      item.Progress,
		StatusMessage: item.StatusMessage,
		ErrorMessage:  item.ErrorMessage,
		CreatedAt:     parseRecordTime(item.CreatedAt),
		UpdatedAt:     parseRecordTime(item.UpdatedAt),
	}, nil
}

func (s *dynamoJobStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return updateItem(ctx, s.dynamoSvc, s.dynamoConfig.JobsTableName, id, fields)
}

func putItem(ctx context.Context, logger outbound.LoggerPort, svc *dynamodb.DynamoDB, table string, item interface{}) error {
	av, err := dynamodbattribute.MarshalMap(item)
	if err != nil {
		logger.ErrorWithFields(err, "Failed to marshal record item", map[string]interface{}{
			"table": table,
		})
		return err
	}

	_, err = svc.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(table),
	})
	if err != nil {
		logger.ErrorWithFields(err, "Failed to save record item", map[string]interface{}{
			"table": table,
		})
	}
	return err
}

func getItem(ctx context.Context, svc *dynamodb.DynamoDB, table string, id string, out interface{}) error {
	res, err := svc.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       recordKey(id),
	})
	if err != nil {
		return fmt.Errorf("get record %s: %w", id, err)
	}
	if res.Item == nil {
		return outbound.ErrRecordNotFound
	}
	return dynamodbattribute.UnmarshalMap(res.Item, out)
}

// updateItem merges the given fields into an existing record. Updating an
// absent record (deleted mid-run) reports not-found rather than upserting a
// partial one.
func updateItem(ctx context.Context, svc *dynamodb.DynamoDB, table string, id string, fields map[string]interface{}) error {
	names := make(map[string]*string, len(fields))
	values := make(map[string]*dynamodb.AttributeValue, len(fields))
	sets := make([]string, 0, len(fields))

	i := 0
	for field, value := range fields {
		av, err := dynamodbattribute.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal update field %s: %w", field, err)
		}
		nameKey := fmt.Sprintf("#f%d", i)
		valueKey := fmt.Sprintf(":v%d", i)
		names[nameKey] = aws.String(field)
		values[valueKey] = av
		sets = append(sets, nameKey+" = "+valueKey)
		i++
	}

	_, err := svc.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       recordKey(id),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var awsErr awserr.Error
		if errors.As(err, &awsErr) && awsErr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
			return outbound.ErrRecordNotFound
		}
		return fmt.Errorf("update record %s: %w", id, err)
	}
	return nil
}

func recordKey(id string) map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		"id": {S: aws.String(id)},
	}
}

func parseRecordTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
