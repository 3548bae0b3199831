package config

import (
	"fmt"
	"os"
)

type DynamoConfig struct {
	PodcastsTableName string
	JobsTableName     string
}

func GetDynamoConfig() (*DynamoConfig, error) {
	podcastsTable := os.Getenv("DYNAMO_PODCASTS_TABLE")
	if podcastsTable == "" {
		return nil, fmt.Errorf("DYNAMO_PODCASTS_TABLE must be set")
	}

	jobsTable := os.Getenv("DYNAMO_JOBS_TABLE")
	if jobsTable == "" {
		return nil, fmt.Errorf("DYNAMO_JOBS_TABLE must be set")
	}

	return &DynamoConfig{
		PodcastsTableName: podcastsTable,
		JobsTableName:     jobsTable,
	}, nil
}
