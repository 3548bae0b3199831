package main

import (
	"fmt"
	"time"

	"github.com/StudyXTeam23/aipodcast/application/services"
	"github.com/StudyXTeam23/aipodcast/config"
	"github.com/StudyXTeam23/aipodcast/infrastructure/adapters"
	"github.com/StudyXTeam23/aipodcast/infrastructure/gin_interface/controllers"
	"github.com/StudyXTeam23/aipodcast/middleware"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))

	geminiConfig, err := config.GetGeminiConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get gemini config")
	}

	elevenLabsConfig, err := config.GetElevenLabsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get eleven labs config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
	}

	youtubeConfig, err := config.GetYouTubeConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get youtube config")
	}

	uploadConfig, err := config.GetUploadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get upload config")
	}

	serverConfig, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get server config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(50, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	s3Client := s3.New(sess)
	dynamoClient := dynamodb.New(sess)

	contentFetcher := adapters.NewContentFetcher(zeroLogger, 5*time.Minute)

	textGenerator := adapters.NewGeminiTextGenerator(geminiConfig, zeroLogger)
	mediaAnalyzer := adapters.NewGeminiMediaAnalyzer(contentFetcher, geminiConfig, zeroLogger)
	synthesizer := adapters.NewElevenLabsSynthesizer(contentFetcher, elevenLabsConfig, zeroLogger)
	videoSource := adapters.NewYouTubeClient(mediaAnalyzer, youtubeConfig, zeroLogger)

	blobStore := adapters.NewS3BlobStore(s3Client, s3Config, zeroLogger)
	podcastStore := adapters.NewDynamoPodcastStore(zeroLogger, dynamoClient, dynamoConfig)
	jobStore := adapters.NewDynamoJobStore(zeroLogger, dynamoClient, dynamoConfig)

	dispatcher := adapters.NewAntsDispatcher(workerPool)

	contentExtractor := services.NewContentExtractor(zeroLogger, mediaAnalyzer, textGenerator)
	scriptGenerator := services.NewScriptGenerator(zeroLogger, textGenerator)
	dialogueSegmenter := services.NewDialogueSegmenter()

	podcastLifecycle := services.NewPodcastLifecycle(zeroLogger, podcastStore, jobStore, blobStore)

	pipelineRunner := services.NewPipelineRunner(zeroLogger, podcastStore, jobStore, blobStore,
		contentExtractor, scriptGenerator, dialogueSegmenter, synthesizer, videoSource)

	podcastsController := controllers.NewPodcastsController(zeroLogger, dispatcher, podcastLifecycle,
		pipelineRunner, blobStore, videoSource, uploadConfig, serverConfig)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	router.Use(middleware.RequestLogger(zeroLogger))

	podcastsController.RegisterRoutes(router)

	err = router.Run(":" + serverConfig.Port)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
