package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/StudyXTeam23/aipodcast/application/ports/inbound"
	"github.com/StudyXTeam23/aipodcast/application/ports/outbound"
	"github.com/StudyXTeam23/aipodcast/application/services"
	"github.com/StudyXTeam23/aipodcast/config"
	"github.com/StudyXTeam23/aipodcast/domain"
	"github.com/StudyXTeam23/aipodcast/infrastructure/gin_interface/dto"
	"github.com/gin-gonic/gin"
)

const downloadExpiry = time.Hour

type PodcastsController interface {
	RegisterRoutes(g *gin.Engine)
}

type podcastsController struct {
	logger       outbound.LoggerPort
	dispatcher   outbound.TaskDispatcher
	lifecycle    inbound.PodcastLifecyclePort
	runner       inbound.PipelineRunnerPort
	blobs        outbound.BlobStorePort
	videoSource  outbound.VideoSourcePort
	uploadConfig *config.UploadConfig
	serverConfig *config.ServerConfig
}

func NewPodcastsController(logger outbound.LoggerPort, dispatcher outbound.TaskDispatcher,
	lifecycle inbound.PodcastLifecyclePort, runner inbound.PipelineRunnerPort,
	blobs outbound.BlobStorePort, videoSource outbound.VideoSourcePort,
	uploadConfig *config.UploadConfig, serverConfig *config.ServerConfig) PodcastsController {
	return &podcastsController{
		logger:       logger,
		dispatcher:   dispatcher,
		lifecycle:    lifecycle,
		runner:       runner,
		blobs:        blobs,
		videoSource:  videoSource,
		uploadConfig: uploadConfig,
		serverConfig: serverConfig,
	}
}

func (p *podcastsController) RegisterRoutes(g *gin.Engine) {
	podcasts := g.Group("/api/v1/podcasts")
	podcasts.POST("/upload", p.Upload)
	podcasts.POST("/generate", p.Generate)
	podcasts.POST("/analyze-and-generate-direct", p.AnalyzeAndGenerateDirect)
	podcasts.POST("/generate-from-youtube", p.GenerateFromYouTube)
	podcasts.GET("", p.List)
	podcasts.GET("/:id", p.Get)
	podcasts.DELETE("/:id", p.Delete)
	podcasts.GET("/:id/download", p.Download)
	podcasts.GET("/:id/stream", p.Stream)

	g.GET("/api/v1/jobs/:id", p.GetJob)
}

func (p *podcastsController) Upload(c *gin.Context) {
	data, filename, contentType, ok := p.readUpload(c)
	if !ok {
		return
	}

	key, err := p.blobs.Put(c.Request.Context(), data, "uploads/"+filename, contentType)
	if err != nil {
		p.respondError(c, http.StatusInternalServerError, "failed to store uploaded file")
		return
	}

	sourceType := domain.AudioSourceType
	if strings.HasPrefix(contentType, "video/") {
		sourceType = domain.VideoSourceType
	}

	podcast, job, err := p.lifecycle.CreateProcessingRequest(c.Request.Context(), inbound.CreateProcessingParams{
		Title:               filename,
		OriginalFilename:    filename,
		SourceType:          sourceType,
		SourceKey:           key,
		FileSizeBytes:       int64(len(data)),
		OriginalFormat:      fileExtension(filename),
		JobType:             domain.UploadJobType,
		Inputs:              domain.JobInputs{SourceKey: key, SourceType: string(sourceType)},
		BlobFreshlyUploaded: true,
	})
	if err != nil {
		p.respondError(c, http.StatusInternalServerError, "failed to create podcast records")
		return
	}

	p.startPipeline(c, podcast, job, fmt.Sprintf("File '%s' uploaded, processing started", filename))
}

func (p *podcastsController) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		p.respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	req.ApplyDefaults()

	podcast, job, err := p.lifecycle.CreateProcessingRequest(c.Request.Context(), inbound.CreateProcessingParams{
		Title:            truncateTitle(req.Topic, 50),
		OriginalFilename: "AI-" + req.Style,
		SourceType:       domain.TextSourceType,
		OriginalFormat:   "ai_generated",
		ExtractionMetadata: map[string]interface{}{
			"topic": req.Topic,
			"style": req.Style,
		},
		JobType: domain.GenerateJobType,
		Inputs: domain.JobInputs{
			Topic:           req.Topic,
			Style:           req.Style,
			DurationMinutes: req.DurationMinutes,
			Language:        req.Language,
		},
	})
	if err != nil {
		p.respondError(c, http.StatusInternalServerError, "failed to create podcast records")
		return
	}

	p.startPipeline(c, podcast, job, "Generating podcast: "+podcast.Title)
}

func (p *podcastsController) AnalyzeAndGenerateDirect(c *gin.Context) {
	data, filename, contentType, ok := p.readUpload(c)
	if !ok {
		return
	}

	style := c.DefaultQuery("style", "Conversation")
	language := c.DefaultQuery("language", "en")
	enhancementPrompt := c.Query("enhancement_prompt")
	durationMinutes, err := strconv.Atoi(c.DefaultQuery("duration_minutes", "5"))
	if err != nil || durationMinutes < 3 || durationMinutes > 15 {
		p.respondError(c, http.StatusBadRequest, "duration_minutes must be between 3 and 15")
		return
	}

	key, err := p.blobs.Put(c.Request.Context(), data, "uploads/"+filename, contentType)
	if err != nil {
		p.respondError(c, http.StatusInternalServerError, "failed to store uploaded file")
		return
	}

	sourceType := domain.AudioSourceType
	if strings.HasPrefix(contentType, "video/") {
		sourceType = domain.VideoSourceType
	}

	podcast, job, err := p.lifecycle.CreateProcessingRequest(c.Request.Context(), inbound.CreateProcessingParams{
		Title:            "Processing: " + truncateTitle(filename, 40),
		OriginalFilename: filename,
		SourceType:       sourceType,
		SourceKey:        key,
		FileSizeBytes:    int64(len(data)),
		OriginalFormat:   fileExtension(filename),
		JobType:          domain.AnalyzeGenerateJobType,
		Inputs: domain.JobInputs{
			SourceKey:         key,
			SourceType:        string(sourceType),
			EnhancementPrompt: enhancementPrompt,
			Style:             style,
			DurationMinutes:   durationMinutes,
			Language:          language,
		},
		BlobFreshlyUploaded: true,
	})
	if err != nil {
		p.respondError(c, http.StatusInternalServerError, "failed to create podcast records")
		return
	}

	p.startPipeline(c, podcast, job, "Analyzing and generating podcast: "+filename)
}

func (p *podcastsController) GenerateFromYouTube(c *gin.Context) {
	var req dto.YouTubeGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		p.respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	req.ApplyDefaults()

	if err := req.ValidateURL(); err != nil {
		p.respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	metadata, err := p.videoSource.GetMetadata(c.Request.Context(), req.YouTubeURL)
	if err != nil {
		p.respondError(c, http.StatusBadRequest, "unable to access YouTube video: "+err.Error())
		return
	}

	podcast, job, err := p.lifecycle.CreateProcessingRequest(c.Request.Context(), inbound.CreateProcessingParams{
		Title:            "Processing: " + truncateTitle(metadata.Title, 50),
		OriginalFilename: "YouTube-" + metadata.VideoID,
		SourceType:       domain.YouTubeSourceType,
		SourceURL:        req.YouTubeURL,
		OriginalDuration: float64(metadata.DurationSeconds),
		OriginalFormat:   "youtube",
		ExtractionMetadata: map[string]interface{}{
			"youtube_title":    metadata.Title,
			"youtube_uploader": metadata.Uploader,
			"youtube_duration": metadata.DurationSeconds,
		},
		JobType: domain.YouTubeGenerateJobType,
		Inputs: domain.JobInputs{
			YouTubeURL:        req.YouTubeURL,
			EnhancementPrompt: req.EnhancementPrompt,
			Style:             req.Style,
			DurationMinutes:   req.DurationMinutes,
			Language:          req.Language,
		},
	})
	if err != nil {
		p.respondError(c, http.StatusInternalServerError, "failed to create podcast records")
		return
	}

	p.startPipeline(c, podcast, job, "YouTube video analysis started: "+metadata.Title)
}

func (p *podcastsController) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	podcasts, err := p.lifecycle.ListPodcasts(c.Request.Context(), outbound.ListPodcastsParams{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	})
	if err != nil {
		p.respondError(c, http.StatusInternalServerError, "failed to list podcasts")
		return
	}

	responses := make([]dto.PodcastResponse, 0, len(podcasts))
	for _, podcast := range podcasts {
		responses = append(responses, dto.NewPodcastResponse(podcast, p.serverConfig.ApiDomain))
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.JSON(http.StatusOK, responses)
}

func (p *podcastsController) Get(c *gin.Context) {
	podcast, err := p.lifecycle.GetPodcast(c.Request.Context(), c.Param("id"))
	if err != nil {
		p.respondStoreError(c, err)
		return
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.JSON(http.StatusOK, dto.NewPodcastResponse(podcast, p.serverConfig.ApiDomain))
}

func (p *podcastsController) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := p.lifecycle.DeletePodcast(c.Request.Context(), id); err != nil {
		p.respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "podcast deleted"})
}

func (p *podcastsController) Download(c *gin.Context) {
	podcast, err := p.lifecycle.GetPodcast(c.Request.Context(), c.Param("id"))
	if err != nil {
		p.respondStoreError(c, err)
		return
	}
	if podcast.AudioKey == "" {
		p.respondError(c, http.StatusBadRequest, "podcast audio not generated yet")
		return
	}

	filename := podcast.Title + ".mp3"
	url, err := p.blobs.PresignedURL(outbound.PresignParams{
		Key:           podcast.AudioKey,
		Expiry:        downloadExpiry,
		Filename:      filename,
		ForceDownload: true,
	})
	if err != nil {
		p.respondError(c, http.StatusInternalServerError, "failed to create download link")
		return
	}

	c.JSON(http.StatusOK, dto.DownloadResponse{
		Success:     true,
		DownloadURL: url,
		ExpiresIn:   int(downloadExpiry.Seconds()),
		Filename:    filename,
	})
}

func (p *podcastsController) Stream(c *gin.Context) {
	podcast, err := p.lifecycle.GetPodcast(c.Request.Context(), c.Param("id"))
	if err != nil {
		p.respondStoreError(c, err)
		return
	}
	if podcast.AudioKey == "" {
		p.respondError(c, http.StatusBadRequest, "podcast audio not generated yet")
		return
	}

	data, err := p.blobs.Get(c.Request.Context(), podcast.AudioKey)
	if err != nil {
		p.respondError(c, http.StatusInternalServerError, "failed to fetch audio")
		return
	}

	c.Header("Accept-Ranges", "bytes")
	c.Header("Cache-Control", "public, max-age=3600")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", podcast.Title+".mp3"))
	c.Data(http.StatusOK, "audio/mpeg", data)
}

func (p *podcastsController) GetJob(c *gin.Context) {
	job, err := p.lifecycle.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		p.respondStoreError(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.JSON(http.StatusOK, job)
}

// readUpload validates and reads the multipart file. A false return means a
// response has already been written.
func (p *podcastsController) readUpload(c *gin.Context) (data []byte, filename string, contentType string, ok bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		p.respondError(c, http.StatusBadRequest, "file is required")
		return nil, "", "", false
	}
	if fileHeader.Filename == "" {
		p.respondError(c, http.StatusBadRequest, "filename must not be empty")
		return nil, "", "", false
	}

	mimeType, recognized := services.MediaMimeType(fileHeader.Filename)
	if !recognized {
		p.respondError(c, http.StatusBadRequest, "unsupported file type: "+fileExtension(fileHeader.Filename))
		return nil, "", "", false
	}

	if fileHeader.Size == 0 {
		p.respondError(c, http.StatusBadRequest, "file is empty")
		return nil, "", "", false
	}
	if fileHeader.Size > p.uploadConfig.MaxUploadBytes {
		p.respondError(c, http.StatusBadRequest, fmt.Sprintf(
			"file too large: %d bytes, maximum allowed: %d bytes", fileHeader.Size, p.uploadConfig.MaxUploadBytes))
		return nil, "", "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		p.respondError(c, http.StatusInternalServerError, "failed to read uploaded file")
		return nil, "", "", false
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		p.respondError(c, http.StatusInternalServerError, "failed to read uploaded file")
		return nil, "", "", false
	}

	return data, fileHeader.Filename, mimeType, true
}

// startPipeline hands the job to the worker pool and answers the request.
// The caller gets identifiers back before any pipeline phase runs.
func (p *podcastsController) startPipeline(c *gin.Context, podcast domain.Podcast, job domain.Job, message string) {
	err := p.dispatcher.Submit(func() {
		p.runner.Run(context.Background(), job)
	})
	if err != nil {
		p.logger.ErrorWithFields(err, "Failed to submit pipeline task", map[string]interface{}{
			"job_id": job.ID,
		})
		p.respondError(c, http.StatusInternalServerError, "failed to start processing")
		return
	}

	c.JSON(http.StatusOK, dto.CreateResponse{
		PodcastID: podcast.ID,
		JobID:     job.ID,
		Status:    string(domain.PodcastProcessing),
		Message:   message,
	})
}

func (p *podcastsController) respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, outbound.ErrRecordNotFound) {
		p.respondError(c, http.StatusNotFound, "record not found")
		return
	}
	p.logger.Error(err, "Record store request failed")
	p.respondError(c, http.StatusInternalServerError, "storage error")
}

func (p *podcastsController) respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func truncateTitle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func fileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}
