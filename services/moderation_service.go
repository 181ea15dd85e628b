package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"judol-guard/config"
	"judol-guard/detector"
	"judol-guard/groq"
	"judol-guard/logger"
	"judol-guard/models"
	"judol-guard/quota"
)

// ChannelStore reads the monitored channel configuration rows.
type ChannelStore interface {
	List(ctx context.Context) ([]models.Channel, error)
}

// JudolCommentStore persists judol candidates with duplicate-id tolerance.
type JudolCommentStore interface {
	InsertMany(ctx context.Context, comments []models.Comment) error
}

// BatchStore owns the llm_batches lifecycle rows.
type BatchStore interface {
	GetActive(ctx context.Context) (*models.LLMBatch, error)
	Insert(ctx context.Context, id string, inputContent, detail []byte) error
	UpdateDetail(ctx context.Context, id string, detail []byte) error
	MarkCompleted(ctx context.Context, id string) error
	CompleteWithOutput(ctx context.Context, id string, outputContent []byte) error
}

// BlocklistStore applies the invalidate-and-replace generation update.
type BlocklistStore interface {
	ReplaceGenerations(ctx context.Context, kind string, batches [][]string) error
}

// CommentHarvester collects comments for one channel under a page quota.
type CommentHarvester interface {
	Harvest(ctx context.Context, channelID string, quotaPages, pageSize int) []models.Comment
}

// BatchProvider is the remote LLM batch endpoint surface.
type BatchProvider interface {
	UploadFile(ctx context.Context, path, purpose string) (*groq.FileObject, error)
	CreateBatch(ctx context.Context, inputFileID, completionWindow, endpoint string) (*groq.BatchDetail, error)
	GetBatchStatus(ctx context.Context, batchID string) (*groq.BatchDetail, error)
	DownloadFile(ctx context.Context, fileID string) (string, error)
}

// ModerationService drives one moderation batch through its full lifecycle:
// harvest and submit on Collect, poll and commit on Check. Callers must
// serialize each entry point; the single-flight guarantee between runs is
// the active-batch row plus its partial unique index.
type ModerationService struct {
	channels   ChannelStore
	comments   JudolCommentStore
	batches    BatchStore
	blocklists BlocklistStore
	harvester  CommentHarvester
	provider   BatchProvider

	groqCfg     config.GroqConfig
	pipelineCfg config.PipelineConfig
}

type ModerationDeps struct {
	Channels   ChannelStore
	Comments   JudolCommentStore
	Batches    BatchStore
	Blocklists BlocklistStore
	Harvester  CommentHarvester
	Provider   BatchProvider
}

func NewModerationService(deps ModerationDeps, groqCfg config.GroqConfig, pipelineCfg config.PipelineConfig) *ModerationService {
	return &ModerationService{
		channels:    deps.Channels,
		comments:    deps.Comments,
		batches:     deps.Batches,
		blocklists:  deps.Blocklists,
		harvester:   deps.Harvester,
		provider:    deps.Provider,
		groqCfg:     groqCfg,
		pipelineCfg: pipelineCfg,
	}
}

// Collect harvests comments across all monitored channels, filters judol
// candidates and submits one extraction batch to the provider. It is a
// success no-op while a previous batch is still outstanding.
func (s *ModerationService) Collect(ctx context.Context) error {
	active, err := s.batches.GetActive(ctx)
	if err != nil {
		return stageErr("get active batch", err)
	}
	if active != nil {
		// allow one batch at a time to reduce cost
		logger.InfoWithFields("active batch outstanding, skipping collection", logger.Fields{
			"batch_id": active.ID,
		})
		return nil
	}

	channels, err := s.channels.List(ctx)
	if err != nil {
		return stageErr("list monitored channels", err)
	}

	units := quota.Distribute(channels, s.pipelineCfg.QuotaUnits)

	var pool []models.Comment
	for _, ch := range channels {
		collected := s.harvester.Harvest(ctx, ch.ID, units[ch.ID], s.pipelineCfg.PageSize)
		logger.InfoWithFields("harvested channel", logger.Fields{
			"channel_id": ch.ID, "channel_name": ch.Name,
			"quota_pages": units[ch.ID], "comments": len(collected),
		})
		pool = append(pool, collected...)
	}

	var candidates []models.Comment
	for _, c := range pool {
		if detector.ContainsFancyUnicode(c.Text) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		logger.Log.Info("no judol candidates found, no batch needed")
		return nil
	}

	chunks := chunkComments(candidates, s.pipelineCfg.ChunkSize)

	// persist comments and channels first; a failed submission keeps them so
	// a retry does not redo the work
	for _, chunk := range chunks {
		if err := s.comments.InsertMany(ctx, chunk); err != nil {
			return stageErr("persist judol comments", err)
		}
	}

	channelBatches := make([][]string, 0, len(chunks))
	for _, chunk := range chunks {
		urls := make([]string, 0, len(chunk))
		for _, c := range chunk {
			urls = append(urls, c.Channel)
		}
		channelBatches = append(channelBatches, urls)
	}
	if err := s.blocklists.ReplaceGenerations(ctx, models.BlocklistChannels, channelBatches); err != nil {
		return stageErr("persist blocked channels", err)
	}

	requests := make([]any, 0, len(chunks))
	for _, chunk := range chunks {
		texts := make([]string, 0, len(chunk))
		for _, c := range chunk {
			texts = append(texts, c.Text)
		}
		requests = append(requests, groq.NewExtractionRequest(s.groqCfg, texts))
	}

	inputPath := filepath.Join(os.TempDir(), fmt.Sprintf("judol_%s.jsonl", uuid.NewString()))
	if err := groq.WriteJSONL(inputPath, requests); err != nil {
		return stageErr("write batch input file", err)
	}
	// the file only matters until the upload; remove it whether or not the
	// submission goes through
	defer func() {
		if err := os.Remove(inputPath); err != nil {
			logger.WarnWithFields("failed to delete batch input file", logger.Fields{
				"path": inputPath, "error": err.Error(),
			})
		}
	}()

	file, err := s.provider.UploadFile(ctx, inputPath, "batch")
	if err != nil {
		return stageErr("upload batch input file", err)
	}
	batch, err := s.provider.CreateBatch(ctx, file.ID, s.pipelineCfg.CompletionWindow, "")
	if err != nil {
		return stageErr("create batch job", err)
	}

	inputContent, err := json.Marshal(requests)
	if err != nil {
		return stageErr("encode batch input", err)
	}
	if err := s.batches.Insert(ctx, batch.ID, inputContent, batch.Raw); err != nil {
		return stageErr("persist llm batch", err)
	}

	logger.InfoWithFields("batch submitted", logger.Fields{
		"batch_id": batch.ID, "chunks": len(chunks), "candidates": len(candidates),
	})
	return nil
}

// Check polls the outstanding batch, records its latest status and, on
// completion, commits the extracted words as a fresh blocklist generation.
// It is a no-op when no batch is outstanding.
func (s *ModerationService) Check(ctx context.Context) error {
	active, err := s.batches.GetActive(ctx)
	if err != nil {
		return stageErr("get active batch", err)
	}
	if active == nil {
		return nil
	}

	detail, err := s.provider.GetBatchStatus(ctx, active.ID)
	if err != nil {
		return stageErr("check batch status", err)
	}
	if err := s.batches.UpdateDetail(ctx, active.ID, detail.Raw); err != nil {
		return stageErr("persist batch detail", err)
	}

	if models.BatchStatusPending(detail.Status) {
		logger.InfoWithFields("batch still pending", logger.Fields{
			"batch_id": active.ID, "status": detail.Status,
		})
		return nil
	}

	if models.BatchStatusTerminalNoOutput(detail.Status) {
		logger.WarnWithFields("batch ended without output", logger.Fields{
			"batch_id": active.ID, "status": detail.Status,
		})
		if err := s.batches.MarkCompleted(ctx, active.ID); err != nil {
			return stageErr("close batch", err)
		}
		return nil
	}

	// completed: materialize the output. The batch is left open on any
	// failure here so a later poll can retry.
	if detail.OutputFileID == nil || *detail.OutputFileID == "" {
		return stageErr("materialize batch output", fmt.Errorf("completed batch %s has no output_file_id", active.ID))
	}

	outputPath, err := s.provider.DownloadFile(ctx, *detail.OutputFileID)
	if err != nil {
		return stageErr("download batch output", err)
	}

	records, err := groq.ReadJSONL(outputPath)
	if err != nil {
		return stageErr("read batch output", err)
	}

	wordBatches := make([][]string, 0, len(records))
	for _, record := range records {
		words, err := groq.ExtractWords(record)
		if err != nil {
			return stageErr("parse batch output", err)
		}
		wordBatches = append(wordBatches, words)
	}

	if err := s.blocklists.ReplaceGenerations(ctx, models.BlocklistWords, wordBatches); err != nil {
		return stageErr("persist blocked words", err)
	}

	outputContent, err := json.Marshal(records)
	if err != nil {
		return stageErr("encode batch output", err)
	}
	if err := s.batches.CompleteWithOutput(ctx, active.ID, outputContent); err != nil {
		return stageErr("close batch", err)
	}

	if err := os.Remove(outputPath); err != nil {
		logger.WarnWithFields("failed to delete batch output file", logger.Fields{
			"path": outputPath, "error": err.Error(),
		})
	}

	logger.InfoWithFields("batch completed", logger.Fields{
		"batch_id": active.ID, "generations": len(wordBatches),
	})
	return nil
}

// chunkComments splits comments into fixed-size sub-batches, each an
// independent unit of extraction work.
func chunkComments(comments []models.Comment, size int) [][]models.Comment {
	if size <= 0 {
		size = 50
	}
	var chunks [][]models.Comment
	for start := 0; start < len(comments); start += size {
		end := start + size
		if end > len(comments) {
			end = len(comments)
		}
		chunks = append(chunks, comments[start:end])
	}
	return chunks
}
