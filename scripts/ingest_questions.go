package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"interview-coach/internal/config"
	"interview-coach/internal/logger"
	"interview-coach/internal/services"
)

const maxQuestionLen = 400

// Seeds the question bank from the documents under ./question_bank.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Qdrant.URL == "" {
		log.Fatal("QDRANT_URL is not set")
	}

	ctx := context.Background()

	geminiService, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:          cfg.Gemini.APIKey,
		Model:           cfg.Gemini.Model,
		EmbedModel:      cfg.Gemini.EmbedModel,
		MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
	}, log)
	if err != nil {
		log.Fatal("failed to initialize gemini", zap.Error(err))
	}

	bank, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatal("failed to initialize qdrant", zap.Error(err))
	}
	if err := bank.InitCollection(ctx); err != nil {
		log.Fatal("failed to initialize collection", zap.Error(err))
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewQuestionChunker()

	documents := []struct {
		Path   string
		Module services.ModuleType
	}{
		{Path: "./question_bank/hr.pdf", Module: services.ModuleHR},
		{Path: "./question_bank/behavioral.pdf", Module: services.ModuleBehavioral},
		{Path: "./question_bank/technical.pdf", Module: services.ModuleTechnical},
		{Path: "./question_bank/technical.txt", Module: services.ModuleTechnical},
	}

	successCount := 0
	failCount := 0

	for _, doc := range documents {
		docLog := log.With(zap.String("path", doc.Path), zap.String("module", string(doc.Module)))

		if _, err := os.Stat(doc.Path); os.IsNotExist(err) {
			docLog.Warn("file not found, skipping")
			continue
		}

		text, err := readDocument(pdfParser, doc.Path)
		if err != nil {
			docLog.Error("failed to extract text", zap.Error(err))
			failCount++
			continue
		}

		questions := chunker.ChunkQuestions(text, maxQuestionLen)
		docLog.Info("questions extracted", zap.Int("count", len(questions)))

		source := filepath.Base(doc.Path)
		stored := 0
		for i, question := range questions {
			embedding, err := geminiService.GenerateEmbedding(ctx, question)
			if err != nil {
				docLog.Warn("failed to embed question", zap.Int("index", i), zap.Error(err))
				continue
			}

			entry := services.QuestionEntry{Question: question, ModuleType: doc.Module, Source: source}
			if err := bank.Upsert(ctx, entry, embedding); err != nil {
				docLog.Warn("failed to store question", zap.Int("index", i), zap.Error(err))
				continue
			}
			stored++

			if stored%10 == 0 {
				docLog.Info("progress", zap.Int("stored", stored), zap.Int("total", len(questions)))
			}
		}

		docLog.Info("document ingested", zap.Int("stored", stored))
		successCount++
	}

	log.Info("ingestion summary",
		zap.Int("successful", successCount),
		zap.Int("failed", failCount),
	)

	if failCount > 0 {
		os.Exit(1)
	}
}

func readDocument(pdfParser services.PDFParserService, path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		content, err := pdfParser.ExtractTextWithMetaData(path)
		if err != nil {
			return "", err
		}
		return content.Text, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
