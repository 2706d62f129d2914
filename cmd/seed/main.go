package main

import (
	"context"
	"log"
	"strings"
	"time"

	"campus-assist-be/internal/config"
	"campus-assist-be/internal/entity"
	"campus-assist-be/internal/repository/implementation"
	"campus-assist-be/pkg/database"
	"campus-assist-be/pkg/embedding"

	"github.com/google/uuid"
)

type seedDocument struct {
	Title    string
	Category entity.Category
	Source   string
	Tags     []string
	Content  string
}

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}
	if err := database.EnsureVectorExtension(db); err != nil {
		log.Fatalf("Error: pgvector extension unavailable: %v", err)
	}

	var provider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else if cfg.Keys.Gemini != "" {
		provider = embedding.NewGeminiProvider(cfg.Keys.Gemini)
	}
	if provider == nil {
		log.Println("Warn: No embedding provider configured; documents will rely on keyword search until re-saved")
	}

	repo := implementation.NewKnowledgeRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	existing, err := repo.FindAll(ctx)
	if err != nil {
		log.Fatalf("Error: Failed to query documents: %v", err)
	}
	existingTitles := make(map[string]bool, len(existing))
	for _, e := range existing {
		existingTitles[e.Title] = true
	}

	seeded := 0
	for _, doc := range campusDocuments() {
		if existingTitles[doc.Title] {
			log.Printf("Skip: %q already seeded", doc.Title)
			continue
		}

		record := entity.KnowledgeDocument{
			Id:        uuid.New(),
			Title:     doc.Title,
			Content:   strings.TrimSpace(doc.Content),
			Category:  doc.Category,
			Tags:      doc.Tags,
			Source:    doc.Source,
			IsActive:  true,
			CreatedAt: time.Now(),
		}

		if provider != nil {
			text := record.Title + "\n\n" + record.Content
			vector, err := provider.Embed(ctx, text, embedding.TaskRetrievalDocument)
			if err != nil {
				log.Printf("Warn: Embedding failed for %q: %v", doc.Title, err)
			} else {
				record.Embedding = vector
			}
		}

		if err := repo.Create(ctx, &record); err != nil {
			log.Fatalf("Error: Failed to create %q: %v", doc.Title, err)
		}
		log.Printf("Seeded: %q [%s]", doc.Title, doc.Category)
		seeded++
	}

	log.Printf("✅ Seeding complete: %d new documents", seeded)
}
