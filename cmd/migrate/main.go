package main

import (
	"log"
	"os"

	"campus-assist-be/internal/model"
	"campus-assist-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM Migration...")

	// 3. Pre-Migration: extensions GORM AutoMigrate cannot create
	log.Println("Step 1: Setting up extensions...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to install pgcrypto: %v. Continuing...", err)
	}
	if err := database.EnsureVectorExtension(db); err != nil {
		log.Printf("Warn: Failed to install pgvector: %v. Continuing...", err)
	}

	// 4. AutoMigrate all models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.KnowledgeDocument{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.ChatCitation{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Vector index. IVFFlat needs rows to build sensible lists, so this
	// is best-effort on a fresh database.
	log.Println("Step 3: Ensuring vector index...")
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_knowledge_documents_embedding
		ON knowledge_documents USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100);`
	if err := db.Exec(indexSQL).Error; err != nil {
		log.Printf("Warn: Failed to create vector index: %v", err)
	}

	log.Println("✅ Migration complete")
}
