//go:build ignore

package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"course-market/internal/model"
)

// Writes data/seed/catalog.jsonl.gz, one product draft per line.
// Run with: go run scripts/generate_sample_catalog.go
func main() {
	dataDir := "data/seed"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	drafts := []model.Draft{
		{
			Name:       "Big 4 Auditor Financial Analyst",
			Price:      300000,
			Image:      "https://picsum.photos/seed/auditor/600/400",
			Desc:       "Mulai transformasi dengan instruktur profesional, harga yang terjangkau, dan kurikulum terbaik",
			Instructor: "Jenna Ortega",
			Role:       "Senior Accountant di Gojek",
			Rating:     "3.5 (86)",
			Avatar:     "/assets/avatar-1.png",
		},
		{
			Name:       "Gapai Karier Impianmu sebagai Seorang UI/UX Designer & Product Manager",
			Price:      300000,
			Image:      "https://picsum.photos/seed/uiux/600/400",
			Instructor: "Jenna Ortega",
			Role:       "Senior Product Designer di WingsGroup",
		},
		{
			Name:  "Belajar Go dari Nol",
			Price: 150000,
			Image: "https://picsum.photos/seed/golang/600/400",
		},
		{
			Name:  "Analisis Data dengan SQL",
			Price: 99500,
			Image: "https://picsum.photos/seed/sql/600/400",
		},
	}

	filePath := filepath.Join(dataDir, "catalog.jsonl.gz")
	if err := createSeedFile(filePath, drafts); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d products\n", filePath, len(drafts))
}

func createSeedFile(filePath string, drafts []model.Draft) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, d := range drafts {
		if err := encoder.Encode(d); err != nil {
			return fmt.Errorf("failed to write draft: %w", err)
		}
	}

	return nil
}
