// Package seed loads catalogue drafts from gzipped JSON-lines files, locally or
// from S3, and inserts them into an empty products table.
package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"course-market/internal/model"
)

// Loader defines the interface for loading seed files.
type Loader interface {
	// Load reads a gzipped JSON-lines file and returns the drafts in file order.
	Load(ctx context.Context, path string) ([]model.Draft, error)
}

// cancelCheckEvery is how many lines are read between context checks.
const cancelCheckEvery = 1000

// readDrafts decodes one draft per non-blank line of a gzip stream.
func readDrafts(ctx context.Context, r io.Reader) ([]model.Draft, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var drafts []model.Draft
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%cancelCheckEvery == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var d model.Draft
		if err := json.Unmarshal([]byte(line), &d); err != nil {
			return nil, fmt.Errorf("line %d: invalid product draft: %w", lineNo, err)
		}
		drafts = append(drafts, d)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seed data: %w", err)
	}

	return drafts, nil
}
