package badger

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/applytrack/internal/interfaces"
	"github.com/ternarybob/applytrack/internal/models"
	"github.com/ternarybob/arbor"
	"gopkg.in/yaml.v3"
)

// seedValidate applies the same field rules as records added through the tracker
var seedValidate = validator.New()

// seedNamespace scopes the name-based ids given to seed records without an explicit id
var seedNamespace = uuid.MustParse("6f1c2c1e-8d3a-4a55-9a57-3f4b8a0c2d11")

// RecordFile is the layout of a seed file.
// TOML:
//
//	[[records]]
//	job_name = "Backend Engineer"
//	company_name = "Acme"
//
// YAML:
//
//	records:
//	  - job_name: Backend Engineer
//	    company_name: Acme
type RecordFile struct {
	Records []SeedRecord `toml:"records" yaml:"records"`
}

// SeedRecord is one record in a seed file. ID is optional.
type SeedRecord struct {
	ID                  string `toml:"id" yaml:"id"`
	models.RecordFields `yaml:",inline"`
}

// LoadRecordsFromFiles imports records from every .toml, .yaml and .yml file in dirPath.
// Records already present are left untouched so user edits survive a re-seed.
// Returns the number of records inserted.
func LoadRecordsFromFiles(ctx context.Context, storage interfaces.RecordStorage, dirPath string, logger arbor.ILogger) (int, error) {
	if dirPath == "" {
		return 0, nil
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug().Str("dir", dirPath).Msg("Seed directory not found, skipping")
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read seed directory %s: %w", dirPath, err)
	}

	loadedCount := 0
	skippedCount := 0
	errorCount := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".toml" && ext != ".yaml" && ext != ".yml" {
			continue
		}

		filePath := filepath.Join(dirPath, entry.Name())
		file, err := parseRecordFile(filePath, ext)
		if err != nil {
			logger.Warn().Err(err).Str("file", filePath).Msg("Failed to parse seed file")
			errorCount++
			continue
		}

		for _, seed := range file.Records {
			inserted, err := storeSeedRecord(ctx, storage, seed)
			if err != nil {
				logger.Error().Err(err).Str("file", entry.Name()).Str("job_name", seed.JobName).Msg("Failed to store seed record")
				errorCount++
				continue
			}
			if inserted {
				loadedCount++
			} else {
				skippedCount++
			}
		}
	}

	logger.Info().
		Int("loaded", loadedCount).
		Int("skipped", skippedCount).
		Int("errors", errorCount).
		Str("dir", dirPath).
		Msg("Finished loading seed records")

	return loadedCount, nil
}

func parseRecordFile(filePath, ext string) (*RecordFile, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var file RecordFile
	if ext == ".toml" {
		err = toml.Unmarshal(content, &file)
	} else {
		err = yaml.Unmarshal(content, &file)
	}
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func storeSeedRecord(ctx context.Context, storage interfaces.RecordStorage, seed SeedRecord) (bool, error) {
	seed.Normalize()
	if err := seedValidate.Struct(seed.RecordFields); err != nil {
		return false, fmt.Errorf("invalid seed record: %w", err)
	}

	id := strings.TrimSpace(seed.ID)
	if id == "" {
		id = uuid.NewSHA1(seedNamespace, []byte(strings.ToLower(seed.JobName+"|"+seed.CompanyName))).String()
	}

	if _, err := storage.Get(ctx, id); err == nil {
		return false, nil
	} else if !errors.Is(err, interfaces.ErrRecordNotFound) {
		return false, err
	}

	record := models.NewJobRecord(id, seed.RecordFields, models.FormatTimestamp(time.Now()))
	if err := storage.Put(ctx, id, record); err != nil {
		return false, err
	}
	return true, nil
}
