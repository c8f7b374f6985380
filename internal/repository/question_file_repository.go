package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/stemsi/exstem-engine/internal/model"
	"gopkg.in/yaml.v3"
)

// QuestionFileRepository loads question sets from YAML or JSON files.
// References are paths, resolved against baseDir when relative.
type QuestionFileRepository struct {
	baseDir string
}

// NewQuestionFileRepository creates a new QuestionFileRepository.
func NewQuestionFileRepository(baseDir string) *QuestionFileRepository {
	return &QuestionFileRepository{baseDir: baseDir}
}

// GetQuestionSet reads and decodes the file at ref. The format follows the
// extension: .yaml, .yml or .json. A set without an ID takes the file name.
func (r *QuestionFileRepository) GetQuestionSet(ctx context.Context, ref string) (*model.QuestionSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := ref
	if !filepath.IsAbs(path) && r.baseDir != "" {
		path = filepath.Join(r.baseDir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", path, ErrQuestionSetNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	set, err := DecodeQuestionSet(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if set.ID == "" {
		set.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return set, nil
}

// DecodeQuestionSet decodes a question set in the format named by ext.
func DecodeQuestionSet(r io.Reader, ext string) (*model.QuestionSet, error) {
	set := &model.QuestionSet{}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(r).Decode(set); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuestionSet, err)
		}
	case ".json":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(set); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuestionSet, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidQuestionSet, ext)
	}

	if len(set.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrInvalidQuestionSet)
	}
	return set, nil
}
