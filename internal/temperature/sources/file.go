package sources

import (
	"context"
	"fmt"
	"os"

	"github.com/i474232898/temperature-heatmap/internal/temperature"
)

// FileSource implements temperature.Source for a JSON document on disk.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file://" + s.path
}

func (s *FileSource) Load(ctx context.Context) (temperature.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return temperature.Dataset{}, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return temperature.Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := temperature.Decode(f)
	if err != nil {
		return temperature.Dataset{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	return ds, nil
}
