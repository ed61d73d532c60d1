// Package loader reads the incident CSV and PDQ boundary GeoJSON datasets.
package loader

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mtlpdq/pdqstats/internal/contract"
	"github.com/mtlpdq/pdqstats/schema"
	"github.com/rs/zerolog/log"
)

// FileLoader reads datasets from the local filesystem.
type FileLoader struct{}

var _ contract.DatasetLoader = &FileLoader{} // Compile-time check

// NewFileLoader creates a new instance of the file loader.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// LoadIncidents parses the incident CSV at path and records its content digest.
func (l *FileLoader) LoadIncidents(ctx context.Context, path string, loc *time.Location) (schema.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return schema.Dataset{}, fmt.Errorf("failed to open incident file: %w", err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	ds, err := ReadIncidents(ctx, io.TeeReader(f, h), loc)
	if err != nil {
		return schema.Dataset{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	ds.Digest = fmt.Sprintf("%x", h.Sum(nil))

	log.Debug().
		Str("path", path).
		Int("rows", ds.Rows).
		Int("malformed", ds.Malformed).
		Msg("Loaded incidents")
	return ds, nil
}

// LoadBoundaries parses the boundary GeoJSON at path.
func (l *FileLoader) LoadBoundaries(ctx context.Context, path string) (schema.GeoFeatureCollection, error) {
	if err := ctx.Err(); err != nil {
		return schema.GeoFeatureCollection{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.GeoFeatureCollection{}, fmt.Errorf("failed to read boundary file: %w", err)
	}
	fc, err := ParseBoundaries(data)
	if err != nil {
		return schema.GeoFeatureCollection{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("features", len(fc.Features)).Msg("Loaded boundaries")
	return fc, nil
}
