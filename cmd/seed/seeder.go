// Package main provides the seed command for loading sample plain-text
// documents through the documents system, so each seeded file gets a blob
// and a row exactly as an upload would.
package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/docmatrix/internal/documents"
)

//go:embed samples/*.txt
var samples embed.FS

// Creator is the slice of documents.System the seeder needs.
type Creator interface {
	Create(ctx context.Context, cmd documents.CreateCommand) (*documents.Document, error)
}

// Options controls a seeding run.
type Options struct {
	Owner     uuid.UUID
	IsPrivate bool
}

// sampleFS returns the embedded corpus rooted at samples/.
func sampleFS() fs.FS {
	sub, err := fs.Sub(samples, "samples")
	if err != nil {
		panic(err)
	}
	return sub
}

// listFiles returns the .txt files at the root of fsys in name order.
func listFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read seed directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// seed creates one document per file. It stops at the first failure and
// returns the documents created so far.
func seed(ctx context.Context, docs Creator, fsys fs.FS, opts Options, logger *slog.Logger) ([]*documents.Document, error) {
	names, err := listFiles(fsys)
	if err != nil {
		return nil, err
	}

	created := make([]*documents.Document, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return created, fmt.Errorf("read %s: %w", name, err)
		}

		doc, err := docs.Create(ctx, documents.CreateCommand{
			OwnerID:   opts.Owner,
			Filename:  name,
			IsPrivate: opts.IsPrivate,
			Data:      data,
		})
		if err != nil {
			return created, fmt.Errorf("seed %s: %w", name, err)
		}

		logger.Info("document seeded", "id", doc.ID, "title", doc.Title, "private", doc.IsPrivate)
		created = append(created, doc)
	}
	return created, nil
}
