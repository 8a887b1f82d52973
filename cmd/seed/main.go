package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/JaimeStill/docmatrix/internal/config"
	"github.com/JaimeStill/docmatrix/internal/documents"
	"github.com/JaimeStill/docmatrix/internal/infrastructure"
)

func main() {
	var (
		owner   = flag.String("owner", "", "Owner user id (UUID) for the seeded documents")
		dir     = flag.String("dir", "", "Directory of .txt files (overrides the embedded samples)")
		private = flag.Bool("private", false, "Seed documents as private")
		list    = flag.Bool("list", false, "List the files that would be seeded")
	)
	flag.Parse()

	var fsys fs.FS = sampleFS()
	if *dir != "" {
		fsys = os.DirFS(*dir)
	}

	if *list {
		names, err := listFiles(fsys)
		if err != nil {
			log.Fatal(err)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	ownerID, err := uuid.Parse(*owner)
	if err != nil || ownerID == uuid.Nil {
		log.Fatalf("a valid -owner UUID is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}
	if err := cfg.Finalize(); err != nil {
		log.Fatal("config finalize failed:", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatal("infrastructure init failed:", err)
	}
	db := infra.Database.Connection()
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	docs := documents.New(db, infra.Storage, infra.Logger, cfg.API.Pagination)
	created, err := seed(ctx, docs, fsys, Options{Owner: ownerID, IsPrivate: *private}, infra.Logger)
	if err != nil {
		log.Fatalf("seeding failed after %d documents: %v", len(created), err)
	}

	fmt.Printf("%d documents seeded\n", len(created))
}
