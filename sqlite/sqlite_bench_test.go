package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkWALMode compares write performance between WAL and rollback
// journal modes while inserting many jobs.
func BenchmarkWALMode(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkJobInserts(b, false)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkJobInserts(b, true)
	})
}

func benchmarkJobInserts(b *testing.B, useWAL bool) {
	b.Helper()

	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())

	ctx := context.Background()
	if useWAL {
		_, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL")
		require.NoError(b, err)
	}

	defer func() {
		db.Close()
		// Clean up WAL files if they exist
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	svc := sqlite.NewJobService(db)

	// Reset timer to exclude setup time
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		job := &pagelens.Job{
			URL:  fmt.Sprintf("https://example.com/post/%d", i),
			Mode: pagelens.ModeArticle,
		}
		if err := svc.CreateJob(ctx, job); err != nil {
			b.Fatal(err)
		}
	}
}
