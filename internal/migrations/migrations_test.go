package migrations

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSource_VersionsAreSequentialAndReversible(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	require.Equal(t, uint(1), version)

	seen := []uint{version}
	for {
		up, _, err := src.ReadUp(version)
		require.NoError(t, err, "version %d has no up migration", version)
		up.Close()

		down, _, err := src.ReadDown(version)
		require.NoError(t, err, "version %d has no down migration", version)
		down.Close()

		next, err := src.Next(version)
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, fs.ErrNotExist) {
			break
		}
		require.NoError(t, err)
		require.Equal(t, version+1, next)
		version = next
		seen = append(seen, version)
	}

	require.Equal(t, []uint{1, 2, 3}, seen)
}

func TestMigrationFiles_CreateEveryRequiredTable(t *testing.T) {
	var all strings.Builder
	entries, err := fs.Glob(MigrationFiles, "*.up.sql")
	require.NoError(t, err)
	for _, name := range entries {
		f, err := MigrationFiles.Open(name)
		require.NoError(t, err)
		body, err := io.ReadAll(f)
		require.NoError(t, err)
		f.Close()
		all.Write(body)
	}

	for _, table := range []string{"events", "webhooks", "sensors"} {
		require.Contains(t, all.String(), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	// The raw event must round-trip byte for byte.
	require.Contains(t, all.String(), "payload       JSON        NOT NULL")
}
