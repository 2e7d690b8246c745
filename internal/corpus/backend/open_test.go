package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/pwnedcheck/internal/breach"
	"github.com/iudanet/pwnedcheck/internal/corpus"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	for _, kind := range []string{Bolt, SQLite} {
		t.Run(kind, func(t *testing.T) {
			store, err := Open(ctx, kind, filepath.Join(t.TempDir(), "corpus.db"))
			require.NoError(t, err)
			defer func() {
				assert.NoError(t, store.Close())
			}()

			entries := []breach.Entry{{Suffix: "1E4C9B93F3F0682250B6CF8331B7EE68FD8", Count: 3}}
			require.NoError(t, store.PutRange(ctx, "5BAA6", entries))

			got, err := store.Range(ctx, "5BAA6")
			require.NoError(t, err)
			assert.Equal(t, entries, got)
		})
	}
}

// Оба хранилища одинаково трактуют пустой диапазон
func TestOpen_EmptyRangeConsistent(t *testing.T) {
	ctx := context.Background()
	entries := []breach.Entry{{Suffix: "1E4C9B93F3F0682250B6CF8331B7EE68FD8", Count: 3}}

	tests := []struct {
		name    string
		before  []breach.Entry
		entries []breach.Entry
	}{
		{name: "nil on empty store", entries: nil},
		{name: "empty slice on empty store", entries: []breach.Entry{}},
		{name: "nil replaces existing range", before: entries, entries: nil},
	}

	for _, kind := range []string{Bolt, SQLite} {
		for _, tt := range tests {
			t.Run(kind+"/"+tt.name, func(t *testing.T) {
				store, err := Open(ctx, kind, filepath.Join(t.TempDir(), "corpus.db"))
				require.NoError(t, err)
				defer func() {
					assert.NoError(t, store.Close())
				}()

				if tt.before != nil {
					require.NoError(t, store.PutRange(ctx, "5BAA6", tt.before))
				}
				require.NoError(t, store.PutRange(ctx, "5BAA6", tt.entries))

				_, err = store.Range(ctx, "5BAA6")
				assert.ErrorIs(t, err, corpus.ErrPrefixNotFound)

				stats, err := store.Stats(ctx)
				require.NoError(t, err)
				assert.Equal(t, corpus.Stats{}, stats)
			})
		}
	}
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, "postgres", filepath.Join(t.TempDir(), "corpus.db"))
	assert.ErrorIs(t, err, ErrUnknownBackend)

	_, err = Open(ctx, Bolt, "")
	assert.Error(t, err)
}
