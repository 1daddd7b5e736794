package dictionary

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/robalobadob/hangman/apps/go-server/assets"
	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

var _ words.Source = (*Store)(nil)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(context.Background(), filepath.Join(t.TempDir(), "data", "words.db"))
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestImportAndQuery(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	added, err := s.Import(ctx, []string{"cat", "dog", "cat", "horse", "über", ""})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if added != 4 {
		t.Fatalf("added = %d, want 4", added)
	}

	added, err = s.Import(ctx, []string{"dog", "cow"})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if added != 1 {
		t.Fatalf("second import added = %d, want 1", added)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 5 {
		t.Fatalf("Count() = %d, want 5", n)
	}

	got, err := s.WordsOfLength(ctx, 3)
	if err != nil {
		t.Fatalf("WordsOfLength() error = %v", err)
	}
	if want := []string{"cat", "cow", "dog"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got = %v, want %v", got, want)
	}

	four, err := s.WordsOfLength(ctx, 4)
	if err != nil {
		t.Fatalf("WordsOfLength() error = %v", err)
	}
	if want := []string{"über"}; !reflect.DeepEqual(four, want) {
		t.Fatalf("got = %v, want %v", four, want)
	}

	lengths, err := s.Lengths(ctx)
	if err != nil {
		t.Fatalf("Lengths() error = %v", err)
	}
	if want := map[int]int{3: 3, 4: 1, 5: 1}; !reflect.DeepEqual(lengths, want) {
		t.Fatalf("got = %v, want %v", lengths, want)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := Migrate(ctx, s.db, assets.Migrations()); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
	var applied int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM _migrations`).Scan(&applied); err != nil {
		t.Fatal(err)
	}
	if applied != 1 {
		t.Fatalf("applied = %d, want 1", applied)
	}
}
