package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/mini-payment/internal/domain"
)

type FilenameFormat string

const (
	// FilenameLegacy is {day}{month}{year}_{counter}.DAT without padding,
	// e.g. 392025_1.DAT for 3 Sep 2025. Kept for downstream consumers.
	FilenameLegacy FilenameFormat = "legacy"
	// FilenameFixed is {YYYY}{MM}{DD}_{counter}.DAT, e.g. 20250903_1.DAT.
	FilenameFixed FilenameFormat = "fixed"
)

func (f FilenameFormat) IsValid() bool {
	return f == FilenameLegacy || f == FilenameFixed
}

type SnapshotResult struct {
	Path    string
	Counter uint64
	Records int
	Total   decimal.Decimal
}

// Snapshot writes every balance to a new dated file and then zeroes them.
// Balances and the export counter are only touched once the file is in place;
// a failed write leaves the ledger exactly as it was so the call can be retried.
func (s *Store) Snapshot() (SnapshotResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })

	var buf bytes.Buffer
	total := decimal.Zero
	for _, id := range ids {
		credit := s.users[id].Credit()
		fmt.Fprintf(&buf, "%s %s\n", id, domain.FormatAmount(credit))
		total = total.Add(credit)
	}

	// A restarted process starts counting from zero again; a name that is
	// already taken, by us or anyone else, advances the counter instead of
	// replacing the file.
	now := s.now()
	counter := s.exportCounter
	var path string
	for {
		counter++
		path = filepath.Join(s.exportDir, snapshotFilename(now, counter, s.format))
		err := writeFileExclusive(path, buf.Bytes())
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return SnapshotResult{}, fmt.Errorf("Snapshot: %w", &domain.ExportError{Path: path, Err: err})
		}
	}

	s.exportCounter = counter
	for _, u := range s.users {
		u.ResetCredit()
	}

	return SnapshotResult{
		Path:    path,
		Counter: counter,
		Records: len(ids),
		Total:   total,
	}, nil
}

func snapshotFilename(t time.Time, counter uint64, format FilenameFormat) string {
	if format == FilenameFixed {
		return fmt.Sprintf("%s_%d.DAT", t.Format("20060102"), counter)
	}
	return fmt.Sprintf("%d%d%d_%d.DAT", t.Day(), int(t.Month()), t.Year(), counter)
}

// writeFileExclusive writes data to a temp file and links it into place.
// The link fails with fs.ErrExist when path is taken, so an existing file is
// never replaced.
func writeFileExclusive(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if err := os.Link(tmpName, path); err != nil {
		return fmt.Errorf("link: %w", err)
	}
	return nil
}
