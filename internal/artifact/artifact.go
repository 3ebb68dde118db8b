package artifact

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vvka-141/csvload/internal/checksum"
	"github.com/vvka-141/csvload/pkg/csvload"
)

// ErrArtifactChanged indicates the file read back differs from the one written.
var ErrArtifactChanged = errors.New("intermediate file changed between stages")

// Artifact is one transient file owned by a pipeline run.
type Artifact struct {
	store   Store
	name    string
	keep    bool
	written bool
	sum     string
	calc    checksum.Calculator
}

// New returns an artifact named name in store. When keep is true, Discard
// leaves the file in place.
func New(store Store, name string, keep bool) *Artifact {
	return &Artifact{store: store, name: name, keep: keep, calc: checksum.New()}
}

// Path returns where the artifact lives.
func (a *Artifact) Path() string {
	return a.store.Path(a.name)
}

// Write stores data.
func (a *Artifact) Write(data []byte) error {
	if err := a.store.WriteFile(a.name, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", a.Path(), err)
	}
	a.written = true
	a.sum = a.calc.Calculate(data)
	return nil
}

// Read returns the stored content, or an error wrapping
// csvload.ErrArtifactMissing when the file is gone. Content that no longer
// matches what Write stored yields ErrArtifactChanged.
func (a *Artifact) Read() ([]byte, error) {
	ok, err := a.store.Exists(a.name)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", a.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", a.Path(), csvload.ErrArtifactMissing)
	}

	data, err := a.store.ReadFile(a.name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", a.Path(), err)
	}
	if a.sum != "" && !checksum.Matches(a.calc, data, a.sum) {
		return nil, fmt.Errorf("%s: %w", a.Path(), ErrArtifactChanged)
	}
	return data, nil
}

// WriteRows stores rows as an indented JSON array.
func (a *Artifact) WriteRows(rows []*csvload.Row) error {
	if rows == nil {
		rows = []*csvload.Row{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode rows: %w", err)
	}
	return a.Write(data)
}

// ReadRows loads rows written by WriteRows.
func (a *Artifact) ReadRows() ([]*csvload.Row, error) {
	data, err := a.Read()
	if err != nil {
		return nil, err
	}

	var rows []*csvload.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", a.Path(), err)
	}
	return rows, nil
}

// Discard removes the file if this run wrote it and keep is false.
// A failed removal is reported as a warning only.
func (a *Artifact) Discard(logger csvload.Logger) {
	if !a.written {
		return
	}
	if a.keep {
		logger.Info("Keeping %s", a.Path())
		return
	}
	if err := a.store.Remove(a.name); err != nil {
		logger.Warn("Failed to remove %s: %v", a.Path(), err)
		return
	}
	a.written = false
	logger.Verbose("Removed %s", a.Path())
}
