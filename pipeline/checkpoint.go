package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CheckpointManager persists one Record per completed stage as YAML under
// a single directory. File names follow "checkpoint_<stage>.yaml".
type CheckpointManager struct {
	dir string
}

// NewCheckpointManager creates the directory if needed and returns the
// manager.
func NewCheckpointManager(dir string) (*CheckpointManager, error) {
	if dir == "" {
		return nil, errors.New("pipeline: empty checkpoint directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("pipeline: create checkpoint dir: %w", err)
	}

	return &CheckpointManager{dir: dir}, nil
}

// path returns the file name for one stage.
func (m *CheckpointManager) path(s Stage) string {
	return filepath.Join(m.dir, fmt.Sprintf("checkpoint_%s.yaml", s))
}

// Save writes the record under its stage name, replacing any previous
// checkpoint of the same stage.
func (m *CheckpointManager) Save(rec Record) error {
	if _, err := stageIndex(rec.Stage); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownStage, rec.Stage)
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("pipeline: marshal checkpoint %s: %w", rec.Stage, err)
	}
	if err = os.WriteFile(m.path(rec.Stage), data, 0o644); err != nil {
		return fmt.Errorf("pipeline: write checkpoint %s: %w", rec.Stage, err)
	}

	return nil
}

// Load reads the record saved for one stage.
//
// Errors: ErrUnknownStage, ErrNoCheckpoint.
func (m *CheckpointManager) Load(s Stage) (Record, error) {
	if _, err := stageIndex(s); err != nil {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownStage, s)
	}

	data, err := os.ReadFile(m.path(s))
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, fmt.Errorf("%w: %s", ErrNoCheckpoint, s)
		}

		return Record{}, fmt.Errorf("pipeline: read checkpoint %s: %w", s, err)
	}

	var rec Record
	if err = yaml.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("pipeline: decode checkpoint %s: %w", s, err)
	}

	return rec, nil
}

// Exists reports whether a checkpoint is present for the stage.
func (m *CheckpointManager) Exists(s Stage) bool {
	_, err := os.Stat(m.path(s))

	return err == nil
}

// List returns the stages with a saved checkpoint, in execution order.
func (m *CheckpointManager) List() []Stage {
	var out []Stage
	for _, s := range Stages {
		if m.Exists(s) {
			out = append(out, s)
		}
	}

	return out
}

// Latest returns the furthest completed stage on disk.
//
// Errors: ErrNoCheckpoint when the directory holds none.
func (m *CheckpointManager) Latest() (Stage, error) {
	saved := m.List()
	if len(saved) == 0 {
		return "", ErrNoCheckpoint
	}

	return saved[len(saved)-1], nil
}

// Remove deletes a single stage's checkpoint. Removing an absent one is
// a no-op.
func (m *CheckpointManager) Remove(s Stage) error {
	if _, err := stageIndex(s); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownStage, s)
	}
	if err := os.Remove(m.path(s)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("pipeline: remove checkpoint %s: %w", s, err)
	}

	return nil
}

// Clear removes every checkpoint file, leaving the directory in place.
func (m *CheckpointManager) Clear() error {
	for _, s := range Stages {
		if err := os.Remove(m.path(s)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("pipeline: remove checkpoint %s: %w", s, err)
		}
	}

	return nil
}
