// Package localstate persists the gateway's only durable local data: the
// per-device daily attendance lock and the last-used login name. Everything
// else lives in the external spreadsheet. State is one small JSON file per
// device under a state directory, so it survives restarts and needs no
// database.
package localstate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/devicelock"
)

type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Get implements devicelock.Store. Missing, corrupt or unreadable state fails
// open: the device counts as unlocked, with a warning in the log. A stored
// record for a different calendar day also counts as unlocked, which is how
// the lock resets at midnight.
func (s *Store) Get(ctx context.Context, deviceID string, date string) (devicelock.State, error) {
	unlocked := devicelock.State{Date: date}

	data, err := os.ReadFile(s.lockPath(deviceID))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("device lock state unreadable, treating as unlocked", "device", deviceID, "error", err)
		}
		return unlocked, nil
	}

	var state devicelock.State
	if err := json.Unmarshal(data, &state); err != nil {
		slog.Warn("device lock state corrupt, treating as unlocked", "device", deviceID, "error", err)
		return unlocked, nil
	}

	if state.Date != date {
		return unlocked, nil
	}
	return state, nil
}

// Mark implements devicelock.Store. Marking for a new calendar day discards
// any previous day's flags.
func (s *Store) Mark(ctx context.Context, deviceID string, date string, kind devicelock.Kind) error {
	state, err := s.Get(ctx, deviceID, date)
	if err != nil {
		return err
	}

	switch kind {
	case devicelock.KindIn:
		state.CheckedIn = true
	case devicelock.KindOut:
		state.CheckedOut = true
	default:
		return fmt.Errorf("unknown lock kind %q", kind)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode device lock state: %w", err)
	}
	if err := os.WriteFile(s.lockPath(deviceID), data, 0644); err != nil {
		return fmt.Errorf("write device lock state: %w", err)
	}
	return nil
}

type lastUserFile struct {
	Username string `json:"username"`
}

// LastUsername returns the device's remembered login name, "" when none.
// Corrupt state fails open here too: forgetting a username is harmless.
func (s *Store) LastUsername(ctx context.Context, deviceID string) (string, error) {
	data, err := os.ReadFile(s.userPath(deviceID))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("last-username state unreadable", "device", deviceID, "error", err)
		}
		return "", nil
	}
	var f lastUserFile
	if err := json.Unmarshal(data, &f); err != nil {
		slog.Warn("last-username state corrupt", "device", deviceID, "error", err)
		return "", nil
	}
	return f.Username, nil
}

func (s *Store) RememberUsername(ctx context.Context, deviceID string, username string) error {
	data, err := json.Marshal(lastUserFile{Username: username})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.userPath(deviceID), data, 0644); err != nil {
		return fmt.Errorf("write last-username state: %w", err)
	}
	return nil
}

// Device ids come from a client header; anything outside a safe charset is
// flattened before it can touch a file path.
var unsafeIDRegex = regexp.MustCompile(`[^A-Za-z0-9._-]`)

func sanitizeID(deviceID string) string {
	id := unsafeIDRegex.ReplaceAllString(deviceID, "_")
	if id == "" {
		id = "unknown"
	}
	return id
}

func (s *Store) lockPath(deviceID string) string {
	return filepath.Join(s.dir, "lock_"+sanitizeID(deviceID)+".json")
}

func (s *Store) userPath(deviceID string) string {
	return filepath.Join(s.dir, "user_"+sanitizeID(deviceID)+".json")
}
