package store

import (
	"database/sql"
	"strconv"
)

// Settings are the user preferences applied to every analysis run.
type Settings struct {
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	PresenceThreshold   float64 `json:"presence_threshold"`
	ExtendedJoints      bool    `json:"extended_joints"`
	MergePolicy         string  `json:"merge_policy"`
	DisplayWidth        int     `json:"display_width"`
	DisplayHeight       int     `json:"display_height"`
}

// SettingsRepository reads and writes user preferences.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get retrieves the stored settings. Keys that have never been saved keep
// the value they carry in defaults, so the zero state of a fresh database
// is the configured default set.
func (r *SettingsRepository) Get(defaults Settings) (Settings, error) {
	rows, err := r.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return defaults, err
	}
	defer rows.Close()

	out := defaults
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return defaults, err
		}

		switch key {
		case "confidence_threshold":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				out.ConfidenceThreshold = f
			}
		case "presence_threshold":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				out.PresenceThreshold = f
			}
		case "extended_joints":
			if b, err := strconv.ParseBool(value); err == nil {
				out.ExtendedJoints = b
			}
		case "merge_policy":
			out.MergePolicy = value
		case "display_width":
			if n, err := strconv.Atoi(value); err == nil {
				out.DisplayWidth = n
			}
		case "display_height":
			if n, err := strconv.Atoi(value); err == nil {
				out.DisplayHeight = n
			}
		}
	}

	return out, rows.Err()
}

// Save upserts all settings in one transaction, so a failure midway never
// leaves a partially updated set.
func (r *SettingsRepository) Save(s Settings) error {
	pairs := []struct {
		key   string
		value string
	}{
		{"confidence_threshold", strconv.FormatFloat(s.ConfidenceThreshold, 'f', -1, 64)},
		{"presence_threshold", strconv.FormatFloat(s.PresenceThreshold, 'f', -1, 64)},
		{"extended_joints", strconv.FormatBool(s.ExtendedJoints)},
		{"merge_policy", s.MergePolicy},
		{"display_width", strconv.Itoa(s.DisplayWidth)},
		{"display_height", strconv.Itoa(s.DisplayHeight)},
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range pairs {
		_, err := tx.Exec(
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			p.key, p.value,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
