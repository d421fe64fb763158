// Package prefs persists the small user settings record. Loading never
// fails: corrupt or stale blobs degrade field-by-field to defaults, and
// saving is best-effort because preferences are not safety-critical.
package prefs

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/nae2121/ISC-onlinejudge/internal/storage"
)

const settingsKey = "playground:settings"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Settings struct {
	Theme            string `json:"theme"`
	Live             bool   `json:"live"`
	FontSize         int    `json:"fontSize"`
	SelectedTargetID *int   `json:"selectedTargetId,omitempty"`
}

func Default() Settings {
	return Settings{Theme: ThemeDark, Live: true, FontSize: 14}
}

type Store struct {
	kv     storage.KV
	logger *zap.Logger
}

func NewStore(kv storage.KV, logger *zap.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// Load merges the stored blob over defaults. A stored field wins only when
// it is present and of the expected type family, so a partially written or
// old-schema blob never poisons the whole record.
func (s *Store) Load(ctx context.Context) Settings {
	settings := Default()

	raw, err := s.kv.Get(ctx, settingsKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("load settings failed, using defaults", zap.Error(err))
		}
		return settings
	}

	if !gjson.ValidBytes(raw) {
		s.logger.Warn("stored settings are not valid JSON, using defaults")
		return settings
	}

	if theme := gjson.GetBytes(raw, "theme"); theme.Type == gjson.String {
		if v := theme.String(); v == ThemeLight || v == ThemeDark {
			settings.Theme = v
		}
	}
	if live := gjson.GetBytes(raw, "live"); live.IsBool() {
		settings.Live = live.Bool()
	}
	if size := gjson.GetBytes(raw, "fontSize"); size.Type == gjson.Number {
		if v := size.Int(); v > 0 && float64(v) == size.Float() {
			settings.FontSize = int(v)
		}
	}
	if target := gjson.GetBytes(raw, "selectedTargetId"); target.Type == gjson.Number {
		if v := target.Int(); v >= 0 && float64(v) == target.Float() {
			id := int(v)
			settings.SelectedTargetID = &id
		}
	}

	return settings
}

// Save swallows errors: a failed write costs the user a preference, not a
// session.
func (s *Store) Save(ctx context.Context, settings Settings) {
	raw, err := json.Marshal(settings)
	if err != nil {
		s.logger.Warn("marshal settings failed", zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, settingsKey, raw); err != nil {
		s.logger.Warn("save settings failed", zap.Error(err))
	}
}
