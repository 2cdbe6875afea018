package booking

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Preferences is the typed form of the client's free-form preference payload.
type Preferences struct {
	PreferredGenres []string   `json:"preferredGenres,omitempty"`
	MusicStyle      *string    `json:"musicStyle,omitempty"`
	PreferredDJID   *uuid.UUID `json:"preferredDjId,omitempty"`
}

// ParsePreferences decodes a stored payload. Empty input is valid and yields zero preferences.
func ParsePreferences(raw []byte) (Preferences, error) {
	var p Preferences
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return p, nil
	}
	if err := json.Unmarshal([]byte(trimmed), &p); err != nil {
		return Preferences{}, fmt.Errorf("invalid preference payload: %w", err)
	}
	return p.Normalize(), nil
}

// Normalize trims, lower-cases and de-duplicates genres, keeping first-seen order.
func (p Preferences) Normalize() Preferences {
	out := Preferences{PreferredDJID: p.PreferredDJID}
	out.PreferredGenres = NormalizeGenres(p.PreferredGenres)
	if p.MusicStyle != nil {
		style := strings.TrimSpace(*p.MusicStyle)
		if style != "" {
			out.MusicStyle = &style
		}
	}
	return out
}

func (p Preferences) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

func (p Preferences) HasGenres() bool {
	return len(p.PreferredGenres) > 0
}

func (p Preferences) HasPreferredDJ() bool {
	return p.PreferredDJID != nil && *p.PreferredDJID != uuid.Nil
}

func (p Preferences) IsPreferredDJ(djID uuid.UUID) bool {
	return p.HasPreferredDJ() && *p.PreferredDJID == djID
}

// MatchGenres returns the preferred genres the DJ plays, in preference order.
func (p Preferences) MatchGenres(djGenres []string) []string {
	if len(p.PreferredGenres) == 0 || len(djGenres) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(djGenres))
	for _, g := range NormalizeGenres(djGenres) {
		set[g] = struct{}{}
	}
	var matched []string
	for _, g := range p.PreferredGenres {
		if _, ok := set[g]; ok {
			matched = append(matched, g)
		}
	}
	return matched
}

func NormalizeGenres(genres []string) []string {
	if len(genres) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(genres))
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == "" {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
