package history

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/micro-ha/smarthome-dashboard/internal/model"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// exportEntry fixes the field names of the yaml document to the JSON ones.
type exportEntry struct {
	ID        string `yaml:"id"`
	Timestamp string `yaml:"timestamp"`
	UserName  string `yaml:"userName"`
	UserID    string `yaml:"userId"`
	ItemType  string `yaml:"itemType"`
	ItemID    string `yaml:"itemId,omitempty"`
	ItemName  string `yaml:"itemName"`
	Action    string `yaml:"action"`
	Details   string `yaml:"details"`
}

// Export writes the full entry list as indented JSON or as YAML.
func Export(w io.Writer, entries []model.HistoryEntry, format Format) error {
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	switch format {
	case FormatYAML:
		docs := make([]exportEntry, 0, len(entries))
		for _, e := range entries {
			docs = append(docs, exportEntry{
				ID:        e.ID,
				Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
				UserName:  e.UserName,
				UserID:    e.UserID,
				ItemType:  string(e.ItemType),
				ItemID:    e.ItemID,
				ItemName:  e.ItemName,
				Action:    string(e.Action),
				Details:   e.Details,
			})
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// ExportFileName is smart-home-history-<UTC date>.<ext>.
func ExportFileName(now time.Time, format Format) string {
	ext := string(format)
	if ext == "" {
		ext = string(FormatJSON)
	}
	return fmt.Sprintf("smart-home-history-%s.%s", now.UTC().Format("2006-01-02"), ext)
}
