package comlink

import (
	"encoding/json"
	"fmt"
)

// Metadata is the subset of /metadata the tooling here acts on.
type Metadata struct {
	LatestGamedataVersion           string `json:"latestGamedataVersion"`
	LatestLocalizationBundleVersion string `json:"latestLocalizationBundleVersion"`
	ServerVersion                   string `json:"serverVersion,omitempty"`
}

// DecodeMetadata extracts Metadata from a raw /metadata response.
func DecodeMetadata(raw json.RawMessage) (Metadata, error) {
	var md Metadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return Metadata{}, fmt.Errorf("decode metadata: %w", err)
	}
	return md, nil
}
