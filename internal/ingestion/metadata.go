package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes one cleaning run over a source file
type Metadata struct {
	SourcePath     string   `json:"source_path,omitempty"`
	Timestamp      string   `json:"timestamp"` // RFC3339 format
	Hash           string   `json:"hash"`      // SHA256 hex digest of the cleaned text
	Stages         []string `json:"stages"`
	RawLength      int      `json:"raw_length"`
	CleanedLength  int      `json:"cleaned_length"`
	Parts          []string `json:"parts,omitempty"` // Multi-part labels, in order
	ExamCutAtChars int      `json:"exam_cut_threshold"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(c *Cleaner, sourcePath, raw, cleaned string) *Metadata {
	return &Metadata{
		SourcePath:     sourcePath,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Hash:           ComputeHash(cleaned),
		Stages:         c.Stages(),
		RawLength:      RuneLen(raw),
		CleanedLength:  RuneLen(cleaned),
		ExamCutAtChars: c.ExamCutThreshold(),
	}
}

// ComputeHash computes SHA256 hash of content and returns hex string
func ComputeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
