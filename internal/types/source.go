package types

// Source types
const (
	SourceNonfiction = "nonfiction"
	SourceLiterature = "literature"
	SourcePDF        = "pdf"
	SourceGenerated  = "generated"
	SourceUnknown    = "unknown"
)

// SourceText is a provenance-tagged raw passage. It is immutable once loaded.
type SourceText struct {
	SourceType string `json:"source_type"`
	SourcePath string `json:"source_path"`
	Title      string `json:"title"`
	Text       string `json:"text"`
}

// SourceIndexEntry records which source fed a (level, day) slot. ContentID and Type are
// nil when an existing exercise file could not be read back.
type SourceIndexEntry struct {
	Level       string  `json:"level"`
	Day         int     `json:"day"`
	ContentID   *string `json:"contentId"`
	Type        *string `json:"type"`
	SourceType  string  `json:"sourceType"`
	SourcePath  string  `json:"sourcePath"`
	SourceTitle string  `json:"sourceTitle"`
}

// ScheduleEntry assigns one content-type label to a day slot of a level
type ScheduleEntry struct {
	Level string `json:"level"`
	Day   int    `json:"day"`
	Label string `json:"label"`
}
