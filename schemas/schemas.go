// Package schemas embeds the JSON Schemas of the files the compiler writes.
package schemas

import "embed"

// Schema file names
const (
	DailyReading = "daily_reading.schema.json"
	SourceIndex  = "source_index.schema.json"
)

//go:embed *.schema.json
var FS embed.FS
