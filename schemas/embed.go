// Package schemas holds the JSON Schemas of the documents pro-resume-mentor reads and writes.
package schemas

import _ "embed"

// Resume is the schema of a ResumeDocument as stored in the saved-resume library.
//
//go:embed resume.schema.json
var Resume string
