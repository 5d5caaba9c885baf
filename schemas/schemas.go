// Package schemas embeds the JSON Schemas used to validate toolclf files.
package schemas

import _ "embed"

// ReportSchemaJSON is the JSON Schema of the training report written by toolclf train.
//
//go:embed report.schema.json
var ReportSchemaJSON string

// ConfigSchemaJSON is the JSON Schema of .toolclf.yaml.
//
//go:embed config.schema.json
var ConfigSchemaJSON string
