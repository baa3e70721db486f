// Package schemas embeds the JSON Schemas used to validate mutating
// API payloads.
package schemas

import _ "embed"

//go:embed custom_model.schema.json
var CustomModelSchemaJSON string

//go:embed scenario_set.schema.json
var ScenarioSetSchemaJSON string
