// Package validation checks mutating API payloads against the embedded
// JSON Schemas.
package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/modelworks/workbench/schemas"
)

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// customModelSchema is the compiled schema for custom-model payloads.
var customModelSchema *jsonschema.Schema

// scenarioSetSchema is the compiled schema for caller-supplied scenario
// sets.
var scenarioSetSchema *jsonschema.Schema

func init() {
	customModelSchema = mustCompileSchema(schemas.CustomModelSchemaJSON, "custom_model.schema.json")
	scenarioSetSchema = mustCompileSchema(schemas.ScenarioSetSchemaJSON, "scenario_set.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateCustomModel validates a decoded custom-model payload.
// Returns one message per violation.
func ValidateCustomModel(payload map[string]any) []string {
	return validateAgainstSchema(customModelSchema, payload)
}

// ValidateScenarioSet validates a decoded scenario list.
func ValidateScenarioSet(scenarios []any) []string {
	return validateAgainstSchema(scenarioSetSchema, scenarios)
}

// ValidateScenarioSetBytes validates raw JSON bytes holding a scenario
// list.
func ValidateScenarioSetBytes(data []byte) []string {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("JSON parse error: %v", err)}
	}
	return validateAgainstSchema(scenarioSetSchema, doc)
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}
