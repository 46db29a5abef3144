package deck

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// settingsSchema constrains imported deck-settings documents. Bounds
// mirror what the engine itself enforces so a bad file fails at import
// instead of producing nonsense schedules.
const settingsSchema = `{
  "type": "object",
  "properties": {
    "newCards": {
      "type": "object",
      "properties": {
        "stepsMinutes": {"type": "array", "items": {"type": "integer", "minimum": 1}},
        "orderNewCards": {"enum": ["due", "random"]},
        "perDay": {"type": "integer", "minimum": 0},
        "graduatingInterval": {"type": "integer", "minimum": 1},
        "easyInterval": {"type": "integer", "minimum": 1},
        "startingEase": {"type": "integer", "minimum": 1300, "maximum": 5000}
      }
    },
    "reviews": {
      "type": "object",
      "properties": {
        "perDay": {"type": "integer", "minimum": 0},
        "intervalModifier": {"type": "number", "exclusiveMinimum": 0},
        "easyBonus": {"type": "number", "minimum": 1},
        "hardInterval": {"type": "number", "minimum": 1},
        "minimumInterval": {"type": "integer", "minimum": 1},
        "maximumInterval": {"type": "integer", "minimum": 1}
      }
    },
    "lapses": {
      "type": "object",
      "properties": {
        "stepsMinutes": {"type": "array", "items": {"type": "integer", "minimum": 1}},
        "newInterval": {"type": "number", "minimum": 0, "maximum": 1},
        "minimumInterval": {"type": "integer", "minimum": 1},
        "leechThreshold": {"type": "integer", "minimum": 0},
        "leechAction": {"enum": ["suspend", "tag"]}
      }
    },
    "advanced": {
      "type": "object",
      "properties": {
        "dayStartsAt": {"type": "integer", "minimum": 0, "maximum": 23},
        "maxAnswerSeconds": {"type": "integer", "minimum": 1}
      }
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(settingsSchema), &parsed); err != nil {
			compileErr = fmt.Errorf("parse settings schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://deck-settings.json", parsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://deck-settings.json")
	})
	return compiledSchema, compileErr
}

// Parse validates raw JSON against the settings schema and decodes it
// on top of the defaults, so partial documents only override the fields
// they name.
func Parse(raw []byte) (Settings, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Settings{}, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiled()
	if err != nil {
		return Settings{}, err
	}
	if err := schema.Validate(parsed); err != nil {
		return Settings{}, fmt.Errorf("settings validation failed: %w", err)
	}

	s := Default()
	if err := json.Unmarshal(raw, &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}
