// Package quizfile parses and validates the JSON files the CLI accepts for
// creating exercises and recording quiz answers.
package quizfile

// exerciseSchema validates the file given to `mediq add`.
var exerciseSchema = &schemaDef{
	name: "exercise-file",
	definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subject_id": map[string]any{
				"type":        "string",
				"description": "Subject the exercise belongs to",
			},
			"title": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"description": map[string]any{
				"type": "string",
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"easy", "medium", "hard"},
			},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":      "string",
							"minLength": 1,
						},
						"options": map[string]any{
							"type":     "array",
							"minItems": 2,
							"items":    map[string]any{"type": "string"},
						},
						"correct_answer": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "Index into options of the correct answer",
						},
						"explanation": map[string]any{
							"type": "string",
						},
					},
					"required":             []any{"question", "options", "correct_answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "questions"},
		"additionalProperties": false,
	},
}

// answersSchema validates the file given to `mediq complete` and
// `mediq review`. Questions are referenced by 1-based position.
var answersSchema = &schemaDef{
	name: "answers-file",
	definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"time_spent_sec": map[string]any{
				"type":    "integer",
				"minimum": 0,
			},
			"answers": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "integer",
							"minimum":     1,
							"description": "1-based question number within the exercise",
						},
						"selected_option": map[string]any{
							"type":    "integer",
							"minimum": 0,
						},
						"time_spent_ms": map[string]any{
							"type":    "integer",
							"minimum": 0,
						},
					},
					"required":             []any{"question", "selected_option"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"answers"},
		"additionalProperties": false,
	},
}
