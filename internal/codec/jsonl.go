package codec

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todo-go/internal/task"
	"github.com/nibzard/todo-go/internal/utils"
)

//go:embed task.schema.json
var taskSchemaJSON []byte

const taskSchemaURL = "https://github.com/nibzard/todo-go/task.schema.json"

// record is the on-disk shape of one jsonl line.
type record struct {
	IsDone      bool    `json:"is_done"`
	Description string  `json:"description"`
	Priority    *int    `json:"priority"`
	Deadline    *string `json:"deadline"`
}

// JSONLines stores one JSON object per line. Every decoded line is checked
// against the embedded task schema before it is converted.
type JSONLines struct {
	schema *jsonschema.Schema
}

// NewJSONLines compiles the task schema and returns a jsonl serializer.
func NewJSONLines() (*JSONLines, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(taskSchemaURL, bytes.NewReader(taskSchemaJSON)); err != nil {
		return nil, fmt.Errorf("load task schema: %w", err)
	}
	schema, err := compiler.Compile(taskSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile task schema: %w", err)
	}
	return &JSONLines{schema: schema}, nil
}

// Name returns "jsonl".
func (j *JSONLines) Name() string { return FormatJSONL }

// Extension returns ".jsonl".
func (j *JSONLines) Extension() string { return ".jsonl" }

// Header returns "" since jsonl has no header row.
func (j *JSONLines) Header() string { return "" }

// Encode writes one JSON object per task. Line breaks inside descriptions are
// escaped by the encoder, so no single-line check is needed. Invalid UTF-8 is
// rejected since the encoder would replace it with U+FFFD.
func (j *JSONLines) Encode(w io.Writer, tasks []task.Task) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i, tk := range tasks {
		if err := checkUTF8(tk); err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
		rec := record{IsDone: tk.Done, Description: tk.Description}
		if tk.Priority.IsSet() {
			p := int(tk.Priority)
			rec.Priority = &p
		}
		if tk.HasDeadline() {
			d := tk.DeadlineString()
			rec.Deadline = &d
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
	}
	return nil
}

// Decode validates one line against the schema and converts it.
func (j *JSONLines) Decode(line string) (task.Task, error) {
	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return task.Task{}, &MalformedLineError{Reason: "bad json", Err: err}
	}
	if err := j.schema.Validate(raw); err != nil {
		return task.Task{}, &MalformedLineError{Reason: "schema violation", Err: schemaError(err)}
	}

	var rec record
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return task.Task{}, &MalformedLineError{Reason: "bad json", Err: err}
	}

	priority := task.NoneLabel
	if rec.Priority != nil {
		priority = fmt.Sprintf("%d", *rec.Priority)
	}
	deadline := task.NoneLabel
	if rec.Deadline != nil {
		deadline = *rec.Deadline
	}
	return buildTask(rec.IsDone, rec.Description, priority, deadline)
}

// schemaError flattens a schema validation error into its leaf causes.
func schemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	var msgs []string
	collectSchemaErrors(&msgs, ve)
	if len(msgs) == 0 {
		return err
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func collectSchemaErrors(msgs *[]string, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		path := utils.JSONPointerToPath(err.InstanceLocation)
		if path == "" {
			*msgs = append(*msgs, err.Message)
			return
		}
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", path, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(msgs, cause)
	}
}
