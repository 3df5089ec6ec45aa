package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nibzard/todo-go/internal/task"
)

// CSVHeader is the header row written by the csv format.
const CSVHeader = "is_done,description,priority,deadline"

// CSV is the structured comma-separated format with a header row.
type CSV struct{}

// NewCSV returns a csv serializer.
func NewCSV() *CSV {
	return &CSV{}
}

// Name returns "csv".
func (c *CSV) Name() string { return FormatCSV }

// Extension returns ".csv".
func (c *CSV) Extension() string { return ".csv" }

// Header returns CSVHeader.
func (c *CSV) Header() string { return CSVHeader }

// Encode writes the header row followed by one record per task.
func (c *CSV) Encode(w io.Writer, tasks []task.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(CSVHeader, ",")); err != nil {
		return err
	}
	for i, tk := range tasks {
		if err := checkSingleLine(tk); err != nil {
			return fmt.Errorf("task %d: %w", i+1, err)
		}
		record := []string{
			strconv.FormatBool(tk.Done),
			tk.Description,
			priorityField(tk.Priority),
			tk.DeadlineString(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode parses one csv record.
func (c *CSV) Decode(line string) (task.Task, error) {
	r := csv.NewReader(bytes.NewBufferString(line))
	r.FieldsPerRecord = 4
	record, err := r.Read()
	if err != nil {
		return task.Task{}, &MalformedLineError{Reason: "bad csv record", Err: err}
	}

	done, err := strconv.ParseBool(record[0])
	if err != nil {
		return task.Task{}, &MalformedLineError{Reason: "bad is_done value", Err: err}
	}
	return buildTask(done, record[1], record[2], record[3])
}
