package groq

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"

	"judol-guard/logger"
)

// WriteJSONL serializes records as one JSON object per line into path.
func WriteJSONL(path string, records []any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadJSONL reads path as one JSON object per line. Malformed lines are
// logged and skipped so a single bad record does not sink the rest.
func ReadJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !json.Valid([]byte(line)) {
			logger.WarnWithFields("skipping malformed JSONL line", logger.Fields{
				"path": path, "line": lineNo,
			})
			continue
		}
		records = append(records, json.RawMessage(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
