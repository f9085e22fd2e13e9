package inventory

import (
	"fmt"
	"os"

	log "github.com/cantara/bragi/sbragi"
	jsoniter "github.com/json-iterator/go"
)

// Non ASCII names and descriptions are written as is.
var json = jsoniter.Config{
	EscapeHTML:    false,
	IndentionStep: 2,
}.Froze()

// Export overwrites path with the records as indented UTF-8 JSON.
func Export(records []Record, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		err = fmt.Errorf("unable to create %s: %w", path, err)
		return
	}
	defer func() {
		cerr := f.Close()
		if err == nil && cerr != nil {
			err = fmt.Errorf("unable to close %s: %w", path, cerr)
		}
	}()
	if records == nil {
		records = []Record{}
	}
	err = json.NewEncoder(f).Encode(records)
	if err != nil {
		err = fmt.Errorf("unable to encode records to %s: %w", path, err)
		return
	}
	log.Trace("exported records", "path", path, "count", len(records))
	return
}

func Load(path string) (records []Record, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("unable to read %s: %w", path, err)
		return
	}
	err = json.Unmarshal(b, &records)
	if err != nil {
		err = fmt.Errorf("unable to decode records from %s: %w", path, err)
		return
	}
	return
}
