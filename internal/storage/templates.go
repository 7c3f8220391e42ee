package storage

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/tidwall/gjson"

	"gamemaster/internal"
)

var (
	ErrInvalidJSON = errors.New("game master is not valid JSON")
	ErrNotArray    = errors.New("game master root is not an array")
)

// TemplateStore is the read-only, ordered sequence of templates of one
// game master dump.
type TemplateStore struct {
	templates []internal.Template
}

func NewTemplateStore(templates []internal.Template) *TemplateStore {
	return &TemplateStore{templates: slices.Clone(templates)}
}

func Open(path string) (*TemplateStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	store, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// Parse reads a JSON array of {"templateId": ..., "data": {...}} records.
// Records without an object "data" keep a nil Data map.
func Parse(raw []byte) (*TemplateStore, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(raw)
	if !root.IsArray() {
		return nil, ErrNotArray
	}

	templates := make([]internal.Template, 0, int(root.Get("#").Int()))
	root.ForEach(func(_, record gjson.Result) bool {
		tpl := internal.Template{TemplateID: record.Get("templateId").String()}
		if data := record.Get("data"); data.IsObject() {
			tpl.Data, _ = data.Value().(map[string]any)
		}
		templates = append(templates, tpl)
		return true
	})

	return &TemplateStore{templates: templates}, nil
}

func (s *TemplateStore) Len() int {
	return len(s.templates)
}

// Templates returns the records in source order. The slice is a copy; the
// nested Data maps are shared and must not be modified.
func (s *TemplateStore) Templates() []internal.Template {
	return slices.Clone(s.templates)
}
