package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-viper/mapstructure/v2"
)

// ErrModelNotFound is returned when a model key does not match any
// catalog entry.
var ErrModelNotFound = errors.New("model not found")

// userData is the on-disk shape of the custom-model file.
type userData struct {
	CustomModels   map[string]map[string]any `json:"custom_models"`
	SelectedModels []string                  `json:"selected_models"`
}

// Store merges the built-in catalog with user-added custom models
// persisted as JSON. All access goes through a mutex; engine components
// never hold a reference to the store, only to resolved []Model slices.
type Store struct {
	path string

	mu sync.Mutex
}

// NewStore creates a Store backed by the given file path. The file does
// not need to exist; it is created on the first mutation.
func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) load() (*userData, error) {
	data := &userData{
		CustomModels:   map[string]map[string]any{},
		SelectedModels: nil,
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	if data.CustomModels == nil {
		data.CustomModels = map[string]map[string]any{}
	}
	return data, nil
}

func (s *Store) save(data *userData) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating catalog dir: %w", err)
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("writing catalog file: %w", err)
	}
	return nil
}

// decodeCustom maps a loosely-typed custom-model payload onto a Model,
// filling the same fallbacks the web form relies on.
func decodeCustom(key string, raw map[string]any) Model {
	m := Model{
		Key:               key,
		Name:              key,
		Provider:          "Custom",
		SpeedMS:           500,
		QualityScore:      0.8,
		HallucinationRate: 0.05,
		ContextWindow:     16000,
		BestFor:           "Custom use case",
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &m,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err == nil {
		_ = dec.Decode(raw) // malformed fields keep their fallback values
	}
	m.Key = key
	if m.Name == "" {
		m.Name = key
	}
	return m
}

// Resolve returns the merged catalog (built-ins in display order, then
// custom models sorted by key) and the selected key subset. An empty or
// fully invalid selection falls back to the built-in keys.
func (s *Store) Resolve() ([]Model, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, nil, err
	}
	models, selected := merge(data)
	return models, selected, nil
}

func merge(data *userData) ([]Model, []string) {
	models := Builtins()
	customKeys := make([]string, 0, len(data.CustomModels))
	for k := range data.CustomModels {
		customKeys = append(customKeys, k)
	}
	sort.Strings(customKeys)
	for _, k := range customKeys {
		models = append(models, decodeCustom(k, data.CustomModels[k]))
	}

	known := make(map[string]bool, len(models))
	for _, m := range models {
		known[m.Key] = true
	}
	var selected []string
	for _, k := range data.SelectedModels {
		if known[k] {
			selected = append(selected, k)
		}
	}
	if len(selected) == 0 {
		selected = BuiltinKeys()
	}
	return models, selected
}

// Get returns the model for key, or ErrModelNotFound.
func (s *Store) Get(key string) (Model, error) {
	models, _, err := s.Resolve()
	if err != nil {
		return Model{}, err
	}
	for _, m := range models {
		if m.Key == key {
			return m, nil
		}
	}
	return Model{}, fmt.Errorf("%q: %w", key, ErrModelNotFound)
}

// Pick resolves the requested keys against the catalog, preserving
// request order and dropping unknown keys. An empty request resolves to
// the selected subset.
func (s *Store) Pick(requested []string) ([]Model, error) {
	models, selected, err := s.Resolve()
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]Model, len(models))
	for _, m := range models {
		byKey[m.Key] = m
	}
	keys := requested
	if len(keys) == 0 {
		keys = selected
	}
	var out []Model
	for _, k := range keys {
		if m, ok := byKey[k]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// SetSelected persists the selected-model subset, filtering out unknown
// keys. An empty result falls back to the built-in keys.
func (s *Store) SetSelected(keys []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool)
	for _, m := range Builtins() {
		known[m.Key] = true
	}
	for k := range data.CustomModels {
		known[k] = true
	}
	var selected []string
	for _, k := range keys {
		if known[k] {
			selected = append(selected, k)
		}
	}
	if len(selected) == 0 {
		selected = BuiltinKeys()
	}
	data.SelectedModels = selected
	if err := s.save(data); err != nil {
		return nil, err
	}
	return selected, nil
}

// AddCustom persists a custom model from a loosely-typed payload. The
// key is slugged from the payload key or name and uniquified against
// every existing key. The new model is appended to the selection.
// Returns the assigned key.
func (s *Store) AddCustom(payload map[string]any) (string, error) {
	name, _ := payload["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("model name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return "", err
	}

	rawKey, _ := payload["key"].(string)
	if rawKey == "" {
		rawKey = name
	}
	base := Slugify(rawKey)
	key := base
	for suffix := 2; s.keyTaken(data, key); suffix++ {
		key = fmt.Sprintf("%s_%d", base, suffix)
	}

	data.CustomModels[key] = payload
	if len(data.SelectedModels) == 0 {
		data.SelectedModels = BuiltinKeys()
	}
	data.SelectedModels = append(data.SelectedModels, key)

	if err := s.save(data); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Store) keyTaken(data *userData, key string) bool {
	if _, ok := builtins[key]; ok {
		return true
	}
	_, ok := data.CustomModels[key]
	return ok
}

// Slugify lowercases a value and squashes every non-alphanumeric run to
// a single underscore.
func Slugify(value string) string {
	var b strings.Builder
	for _, ch := range strings.TrimSpace(value) {
		switch {
		case ch >= 'a' && ch <= 'z' || ch >= '0' && ch <= '9':
			b.WriteRune(ch)
		case ch >= 'A' && ch <= 'Z':
			b.WriteRune(ch + ('a' - 'A'))
		default:
			b.WriteRune('_')
		}
	}
	slug := b.String()
	for strings.Contains(slug, "__") {
		slug = strings.ReplaceAll(slug, "__", "_")
	}
	slug = strings.Trim(slug, "_")
	if slug == "" {
		return "custom_model"
	}
	return slug
}
