// Package store persists habits to disk. Each habit is one JSON file managed
// by diskv; the display order is kept in a small index file next to them.
package store

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/consistency/pkg/habit"
)

// Persistence defines the persistence contract for habits.
type Persistence interface {
	// Load returns every stored habit in display order.
	Load(ctx context.Context) ([]habit.Habit, error)
	Save(h habit.Habit) error
	Delete(id string) error
	SaveOrder(ids []string) error
	Watch(ctx context.Context) (<-chan Event, error)
}

const (
	habitsBucket = "habits"
	orderFile    = ".order.json"
)

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      0, // other processes edit these files
	}), basePath: basePath, warn: os.Stderr}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	warn     io.Writer
}

func (p *persistence) Load(ctx context.Context) ([]habit.Habit, error) {
	byID := make(map[string]habit.Habit)
	for key := range p.d.Keys(ctx.Done()) {
		if !strings.HasPrefix(key, habitsBucket+"-") {
			continue
		}
		h, err := p.read(key)
		if err != nil {
			fmt.Fprintf(p.warn, "%s: %s\n", key, err)
			continue
		}
		byID[h.ID] = h
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	order, err := p.loadOrder()
	if err != nil {
		fmt.Fprintf(p.warn, "store: load order: %v\n", err)
	}
	return ordered(byID, order), nil
}

func (p *persistence) read(key string) (habit.Habit, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return habit.Habit{}, err
	}
	var h habit.Habit
	if err := json.Unmarshal(val, &h); err != nil {
		return habit.Habit{}, err
	}
	if err := h.Validate(); err != nil {
		return habit.Habit{}, err
	}
	return h, nil
}

func (p *persistence) Save(h habit.Habit) error {
	if strings.TrimSpace(h.ID) == "" {
		return errors.New("store: habit id required")
	}
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("store: encode habit %s: %w", h.ID, err)
	}
	if err := p.d.Write(toKey(h.ID), data); err != nil {
		return fmt.Errorf("store: write habit %s: %w", h.ID, err)
	}
	return nil
}

func (p *persistence) Delete(id string) error {
	key := toKey(id)
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase habit %s: %w", id, err)
	}
	return nil
}

func (p *persistence) SaveOrder(ids []string) error {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(p.orderPath(), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("store: write order: %w", err)
	}
	return nil
}

func (p *persistence) orderPath() string {
	return filepath.Join(p.basePath, orderFile)
}

func (p *persistence) loadOrder() ([]string, error) {
	data, err := os.ReadFile(p.orderPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// ordered lists habits following order; habits missing from it come last,
// sorted by numeric id.
func ordered(byID map[string]habit.Habit, order []string) []habit.Habit {
	out := make([]habit.Habit, 0, len(byID))
	seen := make(map[string]bool, len(byID))
	for _, id := range order {
		if h, ok := byID[id]; ok && !seen[id] {
			out = append(out, h)
			seen[id] = true
		}
	}
	var rest []habit.Habit
	for id, h := range byID {
		if !seen[id] {
			rest = append(rest, h)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return lessID(rest[i].ID, rest[j].ID)
	})
	return append(out, rest...)
}

func lessID(a, b string) bool {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return na < nb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `habits-<hex id>`. Hex keeps arbitrary ids out of the path syntax.
func toKey(id string) string {
	return fmt.Sprintf("%s-%s", habitsBucket, hex.EncodeToString([]byte(id)))
}

func fromFileName(name string) (string, bool) {
	b, err := hex.DecodeString(name)
	if err != nil {
		return "", false
	}
	return string(b), true
}
