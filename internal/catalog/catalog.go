package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/questgo/backend/domain"
)

// Catalog is the read-only set of quest tasks loaded once at startup.
// Iteration order is the order keys appear in the source file; checklists
// are rendered in that order.
type Catalog struct {
	defs  map[string]domain.TaskDefinition
	order []string
}

type taskPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Load reads a JSON object {taskID: {title, description}} from path.
// A missing or malformed file is a configuration fault: the process
// cannot start without a catalog.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	// A plain json.Unmarshal into a map would lose key order, which the
	// checklist rendering depends on, so walk the token stream instead.
	dec := json.NewDecoder(f)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parse catalog %s: expected top-level object", path)
	}

	c := &Catalog{defs: make(map[string]domain.TaskDefinition)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("parse catalog %s: non-string task id", path)
		}

		var payload taskPayload
		if err := dec.Decode(&payload); err != nil {
			return nil, fmt.Errorf("parse catalog %s: task %q: %w", path, key, err)
		}
		if payload.Title == "" {
			return nil, fmt.Errorf("parse catalog %s: task %q has no title", path, key)
		}

		if _, exists := c.defs[key]; !exists {
			c.order = append(c.order, key)
		}
		c.defs[key] = domain.TaskDefinition{
			ID:          key,
			Title:       payload.Title,
			Description: payload.Description,
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	if len(c.order) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}
	return c, nil
}

// Get looks up a task by its exact, case-sensitive key.
func (c *Catalog) Get(id string) (domain.TaskDefinition, bool) {
	if c == nil {
		return domain.TaskDefinition{}, false
	}
	def, ok := c.defs[id]
	return def, ok
}

// Tasks returns all definitions in catalog order.
func (c *Catalog) Tasks() []domain.TaskDefinition {
	if c == nil {
		return nil
	}
	out := make([]domain.TaskDefinition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.defs[id])
	}
	return out
}

// Len returns the number of tasks in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}
