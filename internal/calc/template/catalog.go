package template

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"Airflow/internal/calc/fan"
)

// None is the "no template selected" choice. It is always listed first and
// loads an empty layout.
const None = "None"

//go:embed templates.yaml
var defaultYAML []byte

type fileFormat struct {
	Templates []entry `yaml:"templates"`
}

type entry struct {
	Name string `yaml:"name"`
	Fans []row  `yaml:"fans"`
}

type row struct {
	fan.RawRecord `yaml:",inline"`
	Role          string `yaml:"role"`
}

// Catalog is an immutable set of named layouts. Build it once and share it.
type Catalog struct {
	names   []string
	layouts map[string]fan.Layout
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(defaultYAML)
}

// LoadFile reads an external catalog in the same YAML format as the built-in one.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte) (*Catalog, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing templates YAML: %w", err)
	}
	c := &Catalog{layouts: make(map[string]fan.Layout, len(f.Templates))}
	for i, e := range f.Templates {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("template %d: missing name", i+1)
		}
		if strings.EqualFold(name, None) {
			return nil, fmt.Errorf("template %d: %q is reserved", i+1, None)
		}
		if _, dup := c.layouts[name]; dup {
			return nil, fmt.Errorf("template %q: duplicate name", name)
		}
		l, err := layoutOf(e.Fans)
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", name, err)
		}
		c.names = append(c.names, name)
		c.layouts[name] = l
	}
	return c, nil
}

// layoutOf groups rows by their role tags when every row has one, otherwise by position.
func layoutOf(rows []row) (fan.Layout, error) {
	tagged := 0
	for _, r := range rows {
		if r.Role != "" {
			tagged++
		}
	}
	records := make([]fan.Record, len(rows))
	for i, r := range rows {
		rec, err := r.Record()
		if err != nil {
			return fan.Layout{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		records[i] = rec
	}
	switch tagged {
	case 0:
		return fan.Partition(records), nil
	case len(rows):
	default:
		return fan.Layout{}, fmt.Errorf("%d of %d rows have a role; tag all rows or none", tagged, len(rows))
	}

	l := fan.Partition(nil)
	for i, r := range rows {
		role, err := fan.ParseRole(r.Role)
		if err != nil {
			return fan.Layout{}, fmt.Errorf("row %q: %w", r.Name, err)
		}
		if err := l.SetGroup(role, append(l.Group(role), records[i])); err != nil {
			return fan.Layout{}, err
		}
	}
	return l, nil
}

// Names lists the selectable templates, None first.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.names)+1)
	out = append(out, None)
	return append(out, c.names...)
}

func (c *Catalog) Has(name string) bool {
	_, ok := c.layouts[name]
	return ok
}

// Load returns a private copy of the named layout. Unknown names and None
// yield an empty layout.
func (c *Catalog) Load(name string) fan.Layout {
	l, ok := c.layouts[name]
	if !ok {
		return fan.Partition(nil)
	}
	return l.Clone()
}
