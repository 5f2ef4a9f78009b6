package alcohol

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"accident-risk-api/risk"
)

//go:embed data/drinks.yaml
var defaultTable []byte

type fileFormat struct {
	Version string `yaml:"version"`
	Limits  struct {
		Private            string `yaml:"private"`
		Commercial         string `yaml:"commercial"`
		EliminationPerHour string `yaml:"elimination_per_hour"`
	} `yaml:"limits"`
	Entries []struct {
		Key         string `yaml:"key"`
		Level       string `yaml:"level"`
		PerMille    string `yaml:"per_mille"`
		Description string `yaml:"description"`
	} `yaml:"entries"`
	Ladders []struct {
		Names []string `yaml:"names"`
		Rungs []string `yaml:"rungs"`
	} `yaml:"ladders"`
}

// Entry is one row of the drink table.
type Entry struct {
	Key         string
	Level       risk.AlcoholLevel
	PerMille    decimal.Decimal
	Description string
}

// Limits are the legal per-mille thresholds. A driver is within a limit
// when the estimate is strictly below it.
type Limits struct {
	Private            decimal.Decimal `json:"private"`
	Commercial         decimal.Decimal `json:"commercial"`
	EliminationPerHour decimal.Decimal `json:"elimination_per_hour"`
}

// Table is an immutable drink lookup table. It is safe for concurrent use.
type Table struct {
	version string
	limits  Limits
	entries []Entry
	index   map[string]int

	ladders map[string][]string
	pattern *regexp.Regexp
}

// LoadDefault parses the table compiled into the binary.
func LoadDefault() (*Table, error) {
	return Parse(defaultTable)
}

// Parse builds a table from its YAML form.
func Parse(data []byte) (*Table, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode alcohol table: %w", err)
	}
	if f.Version == "" {
		return nil, fmt.Errorf("alcohol table: missing version")
	}

	t := &Table{
		version: f.Version,
		index:   make(map[string]int, len(f.Entries)),
		ladders: make(map[string][]string),
	}

	var err error
	if t.limits.Private, err = parseDecimal("limits.private", f.Limits.Private); err != nil {
		return nil, err
	}
	if t.limits.Commercial, err = parseDecimal("limits.commercial", f.Limits.Commercial); err != nil {
		return nil, err
	}
	if t.limits.EliminationPerHour, err = parseDecimal("limits.elimination_per_hour", f.Limits.EliminationPerHour); err != nil {
		return nil, err
	}
	if !t.limits.EliminationPerHour.IsPositive() {
		return nil, fmt.Errorf("alcohol table: elimination rate must be positive")
	}

	for _, e := range f.Entries {
		key := normalize(e.Key)
		if key == "" {
			return nil, fmt.Errorf("alcohol table: empty key")
		}
		if _, dup := t.index[key]; dup {
			return nil, fmt.Errorf("alcohol table: duplicate key %q", key)
		}
		level := risk.AlcoholLevel(e.Level)
		if !validLevel(level) {
			return nil, fmt.Errorf("alcohol table: key %q: unknown level %q", key, e.Level)
		}
		pm, err := parseDecimal("per_mille of "+key, e.PerMille)
		if err != nil {
			return nil, err
		}
		t.index[key] = len(t.entries)
		t.entries = append(t.entries, Entry{Key: key, Level: level, PerMille: pm, Description: e.Description})
	}

	var names []string
	for _, l := range f.Ladders {
		if len(l.Rungs) == 0 {
			return nil, fmt.Errorf("alcohol table: ladder %v has no rungs", l.Names)
		}
		rungs := make([]string, len(l.Rungs))
		for i, r := range l.Rungs {
			r = normalize(r)
			if _, ok := t.index[r]; !ok {
				return nil, fmt.Errorf("alcohol table: ladder rung %q is not a key", r)
			}
			rungs[i] = r
		}
		if top := t.entries[t.index[rungs[len(rungs)-1]]]; top.Level != risk.AlcoholSevere {
			return nil, fmt.Errorf("alcohol table: ladder %v ends at %q, which is not severe", l.Names, top.Key)
		}
		for _, n := range l.Names {
			n = normalize(n)
			if _, dup := t.ladders[n]; dup {
				return nil, fmt.Errorf("alcohol table: drink %q has two ladders", n)
			}
			t.ladders[n] = rungs
			names = append(names, n)
		}
	}

	if len(names) > 0 {
		// Longer names first so "kadeh şarap" wins over "şarap".
		sort.SliceStable(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = regexp.QuoteMeta(n)
		}
		t.pattern = regexp.MustCompile(`(\d+)\s*(` + strings.Join(quoted, "|") + `)`)
	}

	return t, nil
}

func (t *Table) Version() string { return t.version }

func (t *Table) Limits() Limits { return t.limits }

// Keys returns the table keys in declaration order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.Key
	}
	return keys
}

func parseDecimal(field, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("alcohol table: %s: %w", field, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("alcohol table: %s must not be negative", field)
	}
	return d, nil
}

func validLevel(l risk.AlcoholLevel) bool {
	switch l {
	case risk.AlcoholNone, risk.AlcoholLight, risk.AlcoholModerate, risk.AlcoholHeavy, risk.AlcoholSevere:
		return true
	}
	return false
}
