package ruleset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/importkit/pkg/rowvalidator"
	"github.com/dmitrymomot/importkit/pkg/validator"
)

// RuleList is the rule list of a column. In YAML it is either a pipe-separated
// string ("required|email") or a sequence with one rule per item; use the
// sequence form for regex rules whose pattern contains a pipe.
type RuleList []string

func (l *RuleList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = validator.SplitRules(node.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	return fmt.Errorf("line %d: rules must be a string or a list", node.Line)
}

// Column declares the rules and display settings of one column.
type Column struct {
	Rules     RuleList          `yaml:"rules"`
	Attribute string            `yaml:"attribute,omitempty"`
	Messages  map[string]string `yaml:"messages,omitempty"`
}

// RuleSet is a declarative import spec. It implements
// rowvalidator.FixedRuleProvider, MessageProvider and AttributeProvider.
type RuleSet struct {
	Name    string            `yaml:"name"`
	Columns map[string]Column `yaml:"columns"`
	// Messages are per-rule messages applied to every column, keyed by rule name.
	Messages map[string]string `yaml:"messages,omitempty"`
}

// Parse decodes and validates a YAML rule set. Unknown fields are rejected.
func Parse(data []byte) (*RuleSet, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var rs RuleSet
	if err := dec.Decode(&rs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.Join(ErrInvalidRuleSet, errors.New("empty document"))
		}
		return nil, errors.Join(ErrInvalidRuleSet, err)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Load reads a rule set from a file.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrLoadRuleSet, err)
	}
	return Parse(data)
}

// LoadFS reads a rule set from fsys, e.g. an embed.FS shipped with the binary.
func LoadFS(fsys fs.FS, name string) (*RuleSet, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Join(ErrLoadRuleSet, err)
	}
	return Parse(data)
}

// Validate checks the document shape: a name, at least one column and rules for
// every column.
func (rs *RuleSet) Validate() error {
	var errs []error
	if rs.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if len(rs.Columns) == 0 {
		errs = append(errs, errors.New("at least one column is required"))
	}
	for _, name := range rs.columnNames() {
		if len(rs.Columns[name].Rules) == 0 {
			errs = append(errs, fmt.Errorf("column %q has no rules", name))
		}
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidRuleSet}, errs...)...)
	}
	return nil
}

// Rules returns the rule list of every column.
func (rs *RuleSet) Rules() map[string]any {
	rules := make(map[string]any, len(rs.Columns))
	for name, col := range rs.Columns {
		rules[name] = []string(slices.Clone(col.Rules))
	}
	return rules
}

// CustomMessages returns column messages as "<column>.<rule>" keys. Document-wide
// messages are expanded for every column that does not override them.
func (rs *RuleSet) CustomMessages() map[string]string {
	messages := make(map[string]string)
	for name, col := range rs.Columns {
		for rule, msg := range rs.Messages {
			messages[name+"."+rule] = msg
		}
		for rule, msg := range col.Messages {
			messages[name+"."+rule] = msg
		}
	}
	return messages
}

// CustomAttributes returns the display names of the columns that declare one.
func (rs *RuleSet) CustomAttributes() map[string]string {
	attributes := make(map[string]string)
	for name, col := range rs.Columns {
		if col.Attribute != "" {
			attributes[name] = col.Attribute
		}
	}
	return attributes
}

func (rs *RuleSet) columnNames() []string {
	names := make([]string, 0, len(rs.Columns))
	for name := range rs.Columns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// skipping is a RuleSet with the skip policy attached.
type skipping struct {
	*RuleSet
	handler rowvalidator.SkipsOnFailure
}

func (s skipping) OnFailure(ctx context.Context, failures ...rowvalidator.Failure) {
	s.handler.OnFailure(ctx, failures...)
}

// WithFailureHandler returns an import spec that validates with rs and skips
// failed rows, handing their failures to h. A nil h returns rs itself, which
// aborts on failure.
func (rs *RuleSet) WithFailureHandler(h rowvalidator.SkipsOnFailure) rowvalidator.ImportSpec {
	if h == nil {
		return rs
	}
	return skipping{RuleSet: rs, handler: h}
}
