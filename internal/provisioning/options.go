package provisioning

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Option names understood by the provisioning code.
const (
	OptKeyPair            = "guest_access_key_pair"
	OptTargetName         = "vm_target_name"
	OptSysType            = "sys_type"
	OptAvailabilityZone   = "placement_availability_zone"
	OptSourceImage        = "src_vm_id"
	OptSubnet             = "vlan"
	OptStorageType        = "storage_type"
	OptCloudNetwork       = "cloud_network"
	OptIPAddress          = "ip_addr"
	OptSecurityGroups     = "security_groups"
	OptInstanceType       = "instance_type"
	OptEntitledProcessors = "entitled_processors"
	OptResourceGroup      = "resource_group"
)

// Value is one recorded option: a scalar, or an id with its display label.
type Value struct {
	ID    string
	Label string
	Pair  bool
}

// Scalar returns a plain value.
func Scalar(v string) Value {
	return Value{ID: v}
}

// Pair returns an (id, label) value.
func Pair(id, label string) Value {
	return Value{ID: id, Label: label, Pair: true}
}

// Last returns the label of a pair and the value itself for scalars.
func (v Value) Last() string {
	if v.Pair {
		return v.Label
	}
	return v.ID
}

type pairMapping struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// UnmarshalYAML accepts a scalar, a sequence whose first and last elements are
// the id and label, or a mapping with id and label keys.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*v = Scalar(node.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("line %d: option pair must hold scalars: %w", node.Line, err)
		}
		return v.fromItems(items)
	case yaml.MappingNode:
		var m pairMapping
		if err := node.Decode(&m); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*v = Pair(m.ID, m.Label)
		return nil
	default:
		return fmt.Errorf("line %d: unsupported option value", node.Line)
	}
}

func (v *Value) fromItems(items []string) error {
	switch len(items) {
	case 0:
		*v = Value{}
	case 1:
		*v = Scalar(items[0])
	default:
		*v = Pair(items[0], items[len(items)-1])
	}
	return nil
}

// MarshalJSON renders a scalar as a string and a pair as [id, label].
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Pair {
		return json.Marshal([]string{v.ID, v.Label})
	}
	return json.Marshal(v.ID)
}

// UnmarshalJSON reverses MarshalJSON. Numbers are kept in their literal form.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "["):
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var items []any
		if err := dec.Decode(&items); err != nil {
			return err
		}
		strs := make([]string, len(items))
		for i, item := range items {
			strs[i] = fmt.Sprint(item)
		}
		return v.fromItems(strs)
	case strings.HasPrefix(trimmed, "{"):
		var m pairMapping
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*v = Pair(m.ID, m.Label)
		return nil
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Scalar(s)
		return nil
	case trimmed == "null":
		*v = Value{}
		return nil
	default:
		*v = Scalar(trimmed)
		return nil
	}
}

// Options is the flat option store of a provisioning request.
type Options map[string]Value

// LoadOptions reads a request file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}
	return ParseOptions(data)
}

// ParseOptions decodes a YAML request document.
func ParseOptions(data []byte) (Options, error) {
	opts := Options{}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return opts, nil
}

// Get returns the id of a pair or the scalar value. Missing options are empty.
func (o Options) Get(name string) string {
	return o[name].ID
}

// GetLast returns the label of a pair or the scalar value.
func (o Options) GetLast(name string) string {
	return o[name].Last()
}

// GetList splits a comma-separated scalar into its non-empty items.
func (o Options) GetList(name string) []string {
	var items []string
	for _, item := range strings.Split(o.Get(name), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Set records a scalar option.
func (o Options) Set(name, value string) {
	o[name] = Scalar(value)
}

// SetPair records an (id, label) option.
func (o Options) SetPair(name, id, label string) {
	o[name] = Pair(id, label)
}

// Names returns the recorded option names in sorted order.
func (o Options) Names() []string {
	names := make([]string, 0, len(o))
	for name := range o {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// YAML renders the options as a request document that ParseOptions accepts.
func (o Options) YAML() ([]byte, error) {
	doc := make(map[string]any, len(o))
	for name, v := range o {
		if v.Pair {
			doc[name] = []string{v.ID, v.Label}
		} else {
			doc[name] = v.ID
		}
	}
	return yaml.Marshal(doc)
}
