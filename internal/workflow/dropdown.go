package workflow

import "strconv"

// Sentinel dropdown entries.
const (
	ErrorKey   = "Error"
	ErrorLabel = "Provider experienced error"
	NoneKey    = "None"
)

// Entry is one selectable item.
type Entry struct {
	Key   string
	Label string
}

// Dropdown is an ordered list of selectable items.
type Dropdown []Entry

// Label returns the label of key.
func (d Dropdown) Label(key string) (string, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Label, true
		}
	}
	return "", false
}

// Has reports whether key is present.
func (d Dropdown) Has(key string) bool {
	_, ok := d.Label(key)
	return ok
}

// IsError reports whether d is the degraded error list.
func (d Dropdown) IsError() bool {
	return d.Has(ErrorKey)
}

// Map returns the entries as a key to label map.
func (d Dropdown) Map() map[string]string {
	m := make(map[string]string, len(d))
	for _, e := range d {
		m[e.Key] = e.Label
	}
	return m
}

// ErrorDropdown is the list shown when a category could not be resolved.
func ErrorDropdown(addNone bool) Dropdown {
	d := Dropdown{{Key: ErrorKey, Label: ErrorLabel}}
	if addNone {
		d = append(d, Entry{Key: NoneKey, Label: NoneKey})
	}
	return d
}

// indexDropdown keys labels by their position: "0", "1", ...
func indexDropdown[T any](items []T, label func(T) string) Dropdown {
	d := make(Dropdown, 0, len(items))
	for i, item := range items {
		d = append(d, Entry{Key: strconv.Itoa(i), Label: label(item)})
	}
	return d
}

// stringDropdown keys items by a provider id.
func stringDropdown[T any](items []T, key, label func(T) string, addNone bool) Dropdown {
	d := make(Dropdown, 0, len(items)+1)
	for _, item := range items {
		d = append(d, Entry{Key: key(item), Label: label(item)})
	}
	if addNone {
		d = append(d, Entry{Key: NoneKey, Label: NoneKey})
	}
	return d
}
