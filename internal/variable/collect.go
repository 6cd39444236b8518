package variable

// Flat is an ordered map of dotted variable names to a single occurrence.
type Flat struct {
	names []string
	infos map[string]Info
}

// NewFlat creates an empty Flat.
func NewFlat() *Flat {
	return &Flat{infos: make(map[string]Info)}
}

// Get returns the occurrence recorded for a dotted name.
func (f *Flat) Get(name string) (Info, bool) {
	info, ok := f.infos[name]
	return info, ok
}

// Len returns the number of names.
func (f *Flat) Len() int {
	return len(f.names)
}

// Infos returns the occurrences in insertion order.
func (f *Flat) Infos() []Info {
	xs := make([]Info, 0, len(f.names))
	for _, name := range f.names {
		xs = append(xs, f.infos[name])
	}
	return xs
}

func (f *Flat) put(name string, info Info) {
	f.names = append(f.names, name)
	f.infos[name] = info
}

// Collect flattens t into dotted names under prefix. A name already
// present in the accumulator is neither replaced nor descended into.
func Collect(prefix string, t *Table, source Source) *Flat {
	acc := NewFlat()
	CollectInto(acc, prefix, t, source)
	return acc
}

// CollectInto is Collect with a caller owned accumulator.
func CollectInto(acc *Flat, prefix string, t *Table, source Source) {
	for _, v := range t.Variables() {
		name := v.Name.Value
		if prefix != "" {
			name = prefix + "." + name
		}
		if _, ok := acc.infos[name]; ok {
			continue
		}

		if v.Value.Kind == Hash {
			CollectInto(acc, name, v.Value.Hash, source)
			continue
		}
		acc.put(name, Info{
			Name:   v.Name.WithValue(name),
			Value:  v.Value.Show(),
			Kind:   v.Value.Kind,
			Source: source,
		})
	}
}
