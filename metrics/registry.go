package metrics

import (
	"fmt"
	"sort"
	"sync"
)

// Kind identifies the type of a registered metric.
type Kind int

const (
	KindCounter Kind = iota
	KindGauge
	KindHistogram
)

func (k Kind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	case KindHistogram:
		return "histogram"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Registry holds metrics keyed by name with get-or-create access. A name
// belongs to one kind for the lifetime of the registry; asking for it as
// another kind panics.
type Registry struct {
	mu      sync.RWMutex
	metrics map[string]any
}

// DefaultRegistry backs the pre-defined metrics in standard.go.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{metrics: make(map[string]any)}
}

// Counter returns the Counter registered under name, creating it on first use.
func (r *Registry) Counter(name string) *Counter {
	return getOrCreate(r, name, NewCounter)
}

// Gauge returns the Gauge registered under name, creating it on first use.
func (r *Registry) Gauge(name string) *Gauge {
	return getOrCreate(r, name, NewGauge)
}

// Histogram returns the Histogram registered under name, creating it on
// first use.
func (r *Registry) Histogram(name string) *Histogram {
	return getOrCreate(r, name, NewHistogram)
}

func getOrCreate[T any](r *Registry, name string, create func(string) *T) *T {
	r.mu.RLock()
	m, ok := r.metrics[name]
	r.mu.RUnlock()
	if !ok {
		r.mu.Lock()
		if m, ok = r.metrics[name]; !ok {
			m = create(name)
			r.metrics[name] = m
		}
		r.mu.Unlock()
	}
	v, ok := m.(*T)
	if !ok {
		panic(fmt.Sprintf("metrics: %q already registered as %T", name, m))
	}
	return v
}

// Sample is a point-in-time reading of one metric. Value is set for
// counters and gauges; Count through Mean for histograms.
type Sample struct {
	Name  string
	Kind  Kind
	Value int64

	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

// String formats the sample as a single "name value" line.
func (s Sample) String() string {
	if s.Kind == KindHistogram {
		return fmt.Sprintf("%s count=%d sum=%g min=%g max=%g mean=%g",
			s.Name, s.Count, s.Sum, s.Min, s.Max, s.Mean)
	}
	return fmt.Sprintf("%s %d", s.Name, s.Value)
}

// Snapshot reads every registered metric, sorted by name.
func (r *Registry) Snapshot() []Sample {
	r.mu.RLock()
	samples := make([]Sample, 0, len(r.metrics))
	for name, m := range r.metrics {
		s := Sample{Name: name}
		switch v := m.(type) {
		case *Counter:
			s.Kind, s.Value = KindCounter, v.Value()
		case *Gauge:
			s.Kind, s.Value = KindGauge, v.Value()
		case *Histogram:
			st := v.Stats()
			s.Kind = KindHistogram
			s.Count, s.Sum, s.Min, s.Max, s.Mean = st.Count, st.Sum, st.Min, st.Max, st.Mean()
		}
		samples = append(samples, s)
	}
	r.mu.RUnlock()
	sort.Slice(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })
	return samples
}

// Names returns the names of all registered metrics in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
