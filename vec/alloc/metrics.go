package alloc

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsAllocator accounts every allocation of its upstream in prometheus collectors. Any
// collector may be nil.
type MetricsAllocator[U Allocator] struct {
	upstream U

	allocateBytesCounter   prometheus.Counter
	inuseBytesGauge        prometheus.Gauge
	allocateObjectsCounter prometheus.Counter
	inuseObjectsGauge      prometheus.Gauge
}

type metricsDeallocator[U Allocator] struct {
	upstream  Deallocator
	size      uint64
	allocator *MetricsAllocator[U]
}

func NewMetricsAllocator[U Allocator](
	upstream U,
	allocateBytesCounter prometheus.Counter,
	inuseBytesGauge prometheus.Gauge,
	allocateObjectsCounter prometheus.Counter,
	inuseObjectsGauge prometheus.Gauge,
) *MetricsAllocator[U] {
	return &MetricsAllocator[U]{
		upstream:               upstream,
		allocateBytesCounter:   allocateBytesCounter,
		inuseBytesGauge:        inuseBytesGauge,
		allocateObjectsCounter: allocateObjectsCounter,
		inuseObjectsGauge:      inuseObjectsGauge,
	}
}

var (
	_ Allocator   = new(MetricsAllocator[Allocator])
	_ Reallocator = new(MetricsAllocator[Allocator])
)

func (m *MetricsAllocator[U]) Allocate(size uint64, hints Hints) ([]byte, Deallocator, error) {
	mem, dec, err := m.upstream.Allocate(size, hints)
	if err != nil {
		return nil, nil, err
	}
	m.account(int64(size), 1)
	if m.allocateBytesCounter != nil {
		m.allocateBytesCounter.Add(float64(size))
	}
	if m.allocateObjectsCounter != nil {
		m.allocateObjectsCounter.Inc()
	}
	return mem, &metricsDeallocator[U]{
		upstream:  dec,
		size:      size,
		allocator: m,
	}, nil
}

// Reallocate resizes through the upstream Reallocator when there is one and accounts only the
// size difference. Otherwise it allocates, copies and releases.
func (m *MetricsAllocator[U]) Reallocate(mem []byte, dec Deallocator, size uint64, hints Hints) ([]byte, Deallocator, error) {
	d, ok := dec.(*metricsDeallocator[U])
	if !ok || d.allocator != m || d.upstream == nil {
		return nil, nil, ErrForeignDeallocator
	}
	r, ok := any(m.upstream).(Reallocator)
	if !ok {
		return moveTo(m, mem, dec, size, hints)
	}
	out, up, err := r.Reallocate(mem, d.upstream, size, hints)
	if err != nil {
		return nil, nil, err
	}
	m.account(int64(size)-int64(d.size), 0)
	if size > d.size && m.allocateBytesCounter != nil {
		m.allocateBytesCounter.Add(float64(size - d.size))
	}
	d.upstream, d.size = up, size
	return out, d, nil
}

func (m *MetricsAllocator[U]) account(bytes int64, objects int64) {
	if m.inuseBytesGauge != nil {
		m.inuseBytesGauge.Add(float64(bytes))
	}
	if m.inuseObjectsGauge != nil {
		m.inuseObjectsGauge.Add(float64(objects))
	}
}

func (d *metricsDeallocator[U]) Deallocate(hints Hints) {
	if d.upstream == nil {
		return
	}
	d.upstream.Deallocate(hints)
	d.upstream = nil
	d.allocator.account(-int64(d.size), -1)
}

// AllocatorMetrics bundles the collectors a MetricsAllocator reports to.
type AllocatorMetrics struct {
	AllocateBytes   prometheus.Counter
	InuseBytes      prometheus.Gauge
	AllocateObjects prometheus.Counter
	InuseObjects    prometheus.Gauge
}

// NewAllocatorMetrics creates the four collectors under namespace, labelled by allocator name.
func NewAllocatorMetrics(namespace, allocator string) *AllocatorMetrics {
	labels := prometheus.Labels{"allocator": allocator}
	return &AllocatorMetrics{
		AllocateBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "alloc",
			Name:        "allocate_bytes_total",
			Help:        "Bytes handed out by the allocator.",
			ConstLabels: labels,
		}),
		InuseBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "alloc",
			Name:        "inuse_bytes",
			Help:        "Bytes allocated and not yet released.",
			ConstLabels: labels,
		}),
		AllocateObjects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "alloc",
			Name:        "allocate_objects_total",
			Help:        "Allocations handed out by the allocator.",
			ConstLabels: labels,
		}),
		InuseObjects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "alloc",
			Name:        "inuse_objects",
			Help:        "Allocations not yet released.",
			ConstLabels: labels,
		}),
	}
}

// Register adds all collectors to reg.
func (am *AllocatorMetrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{am.AllocateBytes, am.InuseBytes, am.AllocateObjects, am.InuseObjects} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Wrap returns upstream accounted in am.
func Wrap[U Allocator](am *AllocatorMetrics, upstream U) *MetricsAllocator[U] {
	return NewMetricsAllocator(upstream, am.AllocateBytes, am.InuseBytes, am.AllocateObjects, am.InuseObjects)
}
