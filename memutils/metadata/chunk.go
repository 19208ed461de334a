package metadata

import (
	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/arena/memutils"
	"golang.org/x/exp/slices"
)

const liveSetInitialSize = 64

// ChunkMetadata tracks the bookkeeping for a single fixed-capacity chunk used by a bump allocator.
//
// Slots are claimed from the front of the unclaimed tail of the chunk: every successful Claim returns
// the current used count as its offset and then advances it. The used count never moves backward,
// so slots are never handed out twice over the lifetime of the chunk.
//
// Independently of claiming, the metadata records which claimed slots currently hold a constructed
// element. Slots whose element was destroyed, or whose construction failed, are not live.
type ChunkMetadata struct {
	elemSize int
	capacity int
	used     int

	allocationCount   int
	allocationSizeMin int
	allocationSizeMax int

	live *swiss.Map[int, struct{}]
}

var _ memutils.Validatable = &ChunkMetadata{}

// NewChunkMetadata creates metadata for a chunk of elements elemSize bytes wide. Init must be called
// before the metadata is used.
func NewChunkMetadata(elemSize int) *ChunkMetadata {
	return &ChunkMetadata{
		elemSize: elemSize,
	}
}

// Init prepares this structure for allocations and sizes the chunk in elements based on the
// parameter capacity.
func (m *ChunkMetadata) Init(capacity int) {
	m.capacity = capacity
	m.used = 0
	m.allocationCount = 0
	m.allocationSizeMin = 0
	m.allocationSizeMax = 0

	m.live = newLiveSet(capacity)
}

func newLiveSet(capacity int) *swiss.Map[int, struct{}] {
	initialSize := capacity
	if initialSize > liveSetInitialSize {
		initialSize = liveSetInitialSize
	}
	return swiss.NewMap[int, struct{}](uint32(initialSize))
}

// ElementSize returns the size in bytes of a single element of the chunk
func (m *ChunkMetadata) ElementSize() int { return m.elemSize }

// Capacity returns the number of elements the chunk was initialized with
func (m *ChunkMetadata) Capacity() int { return m.capacity }

// Used returns the number of elements that have been claimed from the chunk
func (m *ChunkMetadata) Used() int { return m.used }

// SumFree returns the number of elements that can still be claimed from the chunk
func (m *ChunkMetadata) SumFree() int { return m.capacity - m.used }

// AllocationCount returns the number of successful claims made against the chunk
func (m *ChunkMetadata) AllocationCount() int { return m.allocationCount }

// LiveCount returns the number of claimed slots currently holding a constructed element
func (m *ChunkMetadata) LiveCount() int {
	if m.live == nil {
		return 0
	}
	return m.live.Count()
}

// IsExhausted returns true if no further element can be claimed from the chunk
func (m *ChunkMetadata) IsExhausted() bool { return m.used == m.capacity }

// CanClaim returns true if n contiguous elements are available at the end of the chunk
func (m *ChunkMetadata) CanClaim(n int) bool {
	return n > 0 && m.capacity-m.used >= n
}

// Claim reserves n contiguous elements at the front of the unclaimed space and returns the
// offset of the first of them. It returns an error without modifying the chunk if n is not positive
// or does not fit.
func (m *ChunkMetadata) Claim(n int) (int, error) {
	if n <= 0 {
		return -1, errors.Newf("attempted to claim %d elements from a chunk", n)
	}
	if !m.CanClaim(n) {
		return -1, errors.Newf("attempted to claim %d elements from a chunk with only %d of %d free", n, m.SumFree(), m.capacity)
	}

	offset := m.used
	m.used += n

	if m.allocationCount == 0 || n < m.allocationSizeMin {
		m.allocationSizeMin = n
	}
	if n > m.allocationSizeMax {
		m.allocationSizeMax = n
	}
	m.allocationCount++

	return offset, nil
}

// MarkLive records that the element in the provided slot has been constructed. The slot must have
// been claimed and must not already be live.
func (m *ChunkMetadata) MarkLive(slot int) error {
	if slot < 0 || slot >= m.used {
		return errors.Newf("slot %d is outside the %d claimed elements of the chunk", slot, m.used)
	}
	if m.live.Has(slot) {
		return errors.Newf("slot %d already holds a live element", slot)
	}

	m.live.Put(slot, struct{}{})
	return nil
}

// MarkDead records that the element in the provided slot has been destroyed. It returns false if the
// slot was not live.
func (m *ChunkMetadata) MarkDead(slot int) bool {
	if m.live == nil {
		return false
	}
	return m.live.Delete(slot)
}

// IsLive returns true if the provided slot holds a constructed element
func (m *ChunkMetadata) IsLive(slot int) bool {
	if m.live == nil {
		return false
	}
	return m.live.Has(slot)
}

// VisitLiveSlots calls the provided callback once for each live slot, in ascending slot order. Iteration
// stops at the first error, which is returned.
func (m *ChunkMetadata) VisitLiveSlots(visit func(slot int) error) error {
	if m.live == nil || m.live.Count() == 0 {
		return nil
	}

	slots := make([]int, 0, m.live.Count())
	m.live.Iter(func(slot int, _ struct{}) bool {
		slots = append(slots, slot)
		return false
	})
	slices.Sort(slots)

	for _, slot := range slots {
		err := visit(slot)
		if err != nil {
			return err
		}
	}

	return nil
}

// Clear forgets every live slot. Claimed space is not returned to the chunk.
func (m *ChunkMetadata) Clear() {
	if m.live != nil {
		m.live = newLiveSet(m.capacity)
	}
}

// Validate performs internal consistency checks on the metadata. When the metadata is functioning
// correctly, it should not be possible for this method to return an error.
func (m *ChunkMetadata) Validate() error {
	if m.capacity < 1 {
		return errors.Newf("chunk has an invalid capacity of %d", m.capacity)
	}
	if m.used < 0 || m.used > m.capacity {
		return errors.Newf("chunk has %d used elements, but its capacity is %d", m.used, m.capacity)
	}
	if m.used < m.allocationCount {
		return errors.Newf("chunk has %d allocations, but only %d used elements", m.allocationCount, m.used)
	}
	if (m.used == 0) != (m.allocationCount == 0) {
		return errors.Newf("chunk has %d used elements across %d allocations", m.used, m.allocationCount)
	}

	if m.allocationCount > 0 {
		if m.allocationSizeMin > m.allocationSizeMax {
			return errors.Newf("chunk minimum allocation size %d is larger than its maximum %d", m.allocationSizeMin, m.allocationSizeMax)
		}
		if m.allocationSizeMin*m.allocationCount > m.used || m.allocationSizeMax > m.used {
			return errors.Newf("chunk allocation sizes %d-%d across %d allocations do not agree with %d used elements",
				m.allocationSizeMin, m.allocationSizeMax, m.allocationCount, m.used)
		}
	}

	if m.live == nil {
		return errors.New("chunk metadata has not been initialized")
	}
	if m.live.Count() > m.used {
		return errors.Newf("chunk has %d live elements, but only %d used elements", m.live.Count(), m.used)
	}

	var err error
	m.live.Iter(func(slot int, _ struct{}) bool {
		if slot < 0 || slot >= m.used {
			err = errors.Newf("live slot %d is outside the %d claimed elements of the chunk", slot, m.used)
			return true
		}
		return false
	})

	return err
}

// AddStatistics sums this chunk's allocation statistics into the statistics currently present in the
// provided memutils.Statistics object.
func (m *ChunkMetadata) AddStatistics(stats *memutils.Statistics) {
	stats.ChunkCount++
	stats.AllocationCount += m.allocationCount
	stats.ChunkBytes += m.capacity * m.elemSize
	stats.AllocationBytes += m.used * m.elemSize
}

// AddDetailedStatistics sums this chunk's allocation statistics into the statistics currently present
// in the provided memutils.DetailedStatistics object.
func (m *ChunkMetadata) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	stats.ChunkCount++
	stats.ChunkBytes += m.capacity * m.elemSize
	stats.LiveCount += m.LiveCount()
	stats.AddAllocationRange(
		m.allocationCount,
		m.used*m.elemSize,
		m.allocationSizeMin*m.elemSize,
		m.allocationSizeMax*m.elemSize,
	)

	if m.SumFree() > 0 {
		stats.AddUnusedRange(m.SumFree() * m.elemSize)
	}
}

// ChunkJsonData populates a json object with information about this chunk
func (m *ChunkMetadata) ChunkJsonData(json jwriter.ObjectState) {
	json.Name("Capacity").Int(m.capacity)
	json.Name("Used").Int(m.used)
	json.Name("TotalBytes").Int(m.capacity * m.elemSize)
	json.Name("UnusedBytes").Int(m.SumFree() * m.elemSize)
	json.Name("Allocations").Int(m.allocationCount)
	json.Name("LiveElements").Int(m.LiveCount())
}
