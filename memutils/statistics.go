package memutils

import "math"

// Statistics summarizes the chunks held by one or more allocators. Byte counts are the element
// counts multiplied by the element size of the allocator that produced them.
type Statistics struct {
	ChunkCount      int
	AllocationCount int
	ChunkBytes      int
	AllocationBytes int
}

func (s *Statistics) Clear() {
	s.ChunkCount = 0
	s.AllocationCount = 0
	s.ChunkBytes = 0
	s.AllocationBytes = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.ChunkCount += other.ChunkCount
	s.AllocationCount += other.AllocationCount
	s.ChunkBytes += other.ChunkBytes
	s.AllocationBytes += other.AllocationBytes
}

// Utilization returns the ratio of claimed bytes to chunk bytes, or 0 when no chunks exist
func (s *Statistics) Utilization() float64 {
	if s.ChunkBytes == 0 {
		return 0
	}

	return float64(s.AllocationBytes) / float64(s.ChunkBytes)
}

// DetailedStatistics extends Statistics with per-allocation size extremes, the size of the unclaimed
// tail of each chunk, and the number of elements currently constructed
type DetailedStatistics struct {
	Statistics
	LiveCount          int
	UnusedRangeCount   int
	AllocationSizeMin  int
	AllocationSizeMax  int
	UnusedRangeSizeMin int
	UnusedRangeSizeMax int
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.LiveCount = 0
	s.UnusedRangeCount = 0
	s.AllocationSizeMin = math.MaxInt
	s.AllocationSizeMax = 0
	s.UnusedRangeSizeMin = math.MaxInt
	s.UnusedRangeSizeMax = 0
}

func (s *DetailedStatistics) AddUnusedRange(size int) {
	s.UnusedRangeCount++

	if size < s.UnusedRangeSizeMin {
		s.UnusedRangeSizeMin = size
	}

	if size > s.UnusedRangeSizeMax {
		s.UnusedRangeSizeMax = size
	}
}

// AddAllocationRange folds count allocations whose sizes fall between minSize and maxSize and which
// total bytes into the statistics
func (s *DetailedStatistics) AddAllocationRange(count, bytes, minSize, maxSize int) {
	if count == 0 {
		return
	}

	s.AllocationCount += count
	s.AllocationBytes += bytes

	if minSize < s.AllocationSizeMin {
		s.AllocationSizeMin = minSize
	}

	if maxSize > s.AllocationSizeMax {
		s.AllocationSizeMax = maxSize
	}
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)
	s.LiveCount += other.LiveCount
	s.UnusedRangeCount += other.UnusedRangeCount

	if other.UnusedRangeSizeMin < s.UnusedRangeSizeMin {
		s.UnusedRangeSizeMin = other.UnusedRangeSizeMin
	}

	if other.UnusedRangeSizeMax > s.UnusedRangeSizeMax {
		s.UnusedRangeSizeMax = other.UnusedRangeSizeMax
	}

	if other.AllocationSizeMin < s.AllocationSizeMin {
		s.AllocationSizeMin = other.AllocationSizeMin
	}

	if other.AllocationSizeMax > s.AllocationSizeMax {
		s.AllocationSizeMax = other.AllocationSizeMax
	}
}
