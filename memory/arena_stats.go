package memory

import (
	"strconv"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/arena/memutils"
)

// BuildStatsString produces a JSON document describing the arena's policy and totals. If detailedMap
// is true, the document also includes an entry for every chunk, keyed by chunk id.
func (a *Arena[T]) BuildStatsString(detailedMap bool) string {
	writer := jwriter.NewWriter()

	rootObj := writer.Object()

	rootObj.Name("Kind").String(AllocatorKindArena.String())
	rootObj.Name("ChunkSize").Int(a.policy.ChunkSize)
	rootObj.Name("MaxBytes").Int(a.policy.MaxBytes)
	rootObj.Name("ElementSize").Int(a.elemSize)
	rootObj.Name("Released").Bool(a.released)

	var stats memutils.DetailedStatistics
	stats.Clear()
	a.AddDetailedStatistics(&stats)

	totalObj := rootObj.Name("Total").Object()
	printDetailedStatistics(totalObj, &stats)
	totalObj.End()

	if detailedMap {
		chunksObj := rootObj.Name("Chunks").Object()
		for _, chunk := range a.chunks {
			chunkObj := chunksObj.Name(strconv.Itoa(chunk.id)).Object()
			chunk.metadata.ChunkJsonData(chunkObj)
			chunkObj.End()
		}
		chunksObj.End()
	}

	rootObj.End()

	return string(writer.Bytes())
}

func printDetailedStatistics(json jwriter.ObjectState, stats *memutils.DetailedStatistics) {
	json.Name("ChunkCount").Int(stats.ChunkCount)
	json.Name("ChunkBytes").Int(stats.ChunkBytes)
	json.Name("AllocationCount").Int(stats.AllocationCount)
	json.Name("AllocationBytes").Int(stats.AllocationBytes)
	json.Name("LiveElements").Int(stats.LiveCount)
	json.Name("UnusedRangeCount").Int(stats.UnusedRangeCount)

	if stats.AllocationCount > 0 {
		json.Name("AllocationSizeMin").Int(stats.AllocationSizeMin)
		json.Name("AllocationSizeMax").Int(stats.AllocationSizeMax)
	}

	if stats.UnusedRangeCount > 0 {
		json.Name("UnusedRangeSizeMin").Int(stats.UnusedRangeSizeMin)
		json.Name("UnusedRangeSizeMax").Int(stats.UnusedRangeSizeMax)
	}
}
