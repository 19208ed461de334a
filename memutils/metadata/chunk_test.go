package metadata_test

import (
	"math"
	"testing"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arena/memutils"
	"github.com/vkngwrapper/arena/memutils/metadata"
)

func TestChunkClaim(t *testing.T) {
	chunk := metadata.NewChunkMetadata(8)
	chunk.Init(10)

	var stats memutils.DetailedStatistics
	stats.Clear()
	chunk.AddDetailedStatistics(&stats)

	require.Equal(t, memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			ChunkCount:      1,
			ChunkBytes:      80,
			AllocationCount: 0,
			AllocationBytes: 0,
		},
		UnusedRangeCount:   1,
		AllocationSizeMin:  math.MaxInt,
		AllocationSizeMax:  0,
		UnusedRangeSizeMin: 80,
		UnusedRangeSizeMax: 80,
	}, stats)

	offset, err := chunk.Claim(3)
	require.NoError(t, err)
	require.Equal(t, 0, offset)

	offset, err = chunk.Claim(1)
	require.NoError(t, err)
	require.Equal(t, 3, offset)

	require.Equal(t, 4, chunk.Used())
	require.Equal(t, 6, chunk.SumFree())
	require.Equal(t, 2, chunk.AllocationCount())
	require.NoError(t, chunk.Validate())

	stats.Clear()
	chunk.AddDetailedStatistics(&stats)
	require.Equal(t, memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			ChunkCount:      1,
			ChunkBytes:      80,
			AllocationCount: 2,
			AllocationBytes: 32,
		},
		UnusedRangeCount:   1,
		AllocationSizeMin:  8,
		AllocationSizeMax:  24,
		UnusedRangeSizeMin: 48,
		UnusedRangeSizeMax: 48,
	}, stats)

	offset, err = chunk.Claim(6)
	require.NoError(t, err)
	require.Equal(t, 4, offset)
	require.True(t, chunk.IsExhausted())

	stats.Clear()
	chunk.AddDetailedStatistics(&stats)
	require.Equal(t, 0, stats.UnusedRangeCount)
	require.Equal(t, 80, stats.AllocationBytes)
}

func TestChunkClaimRejectsOverflow(t *testing.T) {
	chunk := metadata.NewChunkMetadata(4)
	chunk.Init(5)

	_, err := chunk.Claim(4)
	require.NoError(t, err)

	_, err = chunk.Claim(2)
	require.Error(t, err)
	require.Equal(t, 4, chunk.Used())

	_, err = chunk.Claim(0)
	require.Error(t, err)

	_, err = chunk.Claim(-1)
	require.Error(t, err)
	require.Equal(t, 4, chunk.Used())
	require.Equal(t, 1, chunk.AllocationCount())
}

func TestChunkLiveSlots(t *testing.T) {
	chunk := metadata.NewChunkMetadata(8)
	chunk.Init(10)

	_, err := chunk.Claim(5)
	require.NoError(t, err)

	require.NoError(t, chunk.MarkLive(4))
	require.NoError(t, chunk.MarkLive(0))
	require.NoError(t, chunk.MarkLive(2))
	require.Error(t, chunk.MarkLive(2))
	require.Error(t, chunk.MarkLive(5))
	require.Error(t, chunk.MarkLive(-1))

	require.Equal(t, 3, chunk.LiveCount())
	require.True(t, chunk.IsLive(2))
	require.False(t, chunk.IsLive(1))

	var visited []int
	err = chunk.VisitLiveSlots(func(slot int) error {
		visited = append(visited, slot)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 4}, visited)

	require.True(t, chunk.MarkDead(2))
	require.False(t, chunk.MarkDead(2))
	require.False(t, chunk.IsLive(2))
	require.Equal(t, 2, chunk.LiveCount())
	require.NoError(t, chunk.Validate())

	chunk.Clear()
	require.Equal(t, 0, chunk.LiveCount())
	require.Equal(t, 5, chunk.Used())
	require.False(t, chunk.IsLive(0))
	require.NoError(t, chunk.Validate())

	require.NoError(t, chunk.MarkLive(4))
	require.Equal(t, 1, chunk.LiveCount())
}

func TestChunkVisitLiveSlotsStopsOnError(t *testing.T) {
	chunk := metadata.NewChunkMetadata(1)
	chunk.Init(4)

	_, err := chunk.Claim(4)
	require.NoError(t, err)
	for slot := 0; slot < 4; slot++ {
		require.NoError(t, chunk.MarkLive(slot))
	}

	visits := 0
	err = chunk.VisitLiveSlots(func(slot int) error {
		visits++
		if slot == 1 {
			return memutils.ErrConstruction
		}
		return nil
	})
	require.ErrorIs(t, err, memutils.ErrConstruction)
	require.Equal(t, 2, visits)
}

func TestChunkValidateUninitialized(t *testing.T) {
	chunk := metadata.NewChunkMetadata(8)
	require.Error(t, chunk.Validate())
}

func TestChunkJsonData(t *testing.T) {
	chunk := metadata.NewChunkMetadata(2)
	chunk.Init(4)

	_, err := chunk.Claim(3)
	require.NoError(t, err)
	require.NoError(t, chunk.MarkLive(1))

	writer := jwriter.NewWriter()
	obj := writer.Object()
	chunk.ChunkJsonData(obj)
	obj.End()

	require.NoError(t, writer.Error())
	require.JSONEq(t, `{
		"Capacity": 4,
		"Used": 3,
		"TotalBytes": 8,
		"UnusedBytes": 2,
		"Allocations": 1,
		"LiveElements": 1
	}`, string(writer.Bytes()))
}
