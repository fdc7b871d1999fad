package utils

import "runtime"

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

// ParallelDegree picks the goroutine count for Kmax work items. A zero or
// negative procLimit means one per CPU, never more than the work available.
func ParallelDegree(procLimit, Kmax int) (NP int) {
	if procLimit > 0 {
		NP = procLimit
	} else {
		NP = runtime.NumCPU()
	}
	if NP > Kmax {
		NP = Kmax
	}
	if NP < 1 {
		NP = 1
	}
	return
}

// NewPartitionMap splits [0, maxIndex) into ParallelDegree contiguous
// buckets, procLimit is clamped as in ParallelDegree.
func NewPartitionMap(procLimit, maxIndex int) (pm *PartitionMap) {
	var (
		NP = ParallelDegree(procLimit, maxIndex)
	)
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: NP,
		Partitions:     make([][2]int, NP),
	}
	for n := 0; n < NP; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

// Split1D gives thread threadNum its bucket, buckets differ in size by at
// most one item with the remainder spread over the leading buckets.
func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 {
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}
