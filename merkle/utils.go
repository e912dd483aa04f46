package merkle

import (
	"fmt"
	"math"
	"math/bits"
)

// ComputeNumLeftSiblings returns the number of proof siblings that lie to
// the left of a range starting at leaf index start. Every set bit of start
// is one perfect subtree left of the range, so the count is independent of
// the tree size.
func ComputeNumLeftSiblings(start int) int {
	if start <= 0 {
		return 0
	}
	return bits.OnesCount64(uint64(start))
}

// ComputeTreeSize returns the smallest tree size whose layout needs exactly
// numRightSiblings siblings to the right of the leaf at lastLeafIdx. Each
// right sibling is accounted as the subtree rooted at the next unset bit of
// lastLeafIdx.
func ComputeTreeSize(numRightSiblings, lastLeafIdx int) (int, error) {
	if numRightSiblings < 0 || lastLeafIdx < 0 {
		return 0, fmt.Errorf("%w: negative tree index", ErrMalformedProof)
	}
	final := uint64(lastLeafIdx)
	if final >= math.MaxUint32 {
		return 0, ErrTreeTooLarge
	}
	mask := uint64(1)
	for remaining := numRightSiblings; remaining > 0; mask <<= 1 {
		if final&mask == 0 {
			final |= mask
			remaining--
		}
		if final >= math.MaxUint32 {
			return 0, ErrTreeTooLarge
		}
	}
	return int(final + 1), nil
}

// getSplitPoint returns the largest power of two strictly smaller than length.
func getSplitPoint(length int) int {
	if length < 1 {
		panic("Trying to split a tree with size < 1")
	}
	uLength := uint(length)
	bitlen := bits.Len(uLength)
	k := 1 << uint(bitlen-1)
	if k == length {
		k >>= 1
	}
	return k
}
