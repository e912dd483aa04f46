/*
Package merkle contains the namespace agnostic part of NMT proof verification:
a range proof over a contiguous run of leaves and the algorithm that
recomputes a root from leaf hashes and proof siblings.

Trees follow the layout used across this module: a subtree of n > 1 leaves
is split into a left subtree holding the largest power of two strictly
smaller than n leaves and a right subtree holding the rest. Proof siblings
are ordered left to right.
*/
package merkle
