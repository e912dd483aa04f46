// Package namespace contains the core namespaced data types:
// * ID is the namespace identifier attached to every leaf of an NMT
// * PrefixedData represents leaf data prefixed with its namespace.ID
package namespace
