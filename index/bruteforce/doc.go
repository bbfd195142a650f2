// Package bruteforce provides a linear spatial index that answers searches by
// scanning every stored element, and the short-list k-neighbors scan that
// needs no index at all. It supports a compact binary format for
// persistence.
package bruteforce
