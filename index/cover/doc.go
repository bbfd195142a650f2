// Package cover provides a spatial index backed by a cover tree over element
// bounds centres. Removal tombstones elements and the tree is rebuilt once
// tombstones outnumber live elements. It serializes using the brute-force
// encoding for compatibility.
package cover
