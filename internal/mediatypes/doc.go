// Package mediatypes provides shared type definitions for the two media
// collections served by the gallery.
//
// This package exists as a dependency-free foundation that other packages
// can import without creating cycles. It defines the Category enum, the
// extension filters used when listing buckets, and MIME type lookup.
//
//	cat, err := mediatypes.ParseCategory("videos")
//	if mediatypes.AllowedName(obj.Name, cat) {
//	    // object belongs in the listing
//	}
package mediatypes
