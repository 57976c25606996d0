// Package catalog turns the issues directory into ordered Issue and Page values.
//
// Everything here is read-only: listing issue directories, listing page images
// and deriving display titles from an optional title.txt. Lexicographic order
// of directory and file names defines every processing and display order.
package catalog
