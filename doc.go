/*
Package dbdb implements the physical storage layer of a copy-on-write
database in pure Go. A single file holds a fixed-size superblock, whose
first eight bytes are the root address, followed by an append-only run of
length-prefixed records. Records are addressed by their byte offset and
are never moved or reclaimed. Writers serialize across processes with an
exclusive advisory lock on the file.
*/
package dbdb
