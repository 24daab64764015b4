// Package avro implements the core of Apache Avro: a schema model parsed
// from JSON or YAML, a generic dynamically-typed data representation, and
// binary and JSON codecs between the two. It does not implement object
// container files, RPC, logical-type interpretation, or writer/reader
// schema resolution.
package avro
