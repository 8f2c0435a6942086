package output

// SchemaVersion is the current version of the NDJSON output schema for
// non-record objects (info, warning, error, summary). Benchmark records
// themselves are unversioned: their shape is the shared aggregate contract.
const SchemaVersion = 1
