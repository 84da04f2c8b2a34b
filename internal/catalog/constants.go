package catalog

// SchemaVersion is the catalog file version this loader understands
const SchemaVersion = "1"
