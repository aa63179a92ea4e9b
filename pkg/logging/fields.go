package logging

import "time"

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

// Float64 creates a float64 field.
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a duration field rendered as its string form.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Err creates an error field.
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Component names the engine component emitting the entry.
func Component(name string) Field {
	return String("component", name)
}

// NodeCount records how many nodes an operation touched.
func NodeCount(count int) Field {
	return Int("node_count", count)
}

// EdgeCount records how many edges an operation touched.
func EdgeCount(count int) Field {
	return Int("edge_count", count)
}

// Partition records a partition index.
func Partition(index int) Field {
	return Int("partition", index)
}

// LodLevel records a detail band by name.
func LodLevel(name string) Field {
	return String("lod_level", name)
}
