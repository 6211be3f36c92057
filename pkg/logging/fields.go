package logging

import "time"

// Generic field constructors.

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Field helpers for sentinel's recurring log dimensions.

func Component(name string) Field {
	return String("component", name)
}

func NodeID(id string) Field {
	return String("node_id", id)
}

func NodeCount(n int) Field {
	return Int("node_count", n)
}

func EdgeCount(n int) Field {
	return Int("edge_count", n)
}

func CollisionCount(n int) Field {
	return Int("collision_count", n)
}

func MergedCount(n int) Field {
	return Int("merged_count", n)
}

func RelationshipsAnalyzed(n int) Field {
	return Int("relationships_analyzed", n)
}

func Confidence(v float64) Field {
	return Float64("confidence", v)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}
