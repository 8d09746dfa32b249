package vector

import "unsafe"

// Metrics contains statistical information about a container's storage.
type Metrics struct {
	Len           int     // Live elements (bits for Bits)
	Cap           int     // Allocated slots (bits for Bits)
	Bytes         int64   // Bytes held by the storage block
	Reallocations int     // Storage blocks obtained over the container's lifetime
	Utilization   float64 // Ratio of Len to Cap (0.0-1.0)
}

// Metrics returns a snapshot of storage statistics.
func (v *Vector[T]) Metrics() Metrics {
	var zero T
	bytes, _ := blockBytes(unsafe.Sizeof(zero), len(v.data))
	return Metrics{
		Len:           v.size,
		Cap:           len(v.data),
		Bytes:         bytes,
		Reallocations: v.reallocs,
		Utilization:   utilization(v.size, len(v.data)),
	}
}

// Metrics returns a snapshot of storage statistics.
func (b *Bits) Metrics() Metrics {
	return Metrics{
		Len:           b.size,
		Cap:           b.Cap(),
		Bytes:         int64(len(b.data)),
		Reallocations: b.reallocs,
		Utilization:   utilization(b.size, b.Cap()),
	}
}

func utilization(n, c int) float64 {
	if c == 0 {
		return 0
	}
	return float64(n) / float64(c)
}

// SizeInUse returns the number of bytes handed out by the arena since
// the last Reset, including alignment padding.
func (a *Arena) SizeInUse() int {
	sum := 0
	for _, c := range a.chunks {
		sum += int(c.offset)
	}
	return sum
}

// NumChunks returns the number of chunks currently held by the arena.
func (a *Arena) NumChunks() int {
	return len(a.chunks)
}

// Capacity returns the total capacity (in bytes) of all chunks.
func (a *Arena) Capacity() int {
	sum := 0
	for _, c := range a.chunks {
		sum += len(c.buf)
	}
	return sum
}

// ChunkSize returns the default chunk size used by this arena.
func (a *Arena) ChunkSize() int {
	return a.chunkSize
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes currently allocated
	Capacity    int     // Total capacity in bytes
	NumChunks   int     // Number of chunks
	ChunkSize   int     // Default chunk size
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	used, capacity := a.SizeInUse(), a.Capacity()
	return ArenaMetrics{
		SizeInUse:   used,
		Capacity:    capacity,
		NumChunks:   a.NumChunks(),
		ChunkSize:   a.chunkSize,
		Utilization: utilization(used, capacity),
	}
}
