package ops

// MinBufferSize is the floor of the buffer-size policy from spec
// §4.9.
const MinBufferSize = 1024

const maxBufferSize = 1 << 20 // 1 MiB

// bufferSize implements buffer_size = clamp(next_pow2(size/16), 1024,
// 1048576).
func bufferSize(size int64) int {
	if size <= 0 {
		return MinBufferSize
	}
	target := size / 16
	p := nextPow2(target)
	if p < MinBufferSize {
		return MinBufferSize
	}
	if p > maxBufferSize {
		return maxBufferSize
	}
	return int(p)
}

func nextPow2(n int64) int64 {
	if n <= 1 {
		return 1
	}
	n--
	p := int64(1)
	for p < n+1 {
		p <<= 1
	}
	return p
}
