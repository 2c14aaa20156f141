package object

import (
	"crypto/rand"
	"testing"

	"github.com/spf13/afero"
)

func randomPayloads(b *testing.B, n, size int) [][]byte {
	b.Helper()
	payloads := make([][]byte, n)
	for i := range payloads {
		buf := make([]byte, size)
		if _, err := rand.Read(buf); err != nil {
			b.Fatalf("rand.Read: %v", err)
		}
		payloads[i] = buf
	}
	return payloads
}

func benchmarkPut(b *testing.B, size int, opts ...Option) {
	s := NewStore(afero.NewOsFs(), b.TempDir(), opts...)
	// Distinct payloads keep every write off the Has fast path.
	payloads := randomPayloads(b, b.N, size)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Put(payloads[i]); err != nil {
			b.Fatalf("Put: %v", err)
		}
	}
}

func BenchmarkStorePutSmall(b *testing.B) { benchmarkPut(b, 100) }
func BenchmarkStorePutLarge(b *testing.B) { benchmarkPut(b, 100*1024) }

func BenchmarkStorePutLargeZstd(b *testing.B) {
	benchmarkPut(b, 100*1024, WithCompression(CompressionZstd))
}

func BenchmarkStoreRead(b *testing.B) {
	s := NewStore(afero.NewOsFs(), b.TempDir())
	h, err := s.Put(randomPayloads(b, 1, 4096)[0])
	if err != nil {
		b.Fatalf("Put: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Read(h); err != nil {
			b.Fatalf("Read: %v", err)
		}
	}
}
