package vector

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
)

// Snapshot format: dimensions (uint32), count (uint32), then per chunk:
// idLen (uint32), id bytes, urlLen (uint32), url bytes, embedding (dimensions * float32).
// All integers and floats little-endian.

// Save writes the index to path, creating parent directories as needed.
func (ix *Index) Save(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, uint32(ix.dimensions)); err != nil {
		return fmt.Errorf("write dimensions: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(ix.ids))); err != nil {
		return fmt.Errorf("write count: %w", err)
	}
	for i, id := range ix.ids {
		if err := writeString(w, id); err != nil {
			return fmt.Errorf("write id: %w", err)
		}
		if err := writeString(w, ix.urls[i]); err != nil {
			return fmt.Errorf("write url: %w", err)
		}
		row := ix.data[i*ix.dimensions : (i+1)*ix.dimensions]
		if _, err := w.Write(float32SliceToBytes(row)); err != nil {
			return fmt.Errorf("write embedding: %w", err)
		}
	}
	return w.Flush()
}

// LoadIndex reads a snapshot from path. Returns (nil, nil) when the file does
// not exist so callers can fall back to rebuilding from storage.
func LoadIndex(path string, dimensions int) (*Index, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open snapshot file: %w", err)
	}
	defer f.Close()
	r := bufio.NewReader(f)
	var dim, n uint32
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return nil, fmt.Errorf("read dimensions: %w", err)
	}
	if int(dim) != dimensions {
		return nil, fmt.Errorf("snapshot dimension mismatch: file has %d, expected %d", dim, dimensions)
	}
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}
	ix := &Index{
		dimensions: dimensions,
		ids:        make([]string, 0, n),
		urls:       make([]string, 0, n),
		data:       make([]float32, 0, int(n)*dimensions),
	}
	buf := make([]byte, dimensions*4)
	for i := uint32(0); i < n; i++ {
		id, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("read id: %w", err)
		}
		url, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("read url: %w", err)
		}
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("read embedding: %w", err)
		}
		ix.ids = append(ix.ids, id)
		ix.urls = append(ix.urls, url)
		ix.data = append(ix.data, bytesToFloat32Slice(buf)...)
	}
	return ix, nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func float32SliceToBytes(s []float32) []byte {
	const size = 4
	out := make([]byte, len(s)*size)
	for i, v := range s {
		binary.LittleEndian.PutUint32(out[i*size:(i+1)*size], math.Float32bits(v))
	}
	return out
}

func bytesToFloat32Slice(b []byte) []float32 {
	const size = 4
	out := make([]float32, len(b)/size)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*size : (i+1)*size]))
	}
	return out
}
