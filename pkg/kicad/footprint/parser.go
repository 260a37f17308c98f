package footprint

import (
	"fmt"
	"io"
	"os"
)

// ParseFile reads and extracts a KiCad footprint file
func ParseFile(filename string, opts Options) (*Footprint, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Parse(file, opts)
}

// Parse reads a footprint from an io.Reader and extracts it.
// Only read errors are reported; the content itself never fails to extract.
func Parse(r io.Reader, opts Options) (*Footprint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read footprint: %w", err)
	}
	return ExtractWithOptions(string(data), opts), nil
}
