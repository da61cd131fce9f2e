package rgb2spec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Binary table layout, little endian:
//
//	magic   [4]byte "RS2T"
//	version uint32
//	resolution uint32
//	coefficientCount uint32 (3 for the quadratic)
//	zNodes  [resolution]float32
//	coeffs  [3*resolution³*coefficientCount]float32
//
// The layout preserves grid resolution, polynomial degree and per-cell
// coefficient triples, so a table loads without re-running the fit.

var tableMagic = [4]byte{'R', 'S', '2', 'T'}

const tableVersion = 1

// Save writes the table in its binary format
func (t *Table) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.Write(tableMagic[:]); err != nil {
		return fmt.Errorf("rgb2spec: writing magic: %w", err)
	}
	header := []uint32{tableVersion, uint32(t.Resolution), 3}
	for _, v := range header {
		if err := binary.Write(bw, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("rgb2spec: writing header: %w", err)
		}
	}

	for _, z := range t.ZNodes {
		if err := binary.Write(bw, binary.LittleEndian, float32(z)); err != nil {
			return fmt.Errorf("rgb2spec: writing z nodes: %w", err)
		}
	}
	for _, c := range t.Coeffs {
		if err := binary.Write(bw, binary.LittleEndian, float32(c)); err != nil {
			return fmt.Errorf("rgb2spec: writing coefficients: %w", err)
		}
	}
	return bw.Flush()
}

// Load reads a table from its binary format
func Load(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("rgb2spec: reading magic: %w", err)
	}
	if magic != tableMagic {
		return nil, fmt.Errorf("rgb2spec: bad magic %q", magic)
	}

	var version, resolution, coefficientCount uint32
	for _, v := range []*uint32{&version, &resolution, &coefficientCount} {
		if err := binary.Read(br, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("rgb2spec: reading header: %w", err)
		}
	}
	if version != tableVersion {
		return nil, fmt.Errorf("rgb2spec: unsupported table version %d", version)
	}
	if coefficientCount != 3 {
		return nil, fmt.Errorf("rgb2spec: unsupported coefficient count %d", coefficientCount)
	}
	if resolution < 4 || resolution > 1024 {
		return nil, fmt.Errorf("rgb2spec: implausible resolution %d", resolution)
	}

	res := int(resolution)
	table := &Table{
		Resolution: res,
		ZNodes:     make([]float64, res),
		Coeffs:     make([]float64, 3*res*res*res*3),
	}

	buf := make([]float32, res)
	if err := binary.Read(br, binary.LittleEndian, buf); err != nil {
		return nil, fmt.Errorf("rgb2spec: reading z nodes: %w", err)
	}
	for i, v := range buf {
		table.ZNodes[i] = float64(v)
	}

	coeffs := make([]float32, len(table.Coeffs))
	if err := binary.Read(br, binary.LittleEndian, coeffs); err != nil {
		return nil, fmt.Errorf("rgb2spec: reading coefficients: %w", err)
	}
	for i, v := range coeffs {
		table.Coeffs[i] = float64(v)
	}
	return table, nil
}

// SaveFile writes the table to a file path
func (t *Table) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rgb2spec: creating %s: %w", path, err)
	}
	defer f.Close()
	if err := t.Save(f); err != nil {
		return err
	}
	return f.Close()
}

// LoadFile reads a table from a file path
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("rgb2spec: opening %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}
