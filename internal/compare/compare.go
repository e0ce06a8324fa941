// Package compare decides byte-exact content identity between two files.
//
// A size mismatch or a differing xxh3 digest settles "different" cheaply.
// Matching digests are always confirmed by a streaming byte comparison, so a
// hash collision can never hide a change. Digests are cached per path, which
// makes a newest-to-oldest walk read each snapshot copy once when the copies
// keep changing.
package compare

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/zeebo/xxh3"

	"github.com/danlynn/compare-with-snapshot/internal/fs"
)

const chunkSize = 64 * 1024

type Comparator struct {
	fs      fs.FS
	digests map[string]xxh3.Uint128
}

func New(filesystem fs.FS) *Comparator {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Comparator{
		fs:      filesystem,
		digests: make(map[string]xxh3.Uint128),
	}
}

// Identical reports whether a and b hold exactly the same bytes.
func (c *Comparator) Identical(a, b string) (bool, error) {
	ai, err := c.fs.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := c.fs.Stat(b)
	if err != nil {
		return false, err
	}

	if ai.Size != bi.Size {
		return false, nil
	}
	if ai.SameFile(bi) {
		return true, nil
	}

	ad, err := c.digest(a)
	if err != nil {
		return false, err
	}
	bd, err := c.digest(b)
	if err != nil {
		return false, err
	}
	if ad != bd {
		return false, nil
	}

	return c.equalBytes(a, b)
}

func (c *Comparator) digest(path string) (xxh3.Uint128, error) {
	if d, ok := c.digests[path]; ok {
		return d, nil
	}

	r, err := c.fs.Open(path)
	if err != nil {
		return xxh3.Uint128{}, err
	}
	defer r.Close()

	h := xxh3.New()
	if _, err := io.Copy(h, r); err != nil {
		return xxh3.Uint128{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	d := h.Sum128()
	c.digests[path] = d
	return d, nil
}

func (c *Comparator) equalBytes(a, b string) (bool, error) {
	ra, err := c.fs.Open(a)
	if err != nil {
		return false, err
	}
	defer ra.Close()

	rb, err := c.fs.Open(b)
	if err != nil {
		return false, err
	}
	defer rb.Close()

	bufA := make([]byte, chunkSize)
	bufB := make([]byte, chunkSize)

	for {
		na, errA := io.ReadFull(ra, bufA)
		nb, errB := io.ReadFull(rb, bufB)

		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}

		doneA, err := chunkDone(errA)
		if err != nil {
			return false, fmt.Errorf("reading %s: %w", a, err)
		}
		doneB, err := chunkDone(errB)
		if err != nil {
			return false, fmt.Errorf("reading %s: %w", b, err)
		}

		if doneA || doneB {
			return doneA == doneB, nil
		}
	}
}

// chunkDone maps io.ReadFull's end-of-stream errors to done=true.
func chunkDone(err error) (bool, error) {
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return true, nil
	default:
		return false, err
	}
}
