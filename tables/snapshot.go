package tables

import (
	"encoding/gob"
	"io"

	"github.com/golang/glog"
	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"

	"github.com/timpalpant/lookerup"
)

type snapshotRecord struct {
	ID      lookerup.TableID
	Pattern []lookerup.RawValue
}

// WriteSnapshot saves every table of src as a gzip-compressed gob stream.
func WriteSnapshot(w io.Writer, src Source) error {
	ids, err := src.List()
	if err != nil {
		return err
	}

	zw := gzip.NewWriter(w)
	enc := gob.NewEncoder(zw)
	if err := enc.Encode(len(ids)); err != nil {
		return err
	}

	for _, id := range ids {
		pattern, err := src.Pattern(id)
		if err != nil {
			return err
		}

		if err := enc.Encode(snapshotRecord{ID: id, Pattern: pattern}); err != nil {
			return errors.Wrapf(err, "encode %v", id)
		}
	}

	glog.V(1).Infof("Wrote snapshot of %d tables", len(ids))
	return zw.Close()
}

// ReadSnapshot loads tables saved by WriteSnapshot.
func ReadSnapshot(r io.Reader) (Memory, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "open snapshot")
	}
	defer zr.Close()

	dec := gob.NewDecoder(zr)
	var n int
	if err := dec.Decode(&n); err != nil {
		return nil, errors.Wrap(err, "decode snapshot header")
	}

	result := NewMemory()
	for i := 0; i < n; i++ {
		var rec snapshotRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, errors.Wrapf(err, "decode table %d of %d", i, n)
		}

		result[rec.ID] = rec.Pattern
	}

	return result, nil
}
