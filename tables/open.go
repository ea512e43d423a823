package tables

import (
	"io"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

type format int

const (
	csvFormat format = iota
	snapshotFormat
	sqliteFormat
)

func formatOf(path string) (format, error) {
	switch {
	case strings.HasSuffix(path, ".csv"):
		return csvFormat, nil
	case strings.HasSuffix(path, ".gob.gz"):
		return snapshotFormat, nil
	case strings.HasSuffix(path, ".db"), strings.HasSuffix(path, ".sqlite"):
		return sqliteFormat, nil
	}

	return 0, errors.Errorf("unknown table file format: %v", path)
}

// Open loads the tables in path, choosing the format by extension
// (.csv, .gob.gz, .db). The returned Source should be closed
// if it implements io.Closer.
func Open(path string) (Source, error) {
	glog.Infof("Loading tables from: %v", path)
	ff, err := formatOf(path)
	if err != nil {
		return nil, err
	}

	if ff == sqliteFormat {
		store, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if ff == csvFormat {
		return ReadCSV(f)
	}
	return ReadSnapshot(f)
}

// Save writes all tables of src to path in the format implied by its extension.
func Save(path string, src Source) error {
	ff, err := formatOf(path)
	if err != nil {
		return err
	}

	if ff == sqliteFormat {
		store, err := OpenSQLite(path)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := CopyAll(store, src)
		glog.Infof("Saved %d tables to %v", n, path)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	var write func(io.Writer, Source) error = WriteCSV
	if ff == snapshotFormat {
		write = WriteSnapshot
	}

	if err := write(f, src); err != nil {
		f.Close()
		return err
	}

	glog.Infof("Saved tables to %v", path)
	return f.Close()
}
