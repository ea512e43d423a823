package tables

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/timpalpant/lookerup"
)

// ReadCSV parses pattern data with one table per record:
//   name, self depth, opp depth, opp start depth, v0, v1, ...
// Values are "C", "D" or the probability of cooperating.
// Lines starting with '#' are ignored.
func ReadCSV(r io.Reader) (Memory, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	result := NewMemory()
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "read csv")
		}

		line, _ := cr.FieldPos(0)
		id, pattern, err := parseRecord(record)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if _, ok := result[id]; ok {
			return nil, errors.Errorf("line %d: duplicate table %v", line, id)
		}

		result[id] = pattern
	}

	return result, nil
}

func parseRecord(record []string) (lookerup.TableID, []lookerup.RawValue, error) {
	if len(record) < 4 {
		return lookerup.TableID{}, nil, errors.Errorf(
			"expected at least 4 fields, got %d", len(record))
	}

	var depths [3]int
	for i := range depths {
		d, err := strconv.Atoi(strings.TrimSpace(record[i+1]))
		if err != nil {
			return lookerup.TableID{}, nil, errors.Wrapf(err, "field %d", i+1)
		}
		depths[i] = d
	}

	id := lookerup.TableID{
		Name:   strings.TrimSpace(record[0]),
		Window: lookerup.WindowSpec{Self: depths[0], Opp: depths[1], OppStart: depths[2]},
	}

	pattern := make([]lookerup.RawValue, 0, len(record)-4)
	for _, field := range record[4:] {
		v, err := lookerup.ParseRawValue(strings.TrimSpace(field))
		if err != nil {
			return id, nil, err
		}
		pattern = append(pattern, v)
	}

	return id, pattern, nil
}

// WriteCSV writes every table of src in the format read by ReadCSV.
func WriteCSV(w io.Writer, src Source) error {
	ids, err := src.List()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	for _, id := range ids {
		pattern, err := src.Pattern(id)
		if err != nil {
			return err
		}

		record := []string{
			id.Name,
			strconv.Itoa(id.Window.Self),
			strconv.Itoa(id.Window.Opp),
			strconv.Itoa(id.Window.OppStart),
		}
		for _, v := range pattern {
			record = append(record, v.String())
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "write %v", id)
		}
	}

	cw.Flush()
	return cw.Error()
}
