package normalize

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"motordiag/internal/model"
)

var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrBadValue       = errors.New("non-numeric axis value")
)

// Each axis carries its own timestamp column in the source workbook.
var axisColumns = map[model.Axis][2]string{
	model.AxisX: {"t(x)", "x"},
	model.AxisY: {"t(y)", "y"},
	model.AxisZ: {"t(z)", "z"},
}

var requiredColumns = []string{"t(x)", "x", "t(y)", "y", "t(z)", "z"}

// Normalize relabels a raw table into the canonical sample sequence. The
// axial axis contributes its timestamp and value columns; its value lands
// under Z. The two remaining axes contribute value columns only, in x,y,z
// residual order, landing under X and Y. This is a relabeling, not a
// coordinate transform.
//
// Rows with a null in any selected cell are dropped, rows whose timestamp
// does not parse are dropped, and the result is sorted ascending by
// timestamp. Duplicate timestamps are preserved.
func Normalize(tbl *model.Table, axial model.Axis) ([]model.Sample, error) {
	if tbl == nil {
		return nil, fmt.Errorf("%w: empty table", ErrMissingColumns)
	}
	index := make(map[string]int, len(tbl.Header))
	for i, name := range tbl.Header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, seen := index[key]; !seen {
			index[key] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	cols, ok := axisColumns[axial]
	if !ok {
		return nil, fmt.Errorf("unknown axial axis: %q", axial)
	}
	tCol := index[cols[0]]
	axialCol := index[cols[1]]
	var radialCols []int
	for _, axis := range []model.Axis{model.AxisX, model.AxisY, model.AxisZ} {
		if axis == axial {
			continue
		}
		radialCols = append(radialCols, index[axisColumns[axis][1]])
	}

	samples := make([]model.Sample, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		tRaw := cell(row, tCol)
		zRaw := cell(row, axialCol)
		xRaw := cell(row, radialCols[0])
		yRaw := cell(row, radialCols[1])
		if tRaw == "" || zRaw == "" || xRaw == "" || yRaw == "" {
			continue
		}
		z, err := strconv.ParseFloat(zRaw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %q", ErrBadValue, i+1, zRaw)
		}
		x, err := strconv.ParseFloat(xRaw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %q", ErrBadValue, i+1, xRaw)
		}
		y, err := strconv.ParseFloat(yRaw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %q", ErrBadValue, i+1, yRaw)
		}
		t, err := ParseTimestamp(tRaw)
		if err != nil {
			// Unparseable timestamps coerce to null and the row drops.
			continue
		}
		samples = append(samples, model.Sample{T: t, X: x, Y: y, Z: z})
	}
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].T.Before(samples[j].T)
	})
	return samples, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
