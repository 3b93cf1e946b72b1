package scan

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// csvHeader is the flat-export column order.
var csvHeader = []string{
	"index", "family", "mode", "variant",
	"eta", "v", "theta_ny", "kappa", "circumference", "alpha",
	"r", "eps", "value", "converged", "iterations", "class", "error",
}

// WriteCSV exports the rows as one flat table, header included. Floats
// use the shortest exact representation, so the export round-trips.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("scan: write csv header: %w", err)
	}

	for _, row := range rows {
		if err := cw.Write(csvRecord(row)); err != nil {
			return fmt.Errorf("scan: write csv row %d: %w", row.Index, err)
		}
	}
	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("scan: flush csv: %w", err)
	}

	return nil
}

// csvRecord flattens one row into the header's column order. Failed rows
// leave the class column empty rather than printing a zero-value label.
func csvRecord(row Row) []string {
	class := row.Class.String()
	if row.Err != "" {
		class = ""
	}

	return []string{
		strconv.Itoa(row.Index),
		row.Tuple.Family.String(),
		row.Tuple.Mode.String(),
		row.Tuple.Variant.String(),
		ftoa(row.Tuple.Couplings.Eta),
		ftoa(row.Tuple.Couplings.V),
		ftoa(row.Tuple.Couplings.ThetaNY),
		ftoa(row.Tuple.Couplings.Kappa),
		ftoa(row.Tuple.Couplings.Circumference),
		ftoa(row.Tuple.Couplings.Alpha),
		ftoa(row.Result.R),
		ftoa(row.Result.Eps),
		ftoa(row.Result.Value),
		strconv.FormatBool(row.Result.Converged),
		strconv.Itoa(row.Result.Iterations),
		class,
		row.Err,
	}
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
