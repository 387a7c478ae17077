package loader

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// WriteExampleData writes three small synthetic scattering files into dir:
// a tab-separated measurement with errors, a comma-separated fit curve and
// a second measurement. Returns the file paths.
func WriteExampleData(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create example dir: %w", err)
	}

	n := 50
	q := make([]float64, n)
	for i := range q {
		// log-spaced from 0.1 to 100
		q[i] = math.Pow(10, -1+3*float64(i)/float64(n-1))
	}

	var b strings.Builder
	b.WriteString("# Example scattering data - measurement 1\n")
	b.WriteString("# q [nm^-1]\tI [a.u.]\terr [a.u.]\n")
	for _, x := range q {
		y := 100 * math.Pow(x, -2) * math.Exp(-x/10)
		fmt.Fprintf(&b, "%.6f\t%.6f\t%.6f\n", x, y, 0.1*y+1)
	}
	meas1 := filepath.Join(dir, "measurement1.dat")
	if err := os.WriteFile(meas1, []byte(b.String()), 0644); err != nil {
		return nil, err
	}

	b.Reset()
	b.WriteString("# Fit for measurement 1\n")
	b.WriteString("# q [nm^-1],I [a.u.]\n")
	for _, x := range q {
		y := 100 * math.Pow(x, -2) * math.Exp(-x/10)
		fmt.Fprintf(&b, "%.6f,%.6f\n", x, y)
	}
	fit1 := filepath.Join(dir, "fit1.csv")
	if err := os.WriteFile(fit1, []byte(b.String()), 0644); err != nil {
		return nil, err
	}

	b.Reset()
	b.WriteString("# Example scattering data - measurement 2\n")
	b.WriteString("# q [nm^-1]\tI [a.u.]\terr [a.u.]\n")
	for _, x := range q {
		y := 50 * math.Pow(x, -1.5)
		fmt.Fprintf(&b, "%.6f\t%.6f\t%.6f\n", x, y, 0.15*y+0.5)
	}
	meas2 := filepath.Join(dir, "measurement2.dat")
	if err := os.WriteFile(meas2, []byte(b.String()), 0644); err != nil {
		return nil, err
	}

	return []string{meas1, fit1, meas2}, nil
}
