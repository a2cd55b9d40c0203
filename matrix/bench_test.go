// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/uncertainty/matrix"
)

func benchRows(r, c int) [][]float64 {
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = make([]float64, c)
		for j := range rows[i] {
			rows[i][j] = float64(i*c + j)
		}
	}
	return rows
}

func BenchmarkFromRows(b *testing.B) {
	rows := benchRows(64, 181)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := matrix.FromRows(rows); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEqualApprox(b *testing.B) {
	m, _ := matrix.FromRows(benchRows(64, 181))
	o := m.Clone()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.EqualApprox(o, 1e-6)
	}
}
