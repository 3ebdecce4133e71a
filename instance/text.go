// SPDX-License-Identifier: MIT

package instance

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// decodeText reads "N" followed by N×N numbers. Lines whose first
// non-blank character is '#' are skipped; the first such line becomes
// the Comment.
func decodeText(r io.Reader) (*File, error) {
	var (
		sc     = bufio.NewScanner(r)
		f      = new(File)
		tokens []string
		line   string
	)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line = strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			if f.Comment == "" {
				f.Comment = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			}
			continue
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	n, err := strconv.Atoi(tokens[0])
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("bad city count %q", tokens[0])
	}
	if len(tokens)-1 != n*n {
		return nil, fmt.Errorf("expected %d costs for n=%d, got %d", n*n, n, len(tokens)-1)
	}
	var (
		i, j int
		x    float64
	)
	f.Cost = make([][]float64, n)
	for i = 0; i < n; i++ {
		f.Cost[i] = make([]float64, n)
		for j = 0; j < n; j++ {
			if x, err = strconv.ParseFloat(tokens[1+i*n+j], 64); err != nil {
				return nil, fmt.Errorf("cost[%d][%d]: %w", i, j, err)
			}
			f.Cost[i][j] = x
		}
	}

	return f, nil
}

// encodeText writes the cost matrix of f in the text encoding.
func encodeText(w io.Writer, f *File) error {
	m, err := f.Matrix()
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	if f.Comment != "" {
		fmt.Fprintf(bw, "# %s\n", f.Comment)
	}
	rows := m.ToRows()
	fmt.Fprintf(bw, "%d\n", len(rows))
	var i, j int
	for i = range rows {
		for j = range rows[i] {
			if j > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.FormatFloat(rows[i][j], 'g', -1, 64))
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
