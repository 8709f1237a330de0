package dataset

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Inputs shared by every 2-input truth table, in row order.
var (
	truthX1 = []float64{0, 0, 1, 1}
	truthX2 = []float64{0, 1, 0, 1}
)

var truthLabels = map[string][]float64{
	"and":  {0, 0, 0, 1},
	"or":   {0, 1, 1, 1},
	"xor":  {0, 1, 1, 0},
	"nand": {1, 1, 1, 0},
}

// TruthTables returns the names accepted by TruthTable.
func TruthTables() []string {
	names := lo.Keys(truthLabels)
	sort.Strings(names)
	return names
}

// TruthTable returns the named 2-input gate as a table with columns x1, x2, y.
// Names are case-insensitive.
func TruthTable(name string) (*Table, error) {
	y, ok := truthLabels[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown truth table %q (have %s)", name, strings.Join(TruthTables(), ", "))
	}
	return NewTable([]string{"x1", "x2", LabelColumn}, map[string][]float64{
		"x1":        truthX1,
		"x2":        truthX2,
		LabelColumn: y,
	})
}
