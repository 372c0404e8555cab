package bench

import (
	"math/rand"
	"path/filepath"
	"strconv"
)

// randForSeed builds the deterministic generator used for instance creation,
// so a case's instance is fixed by its seed alone.
func randForSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func dirOf(path string) string {
	d := filepath.Dir(path)
	if d == "." {
		return ""
	}
	return d
}

func itoa(v int) string { return strconv.Itoa(v) }

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
