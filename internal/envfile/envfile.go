package envfile

import (
	"fmt"
	"sort"

	"github.com/joho/godotenv"
)

// Parse returns the key/value pairs of a dotenv document.
func Parse(data []byte) (map[string]string, error) {
	vars, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing env file: %w", err)
	}
	return vars, nil
}

// Keys returns the sorted keys of a dotenv document.
func Keys(data []byte) ([]string, error) {
	vars, err := Parse(data)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Diff holds keys present on only one side.
type Diff struct {
	Missing []string // in want, not in got
	Extra   []string // in got, not in want
}

// Empty reports whether both key sets match.
func (d Diff) Empty() bool { return len(d.Missing) == 0 && len(d.Extra) == 0 }

// CompareKeys compares the key sets of two dotenv documents. Values are
// ignored: an example file is expected to be edited.
func CompareKeys(want, got []byte) (Diff, error) {
	wantVars, err := Parse(want)
	if err != nil {
		return Diff{}, fmt.Errorf("canonical: %w", err)
	}
	gotVars, err := Parse(got)
	if err != nil {
		return Diff{}, err
	}

	var d Diff
	for k := range wantVars {
		if _, ok := gotVars[k]; !ok {
			d.Missing = append(d.Missing, k)
		}
	}
	for k := range gotVars {
		if _, ok := wantVars[k]; !ok {
			d.Extra = append(d.Extra, k)
		}
	}
	sort.Strings(d.Missing)
	sort.Strings(d.Extra)
	return d, nil
}
