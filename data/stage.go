package data

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Stage is one optional step of the contract lifecycle workflow
type Stage int

const (
	StageUpload Stage = iota
	StageInstantiate
	StageExecute
	StageQuery
)

var stageNames = []string{"upload", "instantiate", "execute", "query"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}

	return stageNames[s]
}

// ParseStage - converts a stage name into a Stage
func ParseStage(name string) (Stage, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}

	return 0, fmt.Errorf("unknown stage %q, expected one of %s", name, strings.Join(stageNames, ", "))
}

// StageSet is the set of enabled stages. Stages always run in workflow
// order whatever order they were listed in.
type StageSet map[Stage]struct{}

// NewStageSet - builds a set from the given stages
func NewStageSet(stages ...Stage) StageSet {
	set := make(StageSet, len(stages))
	for _, s := range stages {
		set[s] = struct{}{}
	}

	return set
}

// ParseStageSet - builds a set from stage names, comma separated lists are accepted
func ParseStageSet(names []string) (StageSet, error) {
	set := make(StageSet)
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			s, err := ParseStage(part)
			if err != nil {
				return nil, err
			}
			set[s] = struct{}{}
		}
	}

	return set, nil
}

// Has reports whether the stage is enabled
func (ss StageSet) Has(s Stage) bool {
	_, ok := ss[s]
	return ok
}

// Ordered returns the enabled stages in workflow order
func (ss StageSet) Ordered() []Stage {
	res := make([]Stage, 0, len(ss))
	for s := range ss {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })

	return res
}

func (ss StageSet) String() string {
	names := make([]string, 0, len(ss))
	for _, s := range ss.Ordered() {
		names = append(names, s.String())
	}

	return strings.Join(names, ",")
}

// MarshalJSON encodes the set as an ordered list of names
func (ss StageSet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(ss))
	for _, s := range ss.Ordered() {
		names = append(names, s.String())
	}

	return json.Marshal(names)
}

// UnmarshalJSON decodes a list of stage names
func (ss *StageSet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}

	set, err := ParseStageSet(names)
	if err != nil {
		return err
	}
	*ss = set

	return nil
}
