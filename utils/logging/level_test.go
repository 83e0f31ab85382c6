// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelJSON(t *testing.T) {
	tests := map[string]struct {
		level Level
		json  string
	}{
		"off":   {level: Off, json: `"OFF"`},
		"fatal": {level: Fatal, json: `"FATAL"`},
		"error": {level: Error, json: `"ERROR"`},
		"warn":  {level: Warn, json: `"WARN"`},
		"info":  {level: Info, json: `"INFO"`},
		"trace": {level: Trace, json: `"TRACE"`},
		"debug": {level: Debug, json: `"DEBUG"`},
		"verbo": {level: Verbo, json: `"VERBO"`},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			b, err := json.Marshal(test.level)
			require.NoError(err)
			require.Equal(test.json, string(b))

			var parsed Level
			require.NoError(json.Unmarshal(b, &parsed))
			require.Equal(test.level, parsed)
		})
	}
}

func TestToLevel(t *testing.T) {
	require := require.New(t)

	level, err := ToLevel("debug")
	require.NoError(err)
	require.Equal(Debug, level)

	_, err = ToLevel("loud")
	require.Error(err)
}

func TestLevelOrdering(t *testing.T) {
	require := require.New(t)

	ordered := []Level{Verbo, Debug, Trace, Info, Warn, Error, Fatal, Off}
	for i := 1; i < len(ordered); i++ {
		require.Less(ordered[i-1], ordered[i])
	}
	require.Equal("UNKNO", Level(100).String())
}
