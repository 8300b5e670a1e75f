package stringtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/elevconf/stringtest"
)

func TestInput(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"empty": {},
		"plain line": {
			input: "version: 5.2.0",
			want:  "version: 5.2.0",
		},
		"surrounding newlines": {
			input: "\nversion: 5.2.0\n",
			want:  "version: 5.2.0",
		},
		"only one newline trimmed per side": {
			input: "\n\nversion: 5.2.0\n\n",
			want:  "\nversion: 5.2.0\n",
		},
		"tab indent": {
			input: "\n\t\tversion: 5.2.0\n\t\tupdateCheckerEnabled: true\n\t",
			want:  "version: 5.2.0\nupdateCheckerEnabled: true\n",
		},
		"nested mapping": {
			input: `
				elevators:
				  DEFAULT:
				    # Item name.
				    displayName: Elevator
			`,
			want: "elevators:\n  DEFAULT:\n    # Item name.\n    displayName: Elevator\n",
		},
		"blank and whitespace lines": {
			input: "\n    hologramLines:\n      \n\n      - Up",
			want:  "hologramLines:\n\n\n  - Up",
		},
		"shallowest line sets indent": {
			input: "\n      - aaa\n    recipe:\n      - a#a",
			want:  "  - aaa\nrecipe:\n  - a#a",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.Input(tc.input))
		})
	}
}

func TestJoinLF(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want  string
		lines []string
	}{
		"none": {},
		"one": {
			lines: []string{"version: 5.2.0"},
			want:  "version: 5.2.0",
		},
		"several": {
			lines: []string{"sound:", "  volume: 1.0", "  pitch: 2.0"},
			want:  "sound:\n  volume: 1.0\n  pitch: 2.0",
		},
		"empty line kept": {
			lines: []string{"a", "", "b"},
			want:  "a\n\nb",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, stringtest.JoinLF(tc.lines...))
		})
	}
}
