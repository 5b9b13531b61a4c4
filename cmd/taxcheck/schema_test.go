package main

import (
	"encoding/json"
	"strings"
	"testing"

	"misp-hq/taxcheck/pkg/cli"
	"misp-hq/taxcheck/pkg/taxonomy"
)

func TestSchemaCommand_Print(t *testing.T) {
	stdout, _, err := executeCommand(t, nil, "schema")
	if err != nil {
		t.Fatalf("schema error = %v", err)
	}

	var schema map[string]any
	if err := json.Unmarshal([]byte(stdout), &schema); err != nil {
		t.Fatalf("schema output is not JSON: %v", err)
	}
	if schema["$id"] != taxonomy.SchemaID {
		t.Errorf("$id = %v, want %s", schema["$id"], taxonomy.SchemaID)
	}
}

func TestSchemaCommand_Validate(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
	}{
		{
			name:       "valid file",
			args:       []string{"schema", "--validate", "testdata/valid.json"},
			wantCode:   cli.ExitValid,
			wantStdout: "testdata/valid.json: " + validLine,
		},
		{
			// The schema cannot see that 'green' is undeclared.
			name:       "undeclared predicate passes the schema",
			args:       []string{"schema", "--validate", "testdata/undeclared.json"},
			wantCode:   cli.ExitValid,
			wantStdout: "testdata/undeclared.json: " + validLine,
		},
		{
			name:       "missing mandatory fields",
			args:       []string{"schema", "--validate", "testdata/empty.json"},
			wantCode:   cli.ExitInvalid,
			wantStdout: "testdata/empty.json: " + invalidLine,
		},
		{
			name:     "silent",
			args:     []string{"schema", "-s", "--validate", "testdata/empty.json"},
			wantCode: cli.ExitInvalid,
		},
		{
			name:       "missing file fails like an invalid one",
			args:       []string{"schema", "--validate", "testdata/missing.json"},
			wantCode:   cli.ExitInvalid,
			wantStdout: "testdata/missing.json: " + invalidLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, nil, tt.args...)
			if code := cli.ExitCode(err); code != tt.wantCode {
				t.Fatalf("exit code = %d (err %v), want %d", code, err, tt.wantCode)
			}
			if strings.TrimSpace(stdout) != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			}
		})
	}
}
