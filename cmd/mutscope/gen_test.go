// Copyright 2016-2020, Pulumi Corporation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbovo/mutscope/pkg/workspace"
)

// executeMutscope runs the CLI with the given arguments and returns its standard output.
func executeMutscope(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newMutscopeCmd()
	cmd.SetOutput(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenCommands(t *testing.T) {
	dir, err := ioutil.TempDir("", "mutscope")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	settings := writeScript(t, dir, workspace.SettingsFile, "globals:\n  greeting: hi\n")
	script := writeScript(t, dir, "main.mut", sampleScript)

	outDir := filepath.Join(dir, "out", "ts")
	_, err = executeMutscope(t, "--settings", settings, "gen", "nodejs", script, "--out", outDir)
	require.NoError(t, err)
	index, err := ioutil.ReadFile(filepath.Join(outDir, "index.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "const name = greeting.toUpperCase();\n")
	assert.Contains(t, string(index), "    count = count + step;\n")

	stdout, err := executeMutscope(t, "--settings", settings, "gen", "docs", script)
	require.NoError(t, err)
	assert.Contains(t, stdout, "title: \"main\"\n")
	assert.Contains(t, stdout, "## Bindings\n")
	assert.NotContains(t, stdout, "## Problems")

	page := filepath.Join(dir, "main.md")
	stdout, err = executeMutscope(t, "--settings", settings, "gen", "docs", script, "--out", page)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	b, err := ioutil.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(b), "| `step` | immutable (`let`) | 1 |")
}

func TestGenCommandsRejectBadInput(t *testing.T) {
	dir, err := ioutil.TempDir("", "mutscope")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	settings := writeScript(t, dir, workspace.SettingsFile, "output: text\n")
	broken := writeScript(t, dir, "broken.mut", "let \"x\" {\n}\n")

	_, err = executeMutscope(t, "--settings", settings, "gen", "nodejs", broken, "--out", dir)
	assert.EqualError(t, err, broken+": 1 error(s) while binding")
	_, err = os.Stat(filepath.Join(dir, "index.ts"))
	assert.True(t, os.IsNotExist(err))

	bad := writeScript(t, dir, "bad.yaml", "output: xml\n")
	_, err = executeMutscope(t, "--settings", bad, "gen", "docs", broken)
	assert.Error(t, err)

	script := writeScript(t, dir, "main.mut", "let \"x\" {\n  value = 1\n}\n")
	_, err = executeMutscope(t, "--settings", settings, "run", script, "--output", "xml")
	assert.EqualError(t, err, `unknown output format "xml"; expected one of text, yaml, json`)
}
