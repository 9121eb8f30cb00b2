package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Harshitk-cp/dsfusion/internal/buildconfig"
	"github.com/Harshitk-cp/dsfusion/internal/config"
	"github.com/Harshitk-cp/dsfusion/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const irisCSV = `sepal_length,sepal_width,petal_length,petal_width,class
5.1,3.5,1.4,0.2,Iris-setosa
4.9,3.0,1.4,0.2,Iris-setosa
7.0,3.2,4.7,1.4,Iris-versicolor
6.4,3.2,4.5,1.5,Iris-versicolor
6.3,3.3,6.0,2.5,Iris-virginica
7.7,3.8,6.7,2.2,Iris-virginica
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(config.DefaultEvidence())
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestClassifyCommand(t *testing.T) {
	data := writeTemp(t, "iris.csv", irisCSV)

	out, err := run(t, "classify", "--data", data, "--petal-length", "1.5", "--petal-width", "0.3")
	require.NoError(t, err)

	var masses map[string]float64
	require.NoError(t, json.Unmarshal([]byte(out), &masses))
	assert.Greater(t, masses["Iris-setosa"], masses["Iris-virginica"])
	assert.Contains(t, masses, "Omega")

	var total float64
	for _, m := range masses {
		total += m
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestClassifyCommandNeedsObservation(t *testing.T) {
	data := writeTemp(t, "iris.csv", irisCSV)

	_, err := run(t, "classify", "--data", data)
	assert.Error(t, err)
}

func TestCombineCommand(t *testing.T) {
	input := writeTemp(t, "masses.json", `{
		"frame": ["A", "B", "C"],
		"assignments": [
			{"A": 0.6, "B": 0.1, "Omega": 0.3},
			{"A": 0.5, "C": 0.2, "Omega": 0.3}
		]
	}`)

	out, err := run(t, "combine", input)
	require.NoError(t, err)

	var resp struct {
		Masses map[string]float64 `json:"masses"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.InDelta(t, 0.63/0.81, resp.Masses["A"], 1e-9)
}

func TestCombineCommandTotalConflict(t *testing.T) {
	input := writeTemp(t, "conflict.json", `{
		"frame": ["A", "B"],
		"assignments": [{"A": 1, "Omega": 0}, {"B": 1, "Omega": 0}]
	}`)

	_, err := run(t, "combine", input)
	assert.ErrorContains(t, err, "total conflict")
}

func TestCombineCommandRejectsInvalidMass(t *testing.T) {
	input := writeTemp(t, "bad.json", `{
		"frame": ["A", "B"],
		"assignments": [{"A": -0.5, "Omega": 1.5}, {"B": 2, "Omega": -1}]
	}`)

	_, err := run(t, "combine", input)
	assert.ErrorIs(t, err, domain.ErrInvalidMass)
	assert.ErrorContains(t, err, "assignment 0")
}

func TestProfileCommand(t *testing.T) {
	data := writeTemp(t, "iris.csv", irisCSV)

	out, err := run(t, "profile", "--data", data)
	require.NoError(t, err)
	assert.Contains(t, out, `"dimension": "petal-width"`)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, buildconfig.String()+"\n", out)
}
