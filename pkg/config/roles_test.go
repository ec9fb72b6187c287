package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tabula/pkg/errs"
	"tabula/pkg/exampleset"
	"tabula/pkg/table"
)

const rolesFile = `
label: play
weight: w
special:
  cluster: outlook
nominal: [outlook, windy, play]
dates: [day]
`

const data = `day,outlook,temperature,windy,play,w
2021-03-01,sunny,85,false,no,1
2021-03-02,overcast,83,false,yes,2
`

func TestLoadAndApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rolesFile), 0o600))

	roles, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "play", roles.Label)
	require.Equal(t, map[string]string{"cluster": "outlook"}, roles.Special)

	params := roles.DataParameters("")
	params.Reader = strings.NewReader(data)
	loaded, dataErrors, err := table.ReadCSV(params)
	require.NoError(t, err)
	require.Empty(t, dataErrors)
	require.True(t, loaded.FindAttribute("outlook").IsNominal())
	require.True(t, loaded.FindAttribute("day").IsDate())
	require.True(t, loaded.FindAttribute("w").IsNumerical())

	es := exampleset.New(loaded)
	require.NoError(t, roles.Apply(es))
	require.Equal(t, "[day, temperature, windy, label := play, weight := w, cluster := outlook]", es.String())
	require.Equal(t, 2.0, es.Example(1).Weight())
}

func TestLoad_Empty(t *testing.T) {
	roles, err := Load("")
	require.NoError(t, err)
	es := exampleset.New(table.NewMemoryTable())
	require.NoError(t, roles.Apply(es))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("label: [unterminated"))
	require.ErrorIs(t, err, errs.ErrMalformedInput)

	_, err = Parse([]byte("special:\n  cluster: \"\"\n"))
	require.ErrorIs(t, err, errs.ErrMalformedInput)

	roles, err := Parse([]byte("label: missing\n"))
	require.NoError(t, err)
	es := exampleset.New(table.NewMemoryTable())
	require.ErrorIs(t, roles.Apply(es), errs.ErrLookup)
}
