package table

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tabula/pkg/attribute"
)

const weather = `outlook,temperature,humidity,play
sunny,85,85,no
overcast,83,?,yes
rain,70,96,yes
rain,cold,80,no
sunny,,70,yes
`

func TestReadCSV(t *testing.T) {
	params := DataParameters{
		Reader:         strings.NewReader(weather),
		NominalColumns: NewSet("outlook", "play"),
	}

	data, dataErrors, err := ReadCSV(params)
	require.NoError(t, err)
	require.Equal(t, 4, data.Size())
	require.Equal(t, 1, len(dataErrors)) // Line 5 holds a non numeric temperature
	require.Equal(t, 5, dataErrors[0].Line)

	outlook := data.FindAttribute("outlook")
	require.NotNil(t, outlook)
	require.True(t, outlook.IsNominal())
	require.Equal(t, []string{"sunny", "overcast", "rain"}, outlook.Mapping().Values())

	humidity := data.FindAttribute("humidity")
	require.True(t, humidity.IsNumerical())
	require.True(t, math.IsNaN(data.Row(1).Get(humidity)))

	temperature := data.FindAttribute("temperature")
	require.True(t, math.IsNaN(data.Row(3).Get(temperature)))
	require.Equal(t, 70.0, data.Row(2).Get(temperature))
}

func TestReadCSV_RejectedLineKeepsMapping(t *testing.T) {
	data, dataErrors, err := ReadCSV(DataParameters{
		Reader:         strings.NewReader("c,x\nyes,1\nbogus,notanumber\nno,2,3\n"),
		NominalColumns: NewSet("c"),
	})
	require.NoError(t, err)
	require.Equal(t, 1, data.Size())
	require.Len(t, dataErrors, 2)
	require.Equal(t, []string{"yes"}, data.FindAttribute("c").Mapping().Values())
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, _, err := ReadCSV(DataParameters{DataFile: "does/not/exist.csv"})
	require.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	data, _, err := ReadCSV(DataParameters{
		Reader:         strings.NewReader(weather),
		NominalColumns: NewSet("outlook", "play"),
	})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteCSV(&out, data.Attributes(), data))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, 5, len(lines))
	require.Equal(t, "outlook,temperature,humidity,play", lines[0])
	require.Equal(t, "overcast,83,?,yes", lines[2])
}

func TestMemoryTable_AddAttributeGrowsRows(t *testing.T) {
	a := attribute.NewNumerical("a")
	data := NewMemoryTable(a)
	data.AddRow(1)
	data.AddRow(2)

	b := attribute.NewNumerical("b")
	require.Equal(t, 1, data.AddAttribute(b))
	require.True(t, math.IsNaN(data.Row(0).Get(b)))

	data.Row(1).Set(b, 5)
	require.Equal(t, 5.0, data.Row(1).Get(b))
	require.Equal(t, 2.0, data.Row(1).Get(a))
}

func TestMemoryTable_RemoveAttributeKeepsIndices(t *testing.T) {
	a := attribute.NewNumerical("a")
	b := attribute.NewNumerical("b")
	data := NewMemoryTable(a, b)
	data.AddRow(1, 2)

	data.RemoveAttribute(a)
	require.Nil(t, data.FindAttribute("a"))
	require.Equal(t, []*attribute.Attribute{b}, data.Attributes())
	require.Equal(t, 1, b.TableIndex())
	require.Equal(t, 2.0, data.Row(0).Get(b))
}

func TestDenseRow_UnboundAttribute(t *testing.T) {
	row := NewDenseRow(2)
	unbound := attribute.NewNumerical("free")
	row.Set(unbound, 3)
	require.True(t, math.IsNaN(row.Get(unbound)))
	require.Equal(t, 2, len(row.Values()))
}
