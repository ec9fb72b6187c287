package exampleset

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tabula/pkg/attribute"
	"tabula/pkg/errs"
	"tabula/pkg/statistics"
	"tabula/pkg/table"
)

const golf = `outlook,temperature,humidity,windy,play,w
sunny,85,85,false,no,1
sunny,80,90,true,no,1
overcast,83,86,false,yes,2
rain,70,96,false,yes,1
rain,68,?,false,yes,1
rain,65,70,true,no,1
overcast,64,65,true,yes,2
sunny,72,95,false,no,1
`

func loadGolf(t *testing.T) *ExampleSet {
	data, dataErrors, err := table.ReadCSV(table.DataParameters{
		Reader:         strings.NewReader(golf),
		NominalColumns: table.NewSet("outlook", "windy", "play"),
	})
	require.NoError(t, err)
	require.Empty(t, dataErrors)
	return New(data)
}

func TestExampleSet_New(t *testing.T) {
	es := loadGolf(t)
	require.Equal(t, 8, es.Size())
	require.Equal(t, []string{"outlook", "temperature", "humidity", "windy", "play", "w"}, es.Attributes().RegularNames())

	es.Attributes().SetLabel(es.Attributes().Get("play"))
	require.Equal(t, 5, es.Attributes().Size())
	require.Equal(t, "[outlook, temperature, humidity, windy, w, label := play]", es.String())
}

func TestExample_Values(t *testing.T) {
	es := loadGolf(t)
	attributes := es.Attributes()
	outlook := attributes.Get("outlook")
	humidity := attributes.Get("humidity")
	attributes.SetLabel(attributes.Get("play"))

	e := es.Example(4)
	value, err := e.NominalValue(outlook)
	require.NoError(t, err)
	require.Equal(t, "rain", value)

	_, err = e.NominalValue(humidity)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)

	_, err = e.NumericalValue(outlook)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)

	missing, err := e.NumericalValue(humidity)
	require.NoError(t, err)
	require.True(t, math.IsNaN(missing))
	require.Equal(t, "?", e.ValueAsString(humidity))

	label, ok := e.Label()
	require.True(t, ok)
	require.Equal(t, "yes", attributes.Label().Format(label))

	_, ok = e.PredictedLabel()
	require.False(t, ok)
	_, ok = e.ID()
	require.False(t, ok)
	require.Equal(t, 1.0, e.Weight())
	_, ok = e.Confidence("yes")
	require.False(t, ok)
	require.ErrorIs(t, e.SetPredictedLabel(0), errs.ErrLookup)

	temperature, err := e.ValueByName("temperature")
	require.NoError(t, err)
	require.Equal(t, 68.0, temperature)
	_, err = e.ValueByName("pressure")
	require.ErrorIs(t, err, errs.ErrLookup)

	require.Equal(t, "[rain, 68, ?, false, 1, yes]", e.String())
}

func TestExample_SetValues(t *testing.T) {
	es := loadGolf(t)
	outlook := es.Attributes().Get("outlook")
	e := es.Example(0)

	require.NoError(t, e.SetNominalValue(outlook, "snow"))
	require.Equal(t, 3.0, e.Value(outlook))
	require.Equal(t, []string{"sunny", "overcast", "rain", "snow"}, outlook.Mapping().Values())

	require.NoError(t, e.SetNominalValue(outlook, "?"))
	require.True(t, math.IsNaN(e.Value(outlook)))

	require.ErrorIs(t, e.SetNominalValue(es.Attributes().Get("humidity"), "high"), errs.ErrTypeMismatch)

	prediction := attribute.NewNominal("prediction(play)", "yes", "no")
	es.AddAttribute(prediction)
	es.Attributes().SetPredictedLabel(prediction)
	confidence := attribute.NewNumerical("confidence(yes)")
	es.AddAttribute(confidence)
	es.Attributes().SetConfidence("yes", confidence)

	require.NoError(t, e.SetPredictedLabel(1))
	require.NoError(t, e.SetConfidence("yes", 0.25))
	predicted, ok := e.PredictedLabel()
	require.True(t, ok)
	require.Equal(t, 1.0, predicted)
	c, ok := e.Confidence("yes")
	require.True(t, ok)
	require.Equal(t, 0.25, c)

	// Values written through one example are visible through every view of the table.
	clone := es.Clone()
	c, _ = clone.Example(0).Confidence("yes")
	require.Equal(t, 0.25, c)
}

func TestExample_DateValue(t *testing.T) {
	day := attribute.New("day", attribute.Date)
	count := attribute.NewNumerical("count")
	data := table.NewMemoryTable(day, count)
	when := time.Date(2021, 3, 14, 0, 0, 0, 0, time.UTC)
	data.AddRow(attribute.DateToValue(when), 3)
	data.AddRow(math.NaN(), 4)
	es := New(data)

	value, ok, err := es.Example(0).DateValue(day)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, when, value)

	_, ok, err = es.Example(1).DateValue(day)
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = es.Example(0).DateValue(count)
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
}

func TestExampleSet_Iterator(t *testing.T) {
	es := loadGolf(t)
	temperature := es.Attributes().Get("temperature")
	sum := 0.0
	n := 0
	for reader := es.Iterator(); ; {
		e, ok := reader.Next()
		if !ok {
			break
		}
		sum += e.Value(temperature)
		n++
	}
	require.Equal(t, 8, n)
	require.Equal(t, 587.0, sum)
}

func TestExampleSet_CloneIndependence(t *testing.T) {
	es := loadGolf(t)
	es.Attributes().SetLabel(es.Attributes().Get("play"))
	before := es.String()

	clone := es.Clone()
	clone.Attributes().RemoveAttribute(clone.Attributes().Get("outlook"))
	clone.Attributes().SetWeight(clone.Attributes().Get("w"))
	clone.Attributes().SetLabel(nil)

	require.Equal(t, before, es.String())
	require.Equal(t, 5, es.Attributes().Size())
	require.Equal(t, 3, clone.Attributes().Size())
	require.Equal(t, es.Table(), clone.Table())
}

func TestExampleSet_RandomSplit(t *testing.T) {
	es := loadGolf(t)
	temperature := es.Attributes().Get("temperature")
	splits, err := es.RandomSplit(rand.New(rand.NewSource(42)), 5, 3)
	require.NoError(t, err)
	require.Len(t, splits, 2)
	require.Equal(t, 5, splits[0].Size())
	require.Equal(t, 3, splits[1].Size())

	var values []float64
	for _, split := range splits {
		for i := 0; i < split.Size(); i++ {
			values = append(values, split.Example(i).Value(temperature))
		}
	}
	sort.Float64s(values)
	require.Equal(t, []float64{64, 65, 68, 70, 72, 80, 83, 85}, values)

	shuffled := es.Shuffle(rand.New(rand.NewSource(1)))
	require.Equal(t, es.Size(), shuffled.Size())
}

func TestExampleSet_RandomSplitSizes(t *testing.T) {
	es := loadGolf(t)
	rnd := rand.New(rand.NewSource(42))

	_, err := es.RandomSplit(rnd, 5, 4)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	_, err = es.RandomSplit(rnd, 3, -1)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	splits, err := es.RandomSplit(rnd, 8, 0)
	require.NoError(t, err)
	require.Equal(t, 8, splits[0].Size())
	require.Equal(t, 0, splits[1].Size())
}

func TestExampleSet_Statistics(t *testing.T) {
	es := loadGolf(t)
	attributes := es.Attributes()
	humidity := attributes.Get("humidity")
	outlook := attributes.Get("outlook")
	es.RecalculateAttributeStatistics()

	require.Equal(t, 1.0, es.Statistics(humidity, statistics.Unknown, ""))
	require.Equal(t, 65.0, es.Statistics(humidity, statistics.Minimum, ""))
	require.Equal(t, 96.0, es.Statistics(humidity, statistics.Maximum, ""))
	require.InDelta(t, 587.0/7.0, es.Statistics(humidity, statistics.Average, ""), 1e-9)

	require.Equal(t, 0.0, es.Statistics(outlook, statistics.Mode, ""))
	require.Equal(t, 3.0, es.Statistics(outlook, statistics.Count, "rain"))
	require.True(t, math.IsNaN(es.Statistics(outlook, statistics.Average, "")))

	unknown := attribute.NewNumerical("unknown")
	require.True(t, math.IsNaN(es.Statistics(unknown, statistics.Average, "")))
}

func TestExampleSet_WeightedStatistics(t *testing.T) {
	es := loadGolf(t)
	attributes := es.Attributes()
	attributes.SetWeight(attributes.Get("w"))
	outlook := attributes.Get("outlook")
	temperature := attributes.Get("temperature")
	es.RecalculateAttributeStatistics(outlook, temperature)

	// overcast appears twice with weight 2
	require.Equal(t, 1.0, es.Statistics(outlook, statistics.Mode, ""))
	require.Equal(t, 4.0, es.Statistics(outlook, statistics.Count, "overcast"))
	require.InDelta(t, 734.0/10.0, es.Statistics(temperature, statistics.AverageWeighted, ""), 1e-9)
}

func TestExampleSet_StatisticsOnSplit(t *testing.T) {
	es := loadGolf(t)
	temperature := es.Attributes().Get("temperature")
	splits, err := es.RandomSplit(rand.New(rand.NewSource(3)), 4, 4)
	require.NoError(t, err)
	total := 0.0
	for _, split := range splits {
		split.RecalculateAttributeStatistics(temperature)
		total += split.Statistics(temperature, statistics.Sum, "")
	}
	require.Equal(t, 587.0, total)
}

func TestExampleSet_WriteCSV(t *testing.T) {
	es := loadGolf(t)
	es.Attributes().SetLabel(es.Attributes().Get("play"))
	splits, err := es.RandomSplit(rand.New(rand.NewSource(42)), 2)
	require.NoError(t, err)
	var out strings.Builder
	require.NoError(t, table.WriteCSV(&out, splits[0].Attributes().All(), splits[0]))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, 3, len(lines))
	require.Equal(t, "outlook,temperature,humidity,windy,w,play", lines[0])
}
