package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tabula/pkg/config"
	"tabula/pkg/construction"
	"tabula/pkg/evaluation"
	"tabula/pkg/exampleset"
	"tabula/pkg/statistics"
	"tabula/pkg/table"
	"tabula/pkg/weights"
)

type dataFlags struct {
	inputFile      string
	rolesFile      string
	nominalColumns []string
	dateColumns    []string
	label          string
}

func (f *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.inputFile, "input", "i", "", "name of CSV data file")
	cmd.Flags().StringVarP(&f.rolesFile, "roles", "r", "", "YAML file with column roles and types (optional)")
	cmd.Flags().StringSliceVarP(&f.nominalColumns, "nominal-columns", "", nil, "list of columns holding nominal data")
	cmd.Flags().StringSliceVarP(&f.dateColumns, "date-columns", "", nil, "list of columns holding dates")
	cmd.Flags().StringVarP(&f.label, "label", "t", "", "label column, overrides the roles file")
	_ = cmd.MarkFlagRequired("input")
}

func (f *dataFlags) load() (*exampleset.ExampleSet, error) {
	roles, err := config.Load(f.rolesFile)
	if err != nil {
		return nil, err
	}
	roles.Nominal = append(roles.Nominal, f.nominalColumns...)
	roles.Dates = append(roles.Dates, f.dateColumns...)
	if f.label != "" {
		roles.Label = f.label
	}

	data, dataErrors, err := table.ReadCSV(roles.DataParameters(f.inputFile))
	if err != nil {
		return nil, fmt.Errorf("error loading data from %s: %w", f.inputFile, err)
	}
	table.LogDataErrors(dataErrors)
	if data.Size() == 0 {
		log.Warn().Str("File", f.inputFile).Msg("no examples loaded")
	}

	es := exampleset.New(data)
	if err := roles.Apply(es); err != nil {
		return nil, err
	}
	log.Debug().Int("Examples", es.Size()).Str("Attributes", es.String()).Msg("loaded data")
	return es, nil
}

func createOutput(outputFile string, fallback io.Writer) (io.Writer, func(), error) {
	if outputFile == "" {
		return fallback, func() {}, nil
	}
	file, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening output file %s: %w", outputFile, err)
	}
	return file, func() { file.Close() }, nil
}

func StatsCommand() *cobra.Command {
	var data dataFlags

	var cmd = &cobra.Command{
		Use:   "stats -i dataFile [-r rolesFile]",
		Short: "Prints the statistics of every attribute of the data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			es, err := data.load()
			if err != nil {
				return err
			}
			es.RecalculateAttributeStatistics()
			writeStatistics(cmd.OutOrStdout(), es)
			return nil
		},
	}
	data.register(cmd)
	return cmd
}

func writeStatistics(out io.Writer, es *exampleset.ExampleSet) {
	for it := es.Attributes().AllRoles(); it.HasNext(); {
		role := it.Next()
		a := role.Attribute()
		fields := []string{a.Name(), a.ValueType().String()}
		if role.IsSpecial() {
			fields = append(fields, "role="+role.SpecialName())
		}
		fields = append(fields, fmt.Sprintf("%s=%g", statistics.Unknown, es.Statistics(a, statistics.Unknown, "")))
		switch {
		case a.IsNominal():
			for _, name := range []string{statistics.Mode, statistics.Least} {
				fields = append(fields, name+"="+a.Format(es.Statistics(a, name, "")))
			}
			for _, value := range a.Mapping().Values() {
				fields = append(fields, fmt.Sprintf("%s[%s]=%g", statistics.Count, value, es.Statistics(a, statistics.Count, value)))
			}
		case a.IsDate():
			for _, name := range []string{statistics.Minimum, statistics.Maximum} {
				fields = append(fields, name+"="+a.Format(es.Statistics(a, name, "")))
			}
		default:
			for _, name := range []string{statistics.Average, statistics.Variance, statistics.Minimum, statistics.Maximum} {
				fields = append(fields, fmt.Sprintf("%s=%g", name, es.Statistics(a, name, "")))
			}
		}
		fmt.Fprintln(out, strings.Join(fields, "\t"))
	}
}

func WeightsCommand() *cobra.Command {
	var data dataFlags
	var outputFile string
	var normalize bool
	var sortOrder string
	var absolute bool

	var cmd = &cobra.Command{
		Use:   "weights -i dataFile -t label [-o weightsFile]",
		Short: "Weights the attributes by their correlation with the label",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			es, err := data.load()
			if err != nil {
				return err
			}
			w, err := weights.ByCorrelation(es)
			if err != nil {
				return err
			}
			if normalize {
				w.Normalize()
			}
			switch sortOrder {
			case "none":
				w.SortType = weights.NoSorting
			case "increasing":
				w.SortType = weights.Increasing
			case "decreasing":
				w.SortType = weights.Decreasing
			default:
				return fmt.Errorf("invalid sort order %s", sortOrder)
			}
			if absolute {
				w.WeightType = weights.AbsoluteWeights
			}
			for _, name := range w.SortedNames() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%g\n", name, w.Weight(name))
			}
			if outputFile != "" {
				return w.Save(outputFile)
			}
			return nil
		},
	}
	data.register(cmd)
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "name of weights file to write, zstd compressed if it ends in .zst (optional)")
	cmd.Flags().BoolVarP(&normalize, "normalize", "n", false, "scale absolute weights to [0, 1]")
	cmd.Flags().StringVarP(&sortOrder, "sort", "s", "decreasing", "output order: none, increasing or decreasing")
	cmd.Flags().BoolVarP(&absolute, "absolute", "a", true, "sort by absolute weights")
	return cmd
}

func ConstructCommand() *cobra.Command {
	var data dataFlags
	var expression string
	var outputFile string
	var infix bool

	var cmd = &cobra.Command{
		Use:   "construct -i dataFile -e expression [-o outputFile]",
		Short: "Generates new attributes from a construction expression such as \"+(a, b), sqrt(c)\"",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			es, err := data.load()
			if err != nil {
				return err
			}
			result, err := construction.Parse(expression, es.Table())
			if err != nil {
				return err
			}
			if err := construction.Generate(es, result.Generated); err != nil {
				return err
			}
			for _, d := range result.Descriptions {
				log.Info().Str("Attribute", d.Source().Name()).Int("Depth", d.Depth()).Msg(d.Description(infix))
			}

			out, closeOutput, err := createOutput(outputFile, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer closeOutput()
			return table.WriteCSV(out, es.Attributes().All(), es)
		},
	}
	data.register(cmd)
	cmd.Flags().StringVarP(&expression, "expression", "e", "", "construction expression")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "name of CSV output file (optional, uses stdout if not present)")
	cmd.Flags().BoolVarP(&infix, "infix", "", false, "log two argument functions in infix notation")
	_ = cmd.MarkFlagRequired("expression")
	return cmd
}

func EvaluateCommand() *cobra.Command {
	var data dataFlags
	var prediction string
	var outputFile string

	var cmd = &cobra.Command{
		Use:   "evaluate -i dataFile -t label -p prediction [-o outputFile]",
		Short: "Compares the label with a prediction column and reports F1 scores or R-squared",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			es, err := data.load()
			if err != nil {
				return err
			}
			if prediction != "" {
				a := es.Attributes().Get(prediction)
				if a == nil {
					return fmt.Errorf("prediction column %s not found", prediction)
				}
				es.Attributes().SetPredictedLabel(a)
			}

			out, closeOutput, err := createOutput(outputFile, evaluation.NoopWriter{})
			if err != nil {
				return err
			}
			defer closeOutput()
			result, err := evaluation.Evaluate(es, out)
			if err != nil {
				return err
			}
			if result.Classes != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Macro F1: %.3f\nMicro F1: %.3f\n", result.MacroF1, result.MicroF1)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "R-squared: %.3f\n", result.RSquared)
			}
			return nil
		},
	}
	data.register(cmd)
	cmd.Flags().StringVarP(&prediction, "prediction", "p", "", "prediction column, overrides the roles file")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "name of file receiving label,prediction lines (optional)")
	return cmd
}

var logLevel string
var logFormat string

func main() {

	Main := &cobra.Command{Use: "tabula", PersistentPreRun: setupLogging}

	Main.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info", "Logging level: info error or debug")
	Main.PersistentFlags().StringVarP(&logFormat, "log-format", "", "pretty", "Logging format: pretty or json")

	Main.AddCommand(StatsCommand())
	Main.AddCommand(WeightsCommand())
	Main.AddCommand(ConstructCommand())
	Main.AddCommand(EvaluateCommand())

	if err := Main.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) {

	switch logLevel {
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		panic("Invalid logging level specified")
	}

	switch logFormat {
	case "pretty":
		setupPrettyLogging()
	case "json":
	default:
		panic("Invalid log format specified")

	}

}

func setupPrettyLogging() {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	writer.FormatFieldValue = func(i interface{}) string {
		switch v := i.(type) {
		case json.Number:
			val, _ := v.Float64()
			return fmt.Sprintf("%.3f", val)
		default:
			return fmt.Sprintf("%s", i)
		}

	}
	log.Logger = log.Output(writer)

}

