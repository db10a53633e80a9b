package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"stundenplan/pkg/engine"
	"stundenplan/pkg/model"
)

var (
	inputFile  string
	outputFile string
	configFile string
	seed       int64
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:   "stundenplan",
		Short: "School timetable generator",
		Long: "Generates weekly school timetables from a JSON roster of classes,\n" +
			"lessons and teacher availabilities using a hybrid evolutionary search.",
		SilenceUsage: true,
	}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "generate a timetable from a JSON roster",
		RunE:  runGenerate,
	}
	generate.Flags().StringVarP(&inputFile, "file", "f", "", "path to the input roster (JSON)")
	generate.Flags().StringVarP(&outputFile, "out", "o", "", "path to the file where the timetable will be written; if empty, it'll be written into the Standard Output")
	generate.Flags().StringVarP(&configFile, "config", "c", "", "optional engine configuration file (JSON, YAML or TOML)")
	generate.Flags().Int64Var(&seed, "seed", 1, "root seed of the search; identical inputs and seed reproduce the timetable")
	generate.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	_ = generate.MarkFlagRequired("file")
	root.AddCommand(generate)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	config, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("cannot load engine configuration: %w", err)
	}
	config.Seed = seed

	input, err := model.InputFromJson(inputFile)
	if err != nil {
		return fmt.Errorf("cannot parse input file: %w", err)
	}
	roster, err := input.ToRoster()
	if err != nil {
		return fmt.Errorf("invalid roster: %w", err)
	}

	scheduler, err := engine.NewScheduler(config, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := scheduler.Generate(ctx, roster)
	if err != nil {
		var infeasible *engine.InfeasibleError
		if errors.As(err, &infeasible) {
			for _, issue := range infeasible.Issues {
				logger.Error("infeasible input", zap.Stringer("issue", issue))
			}
		}
		return err
	}

	logger.Info("generation finished",
		zap.Stringer("outcome", result.Outcome),
		zap.Float64("cost", result.Cost),
		zap.Int("iterations", result.Iterations),
		zap.Int("evaluations", result.Evaluations),
		zap.Duration("duration", result.Duration))

	for _, violation := range result.Violations {
		logger.Warn("residual violation", zap.Stringer("violation", violation))
	}

	if err := writeTimetable(roster, result.Timetable); err != nil {
		return err
	}

	if result.Outcome == engine.Exhausted {
		return fmt.Errorf("timetable has %v residual violations; best effort written", len(result.Violations))
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Encoding = "console"
	if verbose {
		zapConfig = zap.NewDevelopmentConfig()
	}
	return zapConfig.Build()
}

// loadConfig layers the engine defaults, an optional configuration file and
// STUNDENPLAN_-prefixed environment variables.
func loadConfig(file string) (engine.Config, error) {
	defaults := engine.DefaultConfig()

	v := viper.New()
	v.SetDefault("initialPoolSize", defaults.InitialPoolSize)
	v.SetDefault("maxESIterations", defaults.MaxESIterations)
	v.SetDefault("sigma", defaults.Sigma)
	v.SetDefault("sigmaDecay", defaults.SigmaDecay)
	v.SetDefault("minSigma", defaults.MinSigma)
	v.SetDefault("maxStagnantIterations", defaults.MaxStagnantIterations)
	v.SetDefault("temperature", defaults.Temperature)
	v.SetDefault("coolingRate", defaults.CoolingRate)
	v.SetDefault("minTemperature", defaults.MinTemperature)
	v.SetEnvPrefix("stundenplan")
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return engine.Config{}, err
		}
	}

	config := engine.Config{Seed: defaults.Seed}
	if err := v.Unmarshal(&config); err != nil {
		return engine.Config{}, err
	}
	return config, nil
}

type timetableEntry struct {
	Day      int      `json:"day"`
	Period   int      `json:"period"`
	Subject  string   `json:"subject"`
	Teachers []string `json:"teachers"`
}

func writeTimetable(roster *model.Roster, timetable *model.Timetable) error {
	perClass := make(map[string][]timetableEntry, len(roster.Classes))
	for i, occurrence := range roster.Occurrences() {
		lesson := roster.Lesson(occurrence)
		slot := timetable.Slot(i)
		className := roster.Classes[occurrence.Class].Name
		perClass[className] = append(perClass[className], timetableEntry{
			Day:      slot.Day,
			Period:   slot.Period,
			Subject:  lesson.Subject(),
			Teachers: lesson.TeacherNames(),
		})
	}

	for _, entries := range perClass {
		slices.SortFunc(entries, func(a, b timetableEntry) int {
			if a.Day != b.Day {
				return a.Day - b.Day
			}
			return a.Period - b.Period
		})
	}

	timetableJson, err := json.MarshalIndent(perClass, "", "  ")
	if err != nil {
		return fmt.Errorf("an error occurred while building output json: %w", err)
	}

	if outputFile == "" {
		fmt.Println(string(timetableJson))
		return nil
	}
	return os.WriteFile(outputFile, timetableJson, 0666)
}
