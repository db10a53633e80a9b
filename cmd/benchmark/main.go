package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"stundenplan/pkg/engine"
	"stundenplan/pkg/model"
)

var (
	poolSizes = []int{8, 16, 32}
	sigmas    = []float64{0.1, 0.2, 0.4}
)

// Benchmarks the engine over a roster file: every pool-size/sigma combination
// is run with several seeds and the per-run outcomes are collected into a CSV
// for comparison.
func main() {
	filePtr := flag.String("file", "", "path to the input roster (JSON)")
	outPtr := flag.String("out", "benchmark.csv", "path of the CSV report")
	runsPtr := flag.Int("runs", 5, "seeds per parameter combination")
	flag.Parse()

	if *filePtr == "" {
		log.Fatal("an input file must be specified")
	}

	input, err := model.InputFromJson(*filePtr)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	roster, err := input.ToRoster()
	if err != nil {
		log.Fatalf("invalid roster: %v", err)
	}

	records := [][]string{{
		"pool", "sigma", "seed", "outcome", "cost", "violations", "iterations", "evaluations", "duration_ms",
	}}

	for _, pool := range poolSizes {
		for _, sigma := range sigmas {
			for seed := 0; seed < *runsPtr; seed++ {
				fmt.Printf("Benchmarking pool %v, sigma %v, seed %v\n", pool, sigma, seed)

				config := engine.DefaultConfig()
				config.InitialPoolSize = pool
				config.Sigma = sigma
				config.Seed = int64(seed)

				scheduler, err := engine.NewScheduler(config, nil)
				if err != nil {
					log.Fatalf("cannot initialize scheduler: %v", err)
				}

				result, err := scheduler.Generate(context.Background(), roster)
				if err != nil {
					log.Fatalf("generation failed: %v", err)
				}

				records = append(records, []string{
					strconv.Itoa(pool),
					strconv.FormatFloat(sigma, 'f', -1, 64),
					strconv.Itoa(seed),
					result.Outcome.String(),
					strconv.FormatFloat(result.Cost, 'f', 3, 64),
					strconv.Itoa(len(result.Violations)),
					strconv.Itoa(result.Iterations),
					strconv.Itoa(result.Evaluations),
					strconv.FormatInt(result.Duration.Milliseconds(), 10),
				})
			}
		}
	}

	file, err := os.Create(*outPtr)
	if err != nil {
		log.Fatalf("cannot create report file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		log.Fatalf("cannot write report: %v", err)
	}
}
