// Package main provides a performance benchmarking tool for the Integral CLI.
// It generates synthetic financial, media and reputation sources of increasing
// size, times the rank command with history disabled and with a SQLite history
// store, and writes the timings to CSV for documentation.
//
// Prerequisites:
// - integral binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory for the generated sources and history database
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// BenchmarkResult holds the timings for one dataset size.
type BenchmarkResult struct {
	Companies   int
	Command     string
	NoHistory   string
	ColdHistory string
	WarmHistory string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir        string
	Timeout        time.Duration
	Runs           int
	Sizes          []int
	ColumnsPerFile int
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:        os.Args[1],
		Timeout:        5 * time.Minute,
		Runs:           4,
		Sizes:          []int{1_000, 10_000, 100_000},
		ColumnsPerFile: 4,
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the integral binary and the work directory exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("integral"); err != nil {
		return fmt.Errorf("integral binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// runBenchmarks generates each dataset and times rank and merge against it.
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: sizes %v, %v timeout, %d runs per phase\n", config.Sizes, config.Timeout, config.Runs)

	for _, size := range config.Sizes {
		dir := filepath.Join(config.WorkDir, fmt.Sprintf("companies-%d", size))
		sources, err := generateSources(dir, size, config.ColumnsPerFile)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %d companies: %w", size, err)
		}
		fmt.Printf("Benchmarking %d companies\n", size)

		for _, command := range []string{"rank", "merge"} {
			results = append(results, runBenchmarkSuite(config, dir, size, command, sources))
		}
	}

	return results, nil
}

// generateSources writes three synthetic sources. Media covers 90% of the
// companies and reputation 75%, so the join exercises missing rows.
func generateSources(dir string, companies, columns int) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(uint64(companies), 42))

	specs := []struct {
		flag     string
		file     string
		prefix   []string
		coverage float64
	}{
		{"-F", "financial.csv", []string{"revenue", "profit", "growth"}, 1.0},
		{"-M", "media.csv", []string{"mentions", "sentiment", "positive_share"}, 0.9},
		{"-R", "reputation.csv", []string{"survey", "nps", "controversies"}, 0.75},
	}

	var args []string
	for _, spec := range specs {
		path := filepath.Join(dir, spec.file)
		if err := writeSource(path, rng, companies, columns, spec.prefix, spec.coverage); err != nil {
			return nil, err
		}
		args = append(args, spec.flag, path)
	}
	return args, nil
}

func writeSource(path string, rng *rand.Rand, companies, columns int, prefix []string, coverage float64) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	writer := csv.NewWriter(file)
	header := []string{"company"}
	for c := range columns {
		header = append(header, fmt.Sprintf("%s_%d", prefix[c%len(prefix)], c))
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := range companies {
		if rng.Float64() > coverage {
			continue
		}
		record := []string{fmt.Sprintf("Company %06d", i)}
		for range columns {
			if rng.IntN(50) == 0 {
				record = append(record, "NA")
				continue
			}
			record = append(record, strconv.FormatFloat(rng.NormFloat64()*100+500, 'f', 2, 64))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// runBenchmarkSuite times a command without history, then with a fresh SQLite history store.
func runBenchmarkSuite(config BenchmarkConfig, dir string, size int, command string, sources []string) BenchmarkResult {
	fmt.Printf("Running %s on %d companies\n", command, size)

	args := append([]string{command, "--output", "csv", "--output-file", filepath.Join(dir, command+".csv")}, sources...)

	times := runBenchmark(config, append(args, "--analysis-backend", "none"))
	noHistory := average(times)

	dbPath := filepath.Join(dir, "history.db")
	_ = os.Remove(dbPath)
	times = runBenchmark(config, append(args, "--analysis-backend", "sqlite", "--analysis-db-connect", dbPath))

	coldTime := "TIMEOUT"
	warm := "TIMEOUT"
	if len(times) > 0 {
		coldTime = fmt.Sprintf("%.3fs", times[0])
		warm = average(times[1:])
	}

	fmt.Printf("  No-history average: %s, Cold time: %s, Warm average: %s\n", noHistory, coldTime, warm)

	return BenchmarkResult{
		Companies:   size,
		Command:     command,
		NoHistory:   noHistory,
		ColdHistory: coldTime,
		WarmHistory: warm,
	}
}

// runBenchmark executes integral repeatedly and returns the durations of successful runs.
func runBenchmark(config BenchmarkConfig, args []string) []float64 {
	var times []float64
	for range config.Runs {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "integral", args...).CombinedOutput()
		elapsed := time.Since(start).Seconds()
		cancel()

		if err != nil {
			fmt.Printf("  run failed: %v\n%s\n", err, output)
			continue
		}
		times = append(times, elapsed)
	}
	return times
}

func average(times []float64) string {
	if len(times) == 0 {
		return "TIMEOUT"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/integral_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"companies", "cmd", "no_history_avg", "cold_history", "warm_history_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		record := []string{strconv.Itoa(result.Companies), result.Command, result.NoHistory, result.ColdHistory, result.WarmHistory}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, command := range []string{"rank", "merge"} {
		fmt.Printf("%s:\n", command)
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %8d companies: No-history: %s, Cold: %s, Warm: %s\n", result.Companies, result.NoHistory, result.ColdHistory, result.WarmHistory)
			}
		}
	}
}
