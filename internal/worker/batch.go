package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/filterize/credengine/internal/model"
)

// Analyzer scores one content sample. Satisfied by engine.Engine.
type Analyzer interface {
	AnalyzeInput(ctx context.Context, input string, ct model.ContentType) (*model.CredibilityResult, error)
}

// AnalyzeJob scores a single input line.
type AnalyzeJob struct {
	Input       string
	ContentType model.ContentType
	Analyzer    Analyzer
}

// Execute runs the analysis job.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	result, err := j.Analyzer.AnalyzeInput(ctx, j.Input, j.ContentType)
	return &AnalyzeResult{
		Input:  j.Input,
		Result: result,
		Error:  err,
	}
}

// AnalyzeResult pairs an input with its credibility result.
type AnalyzeResult struct {
	Input  string
	Result *model.CredibilityResult
	Error  error
}

// GetError returns the error from the analysis.
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes multiple inputs concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessInputs analyzes the inputs concurrently. Result order follows
// completion, not submission.
func (b *BatchProcessor) ProcessInputs(ctx context.Context, inputs []string, ct model.ContentType) []*AnalyzeResult {
	if len(inputs) == 0 {
		return []*AnalyzeResult{}
	}

	pool := NewPoolContext(ctx, b.concurrency)
	pool.Start()

	for _, input := range inputs {
		pool.Submit(&AnalyzeJob{
			Input:       input,
			ContentType: ct,
			Analyzer:    b.analyzer,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessFile reads inputs from a file (one per line) and analyzes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, ct model.ContentType) ([]*AnalyzeResult, error) {
	inputs, err := ReadInputsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}

	return b.ProcessInputs(ctx, inputs, ct), nil
}

// ReadInputsFromFile reads one input per line, skipping blanks, comments
// and duplicates.
func ReadInputsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var inputs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			inputs = append(inputs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return inputs, nil
}
