package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/gedkit/pkg/family"
	"github.com/yaklabco/gedkit/pkg/gedcom"
)

// Run discovers the files named by opts and checks them with a pool of
// workers. Every file is indexed, fully assembled and loaded as a family
// tree; unreadable files are reported in their outcome, not as an error
// of the run.
func Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, workCh, outCh, opts.Reader)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts gedcom.Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}
		outcome := CheckFile(ctx, path, opts)
		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// CheckFile reads one file and reports what it contains.
func CheckFile(ctx context.Context, path string, opts gedcom.Options) (outcome FileOutcome) {
	outcome.Path = path

	reader, err := gedcom.Open(path, opts)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			outcome.Error = errors.Join(outcome.Error, closeErr)
		}
	}()

	outcome.Codec = reader.Encoding().Name
	ix, err := reader.Index()
	if err != nil {
		outcome.Error = err
		return outcome
	}
	dialect, err := reader.Dialect()
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Dialect = string(dialect)
	outcome.Records = ix.Len()

	for rec, err := range reader.Records("") {
		if err != nil {
			outcome.Error = err
			return outcome
		}
		if err := ctx.Err(); err != nil {
			outcome.Error = err
			return outcome
		}
		owner := rec.XRef
		if owner == "" {
			owner = rec.Tag
		}
		outcome.Issues = collectIssues(outcome.Issues, rec, owner, ix)
	}

	tree, err := family.Load(ctx, reader)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Individuals = len(tree.Individuals)
	outcome.Families = len(tree.Families)
	outcome.Events = len(tree.Events)
	return outcome
}

func collectIssues(issues []Issue, rec *gedcom.Record, owner string, ix *gedcom.Index) []Issue {
	if rec.DateErr != nil {
		issues = append(issues, Issue{
			Kind:    IssueDate,
			Record:  owner,
			Tag:     rec.Tag,
			Offset:  rec.Offset,
			Message: rec.DateErr.Error(),
		})
	}
	if ref, ok := rec.Ref(); ok {
		if _, found := ix.Lookup(ref); !found {
			issues = append(issues, Issue{
				Kind:    IssuePointer,
				Record:  owner,
				Tag:     rec.Tag,
				Offset:  rec.Offset,
				Message: "no record " + ref,
			})
		}
	}
	for _, sub := range rec.Sub {
		issues = collectIssues(issues, sub, owner, ix)
	}
	return issues
}
