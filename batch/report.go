/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package batch

import (
	"dirpx.dev/dguard"
	"dirpx.dev/dguard/outcome"
)

// ItemFailure pairs a failed input's position with its record, cause
// chain intact.
type ItemFailure struct {
	Index int
	Err   *dguard.Record
}

// Report is the merged result of one batch run. Each bucket preserves
// input order, and every processed input lands in exactly one bucket.
// A report is finalized when Run returns and must not be modified
// afterwards.
type Report[T any] struct {
	Successes []T
	Failures  []ItemFailure
	Sentinels []int

	// Cancelled marks a partial report: the run stopped on a cancelled
	// context and unprocessed inputs are simply absent.
	Cancelled bool
}

// Counts are the derived tallies of a report.
type Counts struct {
	Successes int
	Failures  int
	Sentinels int

	// Processed is the sum of the three buckets, the number of inputs
	// that fully ran.
	Processed int
}

// Counts derives the report's tallies.
func (r *Report[T]) Counts() Counts {
	c := Counts{
		Successes: len(r.Successes),
		Failures:  len(r.Failures),
		Sentinels: len(r.Sentinels),
	}
	c.Processed = c.Successes + c.Failures + c.Sentinels
	return c
}

// SuccessRate returns the fraction of processed inputs that succeeded,
// 0 when nothing was processed.
func (r *Report[T]) SuccessRate() float64 {
	c := r.Counts()
	if c.Processed == 0 {
		return 0
	}
	return float64(c.Successes) / float64(c.Processed)
}

func (r *Report[T]) record(i int, out outcome.Outcome[T]) {
	switch {
	case out.IsSuccess():
		v, _ := out.Value()
		r.Successes = append(r.Successes, v)
	case out.IsSentinel():
		r.Sentinels = append(r.Sentinels, i)
	default:
		r.Failures = append(r.Failures, ItemFailure{Index: i, Err: out.Err()})
	}
}
