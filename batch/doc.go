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

// Package batch runs an operation over an ordered sequence of inputs,
// isolating per-item failures so one bad item never aborts the rest.
//
// [Run] merges the per-item outcomes into a [Report] with three
// order-preserving buckets: success values, (index, record) failures
// and sentinel indexes. How a failure affects the remaining items is
// the run's [Policy]: continue past it, stop the batch, or retry the
// item a bounded number of times first.
//
// Inputs are independent, so continue and retry batches may run on
// several goroutines via [WithConcurrency]; outcomes land in indexed
// slots and are concatenated by index, which keeps bucket order
// identical to a serial run.
package batch
