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

// Package hook decouples error production from error reporting.
//
// The runtime's other packages never log. Instead they hand every
// contract violation, sentinel return and failure to a [Hook], which
// stamps it, assigns a severity and fans it out to pluggable sinks.
// Success outcomes are accepted and discarded, so sinks only ever see
// deviations.
//
// # Severity policy
//
// The severity of an event is fixed by policy rather than chosen per
// call:
//
//   - contract violations report as error
//   - sentinel returns report as info
//   - unclassified failures report as error
//   - predicate crashes report as critical
//
// # Sinks
//
// A sink is anything implementing [apis.Sink]. Two are provided:
// [WriterSink] emits JSON lines, [TallySink] keeps running counts. A
// panicking sink is recovered and the event dropped, so a broken sink
// can silence itself but never break the operation being observed.
package hook
