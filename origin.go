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

package dguard

import (
	"runtime"
	"strconv"
	"strings"
)

// Origin is an opaque source-location token, usually "pkg/file.go:line".
//
// It identifies where a record was constructed, which is not necessarily
// where the failure happened; a record wrapping a cause points at the
// wrapping site, and the chain points at the rest. Treat the value as
// opaque: the format is for humans reading logs, not for parsing.
type Origin string

// String returns the token as a plain string.
func (o Origin) String() string { return string(o) }

// captureOrigin captures the file:line of the frame skip levels above the
// caller. Only a single frame is captured; full stack traces are the cause
// chain's job, and one frame keeps construction cheap enough for hot paths.
func captureOrigin(skip int) Origin {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return Origin(shortFile(file) + ":" + strconv.Itoa(line))
}

// shortFile trims a full build path down to its last two elements, e.g.
// "/home/x/src/dguard/contract/engine.go" -> "contract/engine.go". Tokens
// stay short and do not leak the build root.
func shortFile(file string) string {
	i := strings.LastIndexByte(file, '/')
	if i < 0 {
		return file
	}
	j := strings.LastIndexByte(file[:i], '/')
	if j < 0 {
		return file
	}
	return file[j+1:]
}
