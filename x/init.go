/*
 * Copyright 2026 The gqlview Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package x

import (
	"fmt"
	"runtime"

	"github.com/golang/glog"
)

var (
	// These variables are set using -ldflags
	gqlviewVersion string
	gitBranch      string
	lastCommitSHA  string
	lastCommitTime string
)

// BuildDetails returns a string containing details about the gqlview binary.
func BuildDetails() string {
	return fmt.Sprintf(`
gqlview version  : %v
Commit SHA-1     : %v
Commit timestamp : %v
Branch           : %v
Go version       : %v

`,
		Version(), lastCommitSHA, lastCommitTime, gitBranch, runtime.Version())
}

// PrintVersion prints version and other helpful information if --version.
func PrintVersion() {
	glog.Infof("\n%s\n", BuildDetails())
}

// Version returns a string containing the gqlview version.
func Version() string {
	if gqlviewVersion == "" {
		return "dev"
	}
	return gqlviewVersion
}
