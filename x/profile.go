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
	"runtime"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
	"github.com/spf13/viper"
)

// Stopper ends a profiling session.
type Stopper interface {
	Stop()
}

// StartProfile starts the profile named by the profile_mode config key. An
// empty mode profiles nothing.
func StartProfile(conf *viper.Viper) (Stopper, error) {
	switch mode := conf.GetString("profile_mode"); mode {
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.Quiet), nil
	case "mem":
		return profile.Start(profile.MemProfile, profile.Quiet), nil
	case "mutex":
		return profile.Start(profile.MutexProfile, profile.Quiet), nil
	case "block":
		runtime.SetBlockProfileRate(conf.GetInt("block_rate"))
		return profile.Start(profile.BlockProfile, profile.Quiet), nil
	case "":
		return noOpStopper{}, nil
	default:
		return noOpStopper{}, errors.Errorf("invalid profile mode: %q", mode)
	}
}

type noOpStopper struct{}

func (noOpStopper) Stop() {}
