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
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestStartProfile(t *testing.T) {
	conf := viper.New()

	s, err := StartProfile(conf)
	require.NoError(t, err)
	require.IsType(t, noOpStopper{}, s)
	s.Stop()

	conf.Set("profile_mode", "disk")
	_, err = StartProfile(conf)
	require.EqualError(t, err, `invalid profile mode: "disk"`)
}
