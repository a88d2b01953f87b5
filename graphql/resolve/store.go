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

package resolve

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/gqlview/gqlview/users"
)

// defaultSeed is served when no seed file is given.
const defaultSeed = `
users:
  - id: "1"
    name: Ada Lovelace
    email: ada@example.com
    age: 36
  - id: "2"
    name: Alan Turing
    email: alan@example.com
    age: 41
  - id: "3"
    name: Grace Hopper
    email: grace@example.com
    age: 85
  - id: "4"
    name: Edsger Dijkstra
    email: edsger@example.com
    age: 72
`

type seedFile struct {
	Users []users.User `yaml:"users"`
}

// Store holds the users the fixture server answers with.  It is read only
// once built.
type Store struct {
	users []users.User
}

// NewStore returns a store holding us, in order.
func NewStore(us ...users.User) *Store {
	return &Store{users: append([]users.User(nil), us...)}
}

// LoadStore reads a YAML seed from path.  With an empty path the built-in seed
// is used.
func LoadStore(path string) (*Store, error) {
	data := []byte(defaultSeed)
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, errors.Wrapf(err, "while reading seed file %s", path)
		}
	}
	return parseSeed(data)
}

func parseSeed(data []byte) (*Store, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, errors.Wrap(err, "while parsing seed")
	}
	seen := make(map[users.ID]bool, len(seed.Users))
	for i, u := range seed.Users {
		if u.ID == "" {
			return nil, errors.Errorf("seed user %d has no id", i)
		}
		if seen[u.ID] {
			return nil, errors.Errorf("seed user id %q is not unique", u.ID)
		}
		seen[u.ID] = true
	}
	return NewStore(seed.Users...), nil
}

// Users returns the stored users, in seed order.
func (s *Store) Users() []users.User {
	if s == nil {
		return nil
	}
	return append([]users.User(nil), s.users...)
}

// Len is the number of stored users.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.users)
}
