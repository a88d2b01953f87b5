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

// Package users holds the data model returned by the users query.
package users

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// ID identifies a User. Upstream servers send ids either as JSON strings or as
// JSON numbers; both decode to the same string form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	var v interface{}
	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()
	if err := d.Decode(&v); err != nil {
		return errors.Wrap(err, "decoding user id")
	}
	switch v.(type) {
	case string, json.Number:
	default:
		return errors.Errorf("user id must be a string or a number, got %s", b)
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return errors.Wrapf(err, "decoding user id %s", b)
	}
	*id = ID(s)
	return nil
}

func (id ID) String() string {
	return string(id)
}

// User is a snapshot of a user as received from the server.
type User struct {
	ID    ID     `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Age   int    `json:"age" yaml:"age"`
}

// Payload is the data of a users query. Users is nil when the server sent no
// users field (or sent null).
type Payload struct {
	Users []User `json:"users"`
}
