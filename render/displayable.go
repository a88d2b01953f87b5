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

package render

import "fmt"

// Kind tells which shape a Displayable has.
type Kind int

const (
	KindPlaceholder Kind = iota
	KindText
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindPlaceholder:
		return "placeholder"
	case KindText:
		return "text"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Displayable is one unit of output handed to a host: a placeholder, a piece
// of text or a list of keyed items.
type Displayable struct {
	Kind  Kind   `json:"kind"`
	Text  string `json:"text,omitempty"`
	Items []Item `json:"items,omitempty"`
}

// Item is one entry of a list.  Key identifies the entry, Text is what is shown.
type Item struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Placeholder returns a placeholder showing text.
func Placeholder(text string) Displayable {
	return Displayable{Kind: KindPlaceholder, Text: text}
}

// Text returns plain text.
func Text(text string) Displayable {
	return Displayable{Kind: KindText, Text: text}
}

// List returns a list container holding items.  A list with no items is still
// a list.
func List(items ...Item) Displayable {
	return Displayable{Kind: KindList, Items: items}
}

func (d Displayable) String() string {
	switch d.Kind {
	case KindList:
		return fmt.Sprintf("list(%d items)", len(d.Items))
	default:
		return fmt.Sprintf("%s(%q)", d.Kind, d.Text)
	}
}
