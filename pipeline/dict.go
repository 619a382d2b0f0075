// Copyright 2025 taxifare Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

// vocabulary assigns a dense id to each distinct categorical value in order
// of first appearance.
type vocabulary struct {
	si map[string]int
	is []string
}

func newVocabulary() *vocabulary {
	return &vocabulary{si: map[string]int{}}
}

func vocabularyOf(values []string) *vocabulary {
	v := newVocabulary()
	for i := range values {
		v.Add(values[i])
	}
	return v
}

func (v *vocabulary) Count() int {
	return len(v.is)
}

// Add returns the id of s, assigning the next free id on first sight.
func (v *vocabulary) Add(s string) (y int) {
	if y, ok := v.si[s]; ok {
		return y
	}
	y = len(v.is)
	v.si[s] = y
	v.is = append(v.is, s)
	return
}

// Id returns the id of s, or false if s was never added.
func (v *vocabulary) Id(s string) (int, bool) {
	y, ok := v.si[s]
	return y, ok
}

// Values returns all values ordered by id.
func (v *vocabulary) Values() []string {
	return v.is
}
