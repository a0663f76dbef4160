// MIT License
//
// Copyright 2024 Hive Tools Contributors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package hive

import (
	"strings"

	"github.com/google/uuid"
)

// NewPermlink derives a URL-safe permlink from a post title: lowercased,
// with every run of characters outside [a-z0-9] collapsed into a single
// dash, leading and trailing dashes trimmed, and the result truncated to the
// chain's limit. An empty or all-symbol title yields "post".
func NewPermlink(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	dash := true // swallow leading dashes
	for _, r := range strings.ToLower(title) {
		switch {
		case 'a' <= r && r <= 'z' || '0' <= r && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	permlink := strings.TrimRight(b.String(), "-")
	if permlink == "" {
		permlink = "post"
	}
	if len(permlink) > MaxPermlinkLen {
		permlink = strings.TrimRight(permlink[:MaxPermlinkLen], "-")
	}
	return permlink
}

// permlinkSuffixLen is how many hex characters of the random UUID are kept.
const permlinkSuffixLen = 8

// NewPermlinkSuffixed is NewPermlink plus a random suffix, so that repeated
// posts with the same title get distinct permlinks.
func NewPermlinkSuffixed(title string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:permlinkSuffixLen]
	permlink := NewPermlink(title)
	maxBase := MaxPermlinkLen - permlinkSuffixLen - 1
	if len(permlink) > maxBase {
		permlink = strings.TrimRight(permlink[:maxBase], "-")
	}
	return permlink + "-" + suffix
}
