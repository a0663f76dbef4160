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

import "strings"

// Username length limits enforced by the chain.
const (
	MinUsernameLen = 3
	MaxUsernameLen = 16
)

// MaxTagLen is the longest tag the chain accepts.
const MaxTagLen = 24

// MaxPermlinkLen is the longest permlink the chain accepts.
const MaxPermlinkLen = 255

// ValidateUsername checks name against the chain's account naming rules:
// 3 to 16 characters, dot-separated segments of at least 3 characters, each
// starting with a letter, containing only lowercase letters, digits and
// single dashes, and ending with a letter or digit. A ValidationError is
// returned for the first rule violated, before any I/O would be attempted by
// a caller.
func ValidateUsername(name string) error {
	if len(name) < MinUsernameLen || len(name) > MaxUsernameLen {
		return ValidationError{Field: "username",
			Reason: "must be 3 to 16 characters"}
	}
	for _, segment := range strings.Split(name, ".") {
		if err := validateNameSegment(segment); err != nil {
			return err
		}
	}
	return nil
}

func validateNameSegment(segment string) error {
	if len(segment) < MinUsernameLen {
		return ValidationError{Field: "username",
			Reason: "each segment must be at least 3 characters"}
	}
	if !isLower(segment[0]) {
		return ValidationError{Field: "username",
			Reason: "each segment must start with a letter"}
	}
	last := segment[len(segment)-1]
	if !isLower(last) && !isDigit(last) {
		return ValidationError{Field: "username",
			Reason: "each segment must end with a letter or digit"}
	}
	for i := 0; i < len(segment); i++ {
		ch := segment[i]
		if !isLower(ch) && !isDigit(ch) && ch != '-' {
			return ValidationError{Field: "username",
				Reason: "only lowercase letters, digits and dashes allowed"}
		}
		if ch == '-' && segment[i-1] == '-' {
			return ValidationError{Field: "username",
				Reason: "dashes must be single"}
		}
	}
	return nil
}

// ValidateTag checks a post tag: 1 to 24 characters, starting with a letter,
// containing only lowercase letters, digits and single dashes.
func ValidateTag(tag string) error {
	if len(tag) == 0 {
		return ValidationError{Field: "tag", Reason: "must not be empty"}
	}
	if len(tag) > MaxTagLen {
		return ValidationError{Field: "tag",
			Reason: "must be at most 24 characters"}
	}
	if !isLower(tag[0]) {
		return ValidationError{Field: "tag",
			Reason: "must start with a letter"}
	}
	for i := 1; i < len(tag); i++ {
		ch := tag[i]
		if !isLower(ch) && !isDigit(ch) && ch != '-' {
			return ValidationError{Field: "tag",
				Reason: "only lowercase letters, digits and dashes allowed"}
		}
		if ch == '-' && tag[i-1] == '-' {
			return ValidationError{Field: "tag",
				Reason: "dashes must be single"}
		}
	}
	return nil
}

// ValidatePermlink checks a permlink: non-empty, at most 255 characters, only
// lowercase letters, digits and dashes.
func ValidatePermlink(permlink string) error {
	if len(permlink) == 0 {
		return ValidationError{Field: "permlink",
			Reason: "must not be empty"}
	}
	if len(permlink) > MaxPermlinkLen {
		return ValidationError{Field: "permlink",
			Reason: "must be at most 255 characters"}
	}
	for i := 0; i < len(permlink); i++ {
		ch := permlink[i]
		if !isLower(ch) && !isDigit(ch) && ch != '-' {
			return ValidationError{Field: "permlink",
				Reason: "only lowercase letters, digits and dashes allowed"}
		}
	}
	return nil
}

func isLower(ch byte) bool {
	return 'a' <= ch && ch <= 'z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
