// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package utils

import "bytes"

// FindPattern returns the offset of the first occurrence of needle in haystack.
func FindPattern(haystack, needle []byte) (int, bool) {
	if len(needle) == 0 {
		return 0, false
	}

	i := bytes.Index(haystack, needle)
	return i, i >= 0
}
