/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package internal

import (
	"sort"

	"github.com/afdiscovery/agreeset-go/common"
)

// FindLastNotAbove searches the sorted range arr[low..high] for the index of
// the last element not above v. It returns -1 when every element is above v.
func FindLastNotAbove[C comparable](arr []C, low int, high int, v C, less common.CompareFn[C]) int {
	if len(arr) == 0 || low > high {
		return -1
	}
	// first index with arr[i] > v
	i := low + sort.Search(high-low+1, func(k int) bool { return less(v, arr[low+k]) })
	if i == low {
		return -1
	}
	return i - 1
}
