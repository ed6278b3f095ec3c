//go:build unit

package api_test

import "time"

var fixedNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
