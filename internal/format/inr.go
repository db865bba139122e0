// Package format renders amounts with Indian digit grouping for display.
package format

import (
	"fmt"
	"strings"
)

// IndianNumber formats n with Indian grouping: the last three digits form a
// group, then every two ("1234567" -> "12,34,567").
func IndianNumber(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(append(groups, tail), ",")
	}
	if neg {
		return "-" + s
	}
	return s
}

// Rupees formats an amount as Indian-grouped rupees ("₹25,000").
func Rupees(amount float64) string {
	return "₹" + IndianNumber(int64(amount))
}
