package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ID prefixes per collection.
const (
	PrefixStaff      = "S"
	PrefixDelivery   = "D"
	PrefixInvoice    = "I"
	PrefixConversion = "C"
	PrefixRoute      = "R"
	PrefixSalary     = "SR"
)

// FormatID renders prefix plus a sequence zero-padded to three digits (S001, SR012).
func FormatID(prefix string, seq int) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}

// ParseSeq extracts the sequence from an id carrying prefix. ParseSeq("S", "SR001") fails.
func ParseSeq(prefix, id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	for _, c := range rest {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
