package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// RemoveItem drops the item with the given id. The list never ends up empty:
// removing the last item leaves a single fresh blank item in its place.
// found reports whether id was present; if not, items is returned as is.
func RemoveItem(items []LineItem, id string) (out []LineItem, found bool) {
	out = make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.ID == id {
			found = true
			continue
		}
		out = append(out, item)
	}
	if !found {
		return items, false
	}
	if len(out) == 0 {
		out = append(out, NewLineItem())
	}
	return out, true
}

// AppendItem returns items with a fresh blank item added at the end.
func AppendItem(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items)+1)
	out = append(out, items...)
	return append(out, NewLineItem())
}

// MoveItem moves the item at index from to index to, shifting the others.
func MoveItem(items []LineItem, from, to int) ([]LineItem, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, fmt.Errorf("move %d -> %d out of range for %d items", from, to, len(items))
	}
	out := append([]LineItem(nil), items...)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]LineItem{moved}, out[to:]...)...)
	return out, nil
}

// NextInvoiceNumber increments a numeric invoice number. Values that do not
// start with an integer of at least 1 are returned unchanged.
func NextInvoiceNumber(current string) string {
	n, ok := leadingInt(current)
	if !ok || n < 1 {
		return current
	}
	return strconv.FormatInt(n+1, 10)
}

// PreviousInvoiceNumber decrements a numeric invoice number, never below 1.
func PreviousInvoiceNumber(current string) string {
	n, ok := leadingInt(current)
	if !ok || n <= 1 {
		return current
	}
	return strconv.FormatInt(n-1, 10)
}

// leadingInt parses the optional sign and digits at the start of s, after
// leading whitespace, ignoring anything that follows.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// EnsureItems enforces the live-document invariants on a replacement item
// list: it is never empty, and every item has an ID no other item shares.
// Missing or repeated IDs are replaced with fresh ones.
func EnsureItems(items []LineItem) []LineItem {
	if len(items) == 0 {
		return []LineItem{NewLineItem()}
	}
	out := make([]LineItem, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		if _, dup := seen[item.ID]; item.ID == "" || dup {
			item.ID = NewLineItem().ID
		}
		seen[item.ID] = struct{}{}
		out[i] = item
	}
	return out
}
