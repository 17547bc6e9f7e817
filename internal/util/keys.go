package util

import "strings"

const orderPrefix = "order"

// StorageKey returns the journal key for a token: "order:<ns>:<token>".
// The token is normalized with Token first.
func StorageKey(ns, token string) string {
	return orderPrefix + ":" + ns + ":" + Token(token)
}

// Token strips wire padding so "T1", "T1  " and "T1\x00" address the same entry,
// matching what ouch.Decode yields.
func Token(token string) string {
	return strings.TrimRight(token, " \x00")
}
