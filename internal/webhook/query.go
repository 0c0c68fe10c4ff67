// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package webhook

const (
	// SortAscend orders a listing from the lowest value of SortField.
	SortAscend = "ascend"
	// SortDescend orders a listing from the highest value of SortField.
	SortDescend = "descend"
)

// ListQuery holds the listing parameters. Empty fields are sent as empty values
// and the server applies its own defaults.
type ListQuery struct {
	Owner        string
	Organization string
	Page         string
	PageSize     string
	Field        string
	Value        string
	SortField    string
	SortOrder    string
}

// Paginated reports whether the query asks the server for a single page.
func (q ListQuery) Paginated() bool {
	return q.Page != "" && q.PageSize != ""
}
