package supabase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// IsPermissionDenied reports whether an error came from a row level security
// rejection, either by SQLSTATE 42501 or by the backend's message text.
func IsPermissionDenied(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42501" {
		return true
	}
	return strings.Contains(err.Error(), "row-level security")
}

// rewritePermission turns an RLS rejection into an operator-facing message
// pointing at the missing policy setup instead of the raw backend text.
func rewritePermission(table string, err error) error {
	if IsPermissionDenied(err) {
		return fmt.Errorf("permission denied on %s: row level security rejected the operation; apply the owner policies from the initial migration: %w", table, err)
	}
	return err
}
