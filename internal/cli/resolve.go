package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/archivio/internal/domain"
)

// resolveArchiveID accepts a full id, a node code (case-insensitive) or a
// unique id prefix.
func resolveArchiveID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", domain.Invalidf("archive node id is required")
	}

	nodes, err := app.Archive.List(ctx)
	if err != nil {
		return "", err
	}

	for _, n := range nodes {
		if n.ID == input {
			return n.ID, nil
		}
	}

	var byCode []string
	for _, n := range nodes {
		if n.Code != "" && strings.EqualFold(n.Code, input) {
			byCode = append(byCode, n.ID)
		}
	}
	if len(byCode) == 1 {
		return byCode[0], nil
	}
	if len(byCode) > 1 {
		return "", domain.Invalidf("archive code %q is ambiguous (%d nodes)", input, len(byCode))
	}

	var matches []string
	for _, n := range nodes {
		if strings.HasPrefix(n.ID, input) {
			matches = append(matches, n.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", domain.NotFoundf("archive node %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", domain.Invalidf("archive id prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveNotificationID expands a unique id prefix. Unknown input is
// returned unchanged so the service decides how to treat a missing id.
func resolveNotificationID(ctx context.Context, app *App, input string) (string, error) {
	list, err := app.Notifications.List(ctx, 0, false)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, n := range list {
		if n.ID == input {
			return n.ID, nil
		}
		if strings.HasPrefix(n.ID, input) {
			matches = append(matches, n.ID)
		}
	}
	switch len(matches) {
	case 0:
		return input, nil
	case 1:
		return matches[0], nil
	default:
		return "", domain.Invalidf("notification id prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func parseDate(flag, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domain.Invalidf("--%s %q: expected YYYY-MM-DD", flag, value)
	}
	return t, nil
}

func parseOptionalDate(flag, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDate(flag, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
