package movie

import (
	"fmt"
	"strings"
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowPosters bool
	ShowIDs     bool
	// Total before filtering, 0 when no filter is active
	Unfiltered int
}

// FormatMovieList formats a page of results for console display
func FormatMovieList(page *Page, options FormatOptions) string {
	if page == nil || len(page.Movies) == 0 {
		return "No movies found"
	}

	var sb strings.Builder

	// Header
	sb.WriteString("\nMovie")
	if len(page.Movies) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d", len(page.Movies))
	if options.Unfiltered > len(page.Movies) {
		fmt.Fprintf(&sb, " of %d", options.Unfiltered)
	}
	sb.WriteString(")")
	if page.TotalPages > 1 {
		fmt.Fprintf(&sb, ", page %d/%d", page.Page, page.TotalPages)
	}
	sb.WriteString(":\n\n")

	for i, m := range page.Movies {
		isLast := i == len(page.Movies)-1
		prefix := "├"
		indent := "│   "
		if isLast {
			prefix = "╰"
			indent = "    "
		}

		fmt.Fprintf(&sb, "%s── %s", prefix, m.Title)
		if sub := m.Subtitle(); sub != "" {
			fmt.Fprintf(&sb, " (%s)", sub)
		}
		if m.InLibrary {
			sb.WriteString(" [IN LIBRARY]")
		}
		sb.WriteString("\n")

		if options.ShowIDs {
			var ids []string
			if m.IMDBID != "" {
				ids = append(ids, "IMDb: "+m.IMDBID)
			}
			if m.TMDBID != 0 {
				ids = append(ids, fmt.Sprintf("TMDB: %d", m.TMDBID))
			}
			if len(ids) > 0 {
				fmt.Fprintf(&sb, "%s%s\n", indent, strings.Join(ids, " | "))
			}
		}
		if options.ShowPosters {
			fmt.Fprintf(&sb, "%sPoster: %s\n", indent, m.Poster())
		}
	}

	return sb.String()
}
