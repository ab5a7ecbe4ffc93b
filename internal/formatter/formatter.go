// package formatter renders a hydrated catalog as CSV, Markdown or plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/platfix/platfix/internal/models"
	"github.com/platfix/platfix/internal/shared"
)

// Format names accepted by [Export].
const (
	FormatJSON     = "json"
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "text"
)

// Section is a titled slice of the catalog, in display order.
type Section struct {
	Name   string
	Movies []models.Movie
	// UserMovieIDs is parallel to Movies; only set for the user's list.
	UserMovieIDs []string
}

// Sections splits state into the carousels a page shows: the list first, when present.
func Sections(state models.PreloadedState) []Section {
	sections := []Section{}
	if len(state.MyList) > 0 {
		list := Section{Name: "Mi lista"}
		for _, entry := range state.MyList {
			list.Movies = append(list.Movies, entry.Movie)
			list.UserMovieIDs = append(list.UserMovieIDs, entry.UserMovieID)
		}
		sections = append(sections, list)
	}
	sections = append(sections,
		Section{Name: "Tendencias", Movies: state.Trends},
		Section{Name: "Originales de Platfix", Movies: state.Originals},
	)
	return sections
}

// Export renders state in the named format. JSON is left to the caller.
func Export(state models.PreloadedState, format string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(state)
	case FormatMarkdown, "md":
		return ExportToMarkdown(state)
	case FormatText, "txt":
		return ExportToText(state)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidInput, format)
	}
}

// ExportToCSV writes one row per movie per section with columns:
// Section, ID, Title, Year, Rating, Duration, UserMovieID
func ExportToCSV(state models.PreloadedState) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Section", "ID", "Title", "Year", "Rating", "Duration", "UserMovieID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, section := range Sections(state) {
		for i, movie := range section.Movies {
			userMovieID := ""
			if i < len(section.UserMovieIDs) {
				userMovieID = section.UserMovieIDs[i]
			}
			record := []string{
				section.Name,
				movie.ID,
				movie.Title,
				strconv.Itoa(movie.Year),
				movie.ContentRating,
				strconv.Itoa(movie.Duration),
				userMovieID,
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown writes a heading per section and a numbered movie list under each.
func ExportToMarkdown(state models.PreloadedState) ([]byte, error) {
	var buf bytes.Buffer

	title := "Platfix"
	if state.User.Name != "" {
		title = fmt.Sprintf("Platfix: %s", state.User.Name)
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)

	for _, section := range Sections(state) {
		fmt.Fprintf(&buf, "## %s\n\n", section.Name)
		if len(section.Movies) == 0 {
			buf.WriteString("_Sin títulos_\n\n")
			continue
		}
		for i, movie := range section.Movies {
			fmt.Fprintf(&buf, "%d. **%s** (%d) %s [%s]\n", i+1, movie.Title, movie.Year, movie.ContentRating, FormatDuration(movie.Duration))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText writes a compact listing for terminals.
func ExportToText(state models.PreloadedState) ([]byte, error) {
	var buf bytes.Buffer

	if state.LoggedIn() {
		fmt.Fprintf(&buf, "User: %s <%s>\n\n", state.User.Name, state.User.Email)
	}

	for _, section := range Sections(state) {
		fmt.Fprintf(&buf, "%s: %d\n", section.Name, len(section.Movies))
		for i, movie := range section.Movies {
			fmt.Fprintf(&buf, "  %d. %s (%d)\n", i+1, movie.Title, movie.Year)
		}
	}

	return buf.Bytes(), nil
}

// FormatDuration renders seconds as m:ss, or h:mm:ss past an hour.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
