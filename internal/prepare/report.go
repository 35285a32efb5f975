package prepare

import (
	"errors"
	"fmt"

	"github.com/lehigh-university-libraries/bookprep/internal/kaggle"
	"github.com/lehigh-university-libraries/bookprep/internal/table"
)

// Report turns a run failure into the message shown to the user
func Report(err error) string {
	if err == nil {
		return ""
	}

	var depErr *kaggle.DependencyError
	switch {
	case errors.As(err, &depErr):
		return fmt.Sprintf("Error: %v. Please %s", err, depErr.Hint)
	case errors.Is(err, table.ErrNoTabularFile):
		return "No CSV file found in the downloaded dataset."
	default:
		return fmt.Sprintf("An error occurred: %v", err)
	}
}
