package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"timekeeper/internal/database"
	"timekeeper/internal/models"
)

// ErrHandled signals that the failure was already reported to the user and
// only the exit code remains to be set.
var ErrHandled = errors.New("operation failed")

// parseID parses a positional id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return id, nil
}

// stringField maps a flag onto a tri-state patch field: untouched when the
// flag was not given, NULL when the clear flag was given, set otherwise.
func stringField(cmd *cobra.Command, name, clearName string) models.Field[string] {
	if clearName != "" {
		if cleared, _ := cmd.Flags().GetBool(clearName); cleared {
			return models.Null[string]()
		}
	}
	if !cmd.Flags().Changed(name) {
		return models.Field[string]{}
	}
	v, _ := cmd.Flags().GetString(name)
	return models.Set(v)
}

// intField is stringField for integer flags.
func intField(cmd *cobra.Command, name string) models.Field[int] {
	if !cmd.Flags().Changed(name) {
		return models.Field[int]{}
	}
	v, _ := cmd.Flags().GetInt(name)
	return models.Set(v)
}

// idField is stringField for foreign-key flags.
func idField(cmd *cobra.Command, name, clearName string) models.Field[int64] {
	if clearName != "" {
		if cleared, _ := cmd.Flags().GetBool(clearName); cleared {
			return models.Null[int64]()
		}
	}
	if !cmd.Flags().Changed(name) {
		return models.Field[int64]{}
	}
	v, _ := cmd.Flags().GetInt64(name)
	return models.Set(v)
}

// optStr returns a pointer for an optional creation flag, nil when unset.
func optStr(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// optID returns a pointer for an optional foreign-key creation flag.
func optID(cmd *cobra.Command, name string) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt64(name)
	return &v
}

// reportOutcome translates a discriminated write outcome into user output.
// Returns ErrHandled for anything that should fail the process.
func reportOutcome(f *OutputFormatter, outcome database.Outcome, err error, applied string) error {
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			f.Error("VALIDATION", ve.Error())
			return ErrHandled
		}
		f.Error("STORAGE", err.Error())
		return ErrHandled
	}

	switch outcome {
	case database.OutcomeApplied:
		return f.Successf(map[string]any{"outcome": outcome.String()}, "%s", applied)
	case database.OutcomeNoOp:
		return f.Successf(map[string]any{"outcome": outcome.String()}, "nothing to change")
	default:
		f.Error("NOT_FOUND", "no record with that id")
		return ErrHandled
	}
}

// reportError translates an add/get/list failure into user output.
func reportError(f *OutputFormatter, err error) error {
	var ve *models.ValidationError
	switch {
	case errors.As(err, &ve):
		f.Error("VALIDATION", ve.Error())
	case errors.Is(err, database.ErrNotFound):
		f.Error("NOT_FOUND", "no record with that id")
	default:
		f.Error("STORAGE", err.Error())
	}
	return ErrHandled
}
